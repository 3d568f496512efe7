// Package config loads the backend configuration.
//
// Configuration is read from an optional config.yaml in the working
// directory; every key can be overridden through environment variables with
// the CAIXINHAS_ prefix, for example CAIXINHAS_SERVER_PORT or
// CAIXINHAS_JWT_SECRET.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug or release
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"` // Path to the sqlite database file
}

type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	ExpireHours int           `mapstructure:"expire_hours"`
	ExpireTime  time.Duration `mapstructure:"-"`
}

type LogConfig struct {
	Format string `mapstructure:"format"` // "human" or "json"
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

var ErrJWTSecretMissing = errors.New("the JWT secret must be configured")

// Load reads the configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.path", "data/caixinhas.db")
	// The key must be registered for AutomaticEnv to pick it up during
	// Unmarshal
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expire_hours", 72)
	v.SetDefault("log.format", "json")
	v.SetDefault("cors.allow_origins", []string{})

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("caixinhas")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional, everything can come from the
		// environment.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.JWT.Secret == "" {
		return nil, ErrJWTSecretMissing
	}

	config.JWT.ExpireTime = time.Duration(config.JWT.ExpireHours) * time.Hour

	return &config, nil
}
