package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/caixinhas/backend/internal/config"
	"github.com/caixinhas/backend/internal/engine"
	"github.com/caixinhas/backend/internal/models"
	"github.com/caixinhas/backend/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.Server.Mode)

	// Log format defaults to human readable for development and JSON
	// for release
	output := io.Writer(os.Stdout)
	if cfg.Log.Format == "human" || (cfg.Log.Format == "" && gin.IsDebugging()) {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Create the data directory
	err = os.MkdirAll(filepath.Dir(cfg.Database.Path), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	db, err := models.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	core := engine.New(db, log.Logger)

	r, err := router.Router(cfg, db, core)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
