package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// User is the owner of all other resources. Every query for a resource is
// scoped to exactly one user, there is no sharing between users.
type User struct {
	DefaultModel
	Name         string `json:"name"`
	Email        string `json:"email" gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
}

var ErrEmailAlreadyRegistered = errors.New("this e-mail address is already registered")

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	return nil
}
