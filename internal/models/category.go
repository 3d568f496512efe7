package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category labels transactions. System categories have no user and are
// visible to everyone; personal categories belong to a single user.
type Category struct {
	DefaultModel
	UserID *uuid.UUID      `json:"userId"` // nil for system categories
	User   *User           `json:"-"`
	Name   string          `json:"name"`
	Type   TransactionType `json:"type" example:"expense"`
	Icon   string          `json:"icon" example:"🛒"`
	Color  string          `json:"color" example:"#6B7280"`
	System bool            `json:"system"`
}

const defaultCategoryColor = "#6B7280"

var ErrCategoryNameMissing = errors.New("the category name must be set")

func (cat *Category) BeforeSave(_ *gorm.DB) error {
	cat.Name = strings.TrimSpace(cat.Name)
	if cat.Name == "" {
		return ErrCategoryNameMissing
	}

	if cat.Type != TransactionTypeIncome && cat.Type != TransactionTypeExpense {
		return ErrTransactionTypeInvalid
	}

	if cat.Color == "" {
		cat.Color = defaultCategoryColor
	}

	return nil
}
