package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringItem is a template for a transaction that repeats every month,
// like rent or a salary. It is a planning aid; booking the transaction is
// an explicit user action.
type RecurringItem struct {
	DefaultModel
	UserID     uuid.UUID       `json:"userId"`
	User       User            `json:"-"`
	Name       string          `json:"name"`
	Type       TransactionType `json:"type" example:"expense"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	DayOfMonth int             `json:"dayOfMonth" example:"5"`
	EnvelopeID *uuid.UUID      `json:"envelopeId"` // Weak link, cleared when the envelope is deleted
	Envelope   *Envelope       `json:"-"`
	// No column default: with one, gorm drops a false value from the
	// INSERT and the database turns it back into true
	Active bool `json:"active"`
}

var (
	ErrRecurringDayOutOfRange     = errors.New("the day of month must be between 1 and 31")
	ErrRecurringAmountNotPositive = errors.New("the recurring amount must be larger than zero")
)

func (r *RecurringItem) BeforeSave(_ *gorm.DB) error {
	r.Name = strings.TrimSpace(r.Name)

	if r.Type != TransactionTypeIncome && r.Type != TransactionTypeExpense {
		return ErrTransactionTypeInvalid
	}

	if r.DayOfMonth < 1 || r.DayOfMonth > 31 {
		return ErrRecurringDayOutOfRange
	}

	return nil
}

func (r *RecurringItem) AfterSave(_ *gorm.DB) error {
	if !r.Amount.IsPositive() {
		return ErrRecurringAmountNotPositive
	}

	return nil
}
