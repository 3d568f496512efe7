package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction is a single money movement of a user.
//
// Income transactions fan out across all envelopes of their month, so they
// carry no envelope link. Expense transactions must reference the envelope
// they were spent from.
type Transaction struct {
	DefaultModel
	UserID     uuid.UUID       `json:"userId"`
	User       User            `json:"-"`
	Type       TransactionType `json:"type" example:"expense"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"14.03"`
	Date       time.Time       `json:"date"`
	Note       string          `json:"note" example:"Lunch"`
	EnvelopeID *uuid.UUID      `json:"envelopeId"`
	Envelope   *Envelope       `json:"-"`
}

var ErrTransactionTypeInvalid = errors.New("the transaction type must be income or expense")

// AfterFind updates the date to use UTC as timezone, not +0000. Yes, this is
// different.
func (t *Transaction) AfterFind(_ *gorm.DB) (err error) {
	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave sets the timezone for the date to UTC.
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Note = strings.TrimSpace(t.Note)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}
