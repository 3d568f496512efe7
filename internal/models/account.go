package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountType categorizes a bank account.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeWallet     AccountType = "wallet"
)

// Account is a bank account. Invoice payments are debited from an account's
// balance; the balance may go negative, overdraft is not rejected.
type Account struct {
	DefaultModel
	UserID         uuid.UUID       `json:"userId" gorm:"uniqueIndex:account_user_name"`
	User           User            `json:"-"`
	Name           string          `json:"name" gorm:"uniqueIndex:account_user_name"`
	Type           AccountType     `json:"type" example:"checking"`
	InitialBalance decimal.Decimal `json:"initialBalance" gorm:"type:DECIMAL(20,8)"`
	Balance        decimal.Decimal `json:"balance" gorm:"type:DECIMAL(20,8)"`
}

var (
	ErrAccountNameNotUnique = errors.New("the account name is already in use")
	ErrAccountTypeInvalid   = errors.New("the account type is invalid")
)

func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)

	if a.Type == "" {
		a.Type = AccountTypeChecking
	}

	switch a.Type {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeInvestment, AccountTypeWallet:
	default:
		return ErrAccountTypeInvalid
	}

	return nil
}
