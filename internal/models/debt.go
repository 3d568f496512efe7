package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DebtStatus is the lifecycle state of a debt.
type DebtStatus string

const (
	DebtStatusPending     DebtStatus = "pending"
	DebtStatusNegotiating DebtStatus = "negotiating"
	DebtStatusSettled     DebtStatus = "settled"
)

// Debt is money a user owes. CurrentAmount only moves down through
// amortizations and is floored at zero; it reaches zero exactly when the
// debt flips to settled.
type Debt struct {
	DefaultModel
	UserID              uuid.UUID       `json:"userId"`
	User                User            `json:"-"`
	Description         string          `json:"description"`
	OriginalAmount      decimal.Decimal `json:"originalAmount" gorm:"type:DECIMAL(20,8)"`
	CurrentAmount       decimal.Decimal `json:"currentAmount" gorm:"type:DECIMAL(20,8)"`
	MonthlyInterestRate decimal.Decimal `json:"monthlyInterestRate" gorm:"type:DECIMAL(20,8)"`
	Status              DebtStatus      `json:"status" example:"pending"`
	StartDate           time.Time       `json:"startDate"`
	SettledDate         *time.Time      `json:"settledDate"`
	EnvelopeID          *uuid.UUID      `json:"envelopeId"` // Weak link, cleared when the envelope is deleted
	Envelope            *Envelope       `json:"-"`
}

// Amortization is a single partial or full payment on a debt, funded from an
// envelope.
type Amortization struct {
	DefaultModel
	DebtID      uuid.UUID       `json:"debtId"`
	Debt        Debt            `json:"-"`
	EnvelopeID  uuid.UUID       `json:"envelopeId"`
	Envelope    Envelope        `json:"-"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	PaymentDate time.Time       `json:"paymentDate"`
	Note        string          `json:"note"`
}

var (
	ErrDebtAlreadySettled     = errors.New("the debt is already settled")
	ErrDebtStatusInvalid      = errors.New("the debt status is invalid")
	ErrDebtAmountNotPositive  = errors.New("the original debt amount must be larger than zero")
	ErrDebtDescriptionEmpty   = errors.New("the debt description must be set")
	ErrInterestRateOutOfRange = errors.New("the monthly interest rate must be between 0 and 100")
)

func (d *Debt) BeforeSave(_ *gorm.DB) error {
	d.Description = strings.TrimSpace(d.Description)

	if d.Status == "" {
		d.Status = DebtStatusPending
	}

	switch d.Status {
	case DebtStatusPending, DebtStatusNegotiating, DebtStatusSettled:
	default:
		return ErrDebtStatusInvalid
	}

	if d.MonthlyInterestRate.IsNegative() || d.MonthlyInterestRate.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInterestRateOutOfRange
	}

	return nil
}

func (d *Debt) AfterSave(_ *gorm.DB) error {
	if !d.OriginalAmount.IsPositive() {
		return ErrDebtAmountNotPositive
	}

	return nil
}

func (a *Amortization) BeforeSave(_ *gorm.DB) error {
	a.Note = strings.TrimSpace(a.Note)

	if a.PaymentDate.IsZero() {
		a.PaymentDate = time.Now().In(time.UTC)
	} else {
		a.PaymentDate = a.PaymentDate.In(time.UTC)
	}

	return nil
}
