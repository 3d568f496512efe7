package models

import (
	"errors"
	"strings"

	"github.com/caixinhas/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Envelope (caixinha) is a percentage-funded budget bucket scoped to one user
// and one calendar month.
//
// Allocated is the cumulative amount assigned from income events for the
// month, Spent the cumulative amount debited. Available is always written as
// allocated - spent in the same statement that changes either of the two,
// never cached across statements. A negative Available is the overspend
// signal for the user, not an error.
type Envelope struct {
	DefaultModel
	UserID        uuid.UUID       `json:"userId" gorm:"uniqueIndex:envelope_user_name_month"`
	User          User            `json:"-"`
	Name          string          `json:"name" gorm:"uniqueIndex:envelope_user_name_month"`
	Month         types.Month     `json:"month" gorm:"uniqueIndex:envelope_user_name_month"`
	TargetPercent decimal.Decimal `json:"targetPercent" gorm:"type:DECIMAL(20,8)"` // Share of income in percent, 0-100
	Allocated     decimal.Decimal `json:"allocated" gorm:"type:DECIMAL(20,8)"`
	Spent         decimal.Decimal `json:"spent" gorm:"type:DECIMAL(20,8)"`
	Available     decimal.Decimal `json:"available" gorm:"type:DECIMAL(20,8)"`
}

var (
	ErrEnvelopeNameNotUnique       = errors.New("the envelope name is already in use for this month")
	ErrEnvelopeNameEmpty           = errors.New("the envelope name must be set")
	ErrTargetPercentOutOfRange     = errors.New("the target percentage must be between 0 and 100")
	ErrNoEnvelopesConfigured       = errors.New("no envelopes are configured for this month, configure them first")
	ErrExpenseRequiresEnvelope     = errors.New("expense transactions must be linked to an envelope")
	ErrEnvelopeMonthRequired       = errors.New("the month must be set")
	ErrEnvelopeConfigurationsEmpty = errors.New("at least one envelope must be configured")
)

func (e *Envelope) BeforeSave(_ *gorm.DB) error {
	e.Name = strings.TrimSpace(e.Name)

	return nil
}

func (e *Envelope) AfterSave(_ *gorm.DB) error {
	if e.TargetPercent.IsNegative() || e.TargetPercent.GreaterThan(decimal.NewFromInt(100)) {
		return ErrTargetPercentOutOfRange
	}

	return nil
}
