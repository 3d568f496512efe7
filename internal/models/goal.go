package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GoalStatus is the lifecycle state of a savings goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
)

// Goal is a savings target. It flips to completed exactly when
// CurrentAmount reaches TargetAmount; contributions past the target keep
// incrementing CurrentAmount without a cap.
type Goal struct {
	DefaultModel
	UserID        uuid.UUID       `json:"userId"`
	User          User            `json:"-"`
	Name          string          `json:"name"`
	Note          string          `json:"note"`
	TargetAmount  decimal.Decimal `json:"targetAmount" gorm:"type:DECIMAL(20,8)"`
	CurrentAmount decimal.Decimal `json:"currentAmount" gorm:"type:DECIMAL(20,8)"`
	Deadline      *time.Time      `json:"deadline"`
	Status        GoalStatus      `json:"status" example:"active"`
	EnvelopeID    *uuid.UUID      `json:"envelopeId"` // Weak link, cleared when the envelope is deleted
	Envelope      *Envelope       `json:"-"`
}

// Contribution is a single payment into a goal, optionally funded from an
// envelope.
type Contribution struct {
	DefaultModel
	GoalID     uuid.UUID       `json:"goalId"`
	Goal       Goal            `json:"-"`
	EnvelopeID *uuid.UUID      `json:"envelopeId"`
	Envelope   *Envelope       `json:"-"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Date       time.Time       `json:"date"`
	Note       string          `json:"note"`
}

var (
	ErrGoalAmountNotPositive = errors.New("the goal target amount must be larger than zero")
	ErrGoalStatusInvalid     = errors.New("the goal status is invalid")
	ErrGoalNameEmpty         = errors.New("the goal name must be set")
)

func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Note = strings.TrimSpace(g.Note)

	if g.Status == "" {
		g.Status = GoalStatusActive
	}

	switch g.Status {
	case GoalStatusActive, GoalStatusCompleted:
	default:
		return ErrGoalStatusInvalid
	}

	return nil
}

func (g *Goal) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(g.TargetAmount) {
		return ErrGoalAmountNotPositive
	}

	return nil
}

func (c *Contribution) BeforeSave(_ *gorm.DB) error {
	c.Note = strings.TrimSpace(c.Note)

	if c.Date.IsZero() {
		c.Date = time.Now().In(time.UTC)
	} else {
		c.Date = c.Date.In(time.UTC)
	}

	return nil
}
