package models

import (
	"errors"
	"strings"
	"time"

	"github.com/caixinhas/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Card is a credit card. AvailableLimit is the limit minus the currently
// unpaid invoice totals; paying an invoice credits it back.
type Card struct {
	DefaultModel
	UserID         uuid.UUID       `json:"userId" gorm:"uniqueIndex:card_user_name"`
	User           User            `json:"-"`
	Name           string          `json:"name" gorm:"uniqueIndex:card_user_name"`
	Brand          string          `json:"brand" example:"Visa"`
	Limit          decimal.Decimal `json:"limit" gorm:"type:DECIMAL(20,8)"`
	AvailableLimit decimal.Decimal `json:"availableLimit" gorm:"type:DECIMAL(20,8)"`
	ClosingDay     int             `json:"closingDay" example:"28"`
	DueDay         int             `json:"dueDay" example:"5"`
	// No column default: with one, gorm drops a false value from the
	// INSERT and the database turns it back into true
	Active bool `json:"active"`
}

// InvoiceStatus is the lifecycle state of a card invoice.
type InvoiceStatus string

const (
	InvoiceStatusOpen   InvoiceStatus = "open"
	InvoiceStatusClosed InvoiceStatus = "closed"
	InvoiceStatusPaid   InvoiceStatus = "paid"
)

// Invoice is a card's accumulated unpaid charges for one reference month.
type Invoice struct {
	DefaultModel
	CardID      uuid.UUID       `json:"cardId" gorm:"uniqueIndex:invoice_card_month"`
	Card        Card            `json:"-"`
	Month       types.Month     `json:"month" gorm:"uniqueIndex:invoice_card_month"`
	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:DECIMAL(20,8)"`
	Status      InvoiceStatus   `json:"status" example:"open"`
	ClosingDate time.Time       `json:"closingDate"`
	DueDate     time.Time       `json:"dueDate"`
	PaymentDate *time.Time      `json:"paymentDate"`
}

var (
	ErrCardNameNotUnique     = errors.New("the card name is already in use")
	ErrCardDayOutOfRange     = errors.New("closing and due days must be between 1 and 31")
	ErrCardLimitNegative     = errors.New("the card limit must not be negative")
	ErrInvoiceMonthNotUnique = errors.New("there already is an invoice for this card and month")
	ErrInvoiceStatusInvalid  = errors.New("the invoice status is invalid")
)

func (c *Card) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Brand = strings.TrimSpace(c.Brand)

	if c.ClosingDay < 1 || c.ClosingDay > 31 || c.DueDay < 1 || c.DueDay > 31 {
		return ErrCardDayOutOfRange
	}

	if c.Limit.IsNegative() {
		return ErrCardLimitNegative
	}

	return nil
}

func (i *Invoice) BeforeSave(_ *gorm.DB) error {
	if i.Status == "" {
		i.Status = InvoiceStatusOpen
	}

	switch i.Status {
	case InvoiceStatusOpen, InvoiceStatusClosed, InvoiceStatusPaid:
	default:
		return ErrInvoiceStatusInvalid
	}

	return nil
}
