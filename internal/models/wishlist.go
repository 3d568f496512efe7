package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WishlistStatus is the lifecycle state of a wishlist item.
type WishlistStatus string

const (
	WishlistStatusWanting   WishlistStatus = "wanting"
	WishlistStatusSaving    WishlistStatus = "saving"
	WishlistStatusBought    WishlistStatus = "bought"
	WishlistStatusCancelled WishlistStatus = "cancelled"
)

// WishlistItem is something the user wants to buy eventually.
type WishlistItem struct {
	DefaultModel
	UserID              uuid.UUID       `json:"userId"`
	User                User            `json:"-"`
	Name                string          `json:"name"`
	Note                string          `json:"note"`
	EstimatedValue      decimal.Decimal `json:"estimatedValue" gorm:"type:DECIMAL(20,8)"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution" gorm:"type:DECIMAL(20,8)"`
	Status              WishlistStatus  `json:"status" example:"saving"`
	EnvelopeID          *uuid.UUID      `json:"envelopeId"` // Weak link, cleared when the envelope is deleted
	Envelope            *Envelope       `json:"-"`
	PurchasedAt         *time.Time      `json:"purchasedAt"`
}

var (
	ErrWishlistItemAlreadyBought    = errors.New("the wishlist item is already bought")
	ErrWishlistStatusInvalid        = errors.New("the wishlist status is invalid")
	ErrWishlistValueNotPositive     = errors.New("the estimated value must be larger than zero")
	ErrWishlistContributionNegative = errors.New("the monthly contribution must not be negative")
)

// MonthsToPurchase projects how many months of saving the item still needs.
// The projection uses the stored monthly contribution only; no projection is
// made when the contribution is zero.
func (w WishlistItem) MonthsToPurchase() *int64 {
	if !w.MonthlyContribution.IsPositive() {
		return nil
	}

	months := w.EstimatedValue.Div(w.MonthlyContribution).Ceil().IntPart()
	return &months
}

func (w *WishlistItem) BeforeSave(_ *gorm.DB) error {
	w.Name = strings.TrimSpace(w.Name)
	w.Note = strings.TrimSpace(w.Note)

	if w.Status == "" {
		w.Status = WishlistStatusWanting
	}

	switch w.Status {
	case WishlistStatusWanting, WishlistStatusSaving, WishlistStatusBought, WishlistStatusCancelled:
	default:
		return ErrWishlistStatusInvalid
	}

	if w.MonthlyContribution.IsNegative() {
		return ErrWishlistContributionNegative
	}

	return nil
}

func (w *WishlistItem) AfterSave(_ *gorm.DB) error {
	if !w.EstimatedValue.IsPositive() {
		return ErrWishlistValueNotPositive
	}

	return nil
}
