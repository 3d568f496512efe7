package engine

import (
	"fmt"
	"time"

	"github.com/caixinhas/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AmortizeDebt pays amount from an envelope against a debt: the debt's
// current amount is reduced (floored at zero), an amortization record is
// written and the envelope is debited. The debt flips to settled exactly
// when its current amount reaches zero; amortizing a settled debt is
// rejected.
func (e *Engine) AmortizeDebt(userID uuid.UUID, debtID uuid.UUID, envelopeID uuid.UUID, amount decimal.Decimal, paymentDate time.Time, note string) (models.Debt, error) {
	if !amount.IsPositive() {
		return models.Debt{}, models.ErrAmountNotPositive
	}

	var debt models.Debt
	err := e.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&debt, "id = ?", debtID).Error
		if err != nil {
			return err
		}

		if debt.Status == models.DebtStatusSettled {
			return models.ErrDebtAlreadySettled
		}

		newCurrent := debt.CurrentAmount.Sub(amount)
		if !newCurrent.IsPositive() {
			newCurrent = decimal.Zero
			debt.Status = models.DebtStatusSettled
			settled := paymentDate.In(time.UTC)
			debt.SettledDate = &settled
		}
		debt.CurrentAmount = newCurrent

		err = tx.Model(&debt).
			Select("CurrentAmount", "Status", "SettledDate").
			Updates(&debt).Error
		if err != nil {
			return err
		}

		err = tx.Create(&models.Amortization{
			DebtID:      debtID,
			EnvelopeID:  envelopeID,
			Amount:      amount,
			PaymentDate: paymentDate,
			Note:        note,
		}).Error
		if err != nil {
			return err
		}

		return debit(tx, envelopeID, amount)
	})
	if err != nil {
		return models.Debt{}, err
	}

	return debt, nil
}

// ContributeToGoal adds amount to a goal and records the contribution. The
// goal flips to completed when the new current amount reaches the target.
// Contributions to an already completed goal are accepted, the current
// amount keeps growing past the target. When an envelope is given, it is
// debited by the contribution.
func (e *Engine) ContributeToGoal(userID uuid.UUID, goalID uuid.UUID, amount decimal.Decimal, date time.Time, envelopeID *uuid.UUID, note string) (models.Goal, error) {
	if !amount.IsPositive() {
		return models.Goal{}, models.ErrAmountNotPositive
	}

	var goal models.Goal
	err := e.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&goal, "id = ?", goalID).Error
		if err != nil {
			return err
		}

		goal.CurrentAmount = goal.CurrentAmount.Add(amount)
		if goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount) {
			goal.Status = models.GoalStatusCompleted
		}

		err = tx.Model(&goal).
			Select("CurrentAmount", "Status").
			Updates(&goal).Error
		if err != nil {
			return err
		}

		err = tx.Create(&models.Contribution{
			GoalID:     goalID,
			EnvelopeID: envelopeID,
			Amount:     amount,
			Date:       date,
			Note:       note,
		}).Error
		if err != nil {
			return err
		}

		if envelopeID != nil {
			return debit(tx, *envelopeID, amount)
		}

		return nil
	})
	if err != nil {
		return models.Goal{}, err
	}

	return goal, nil
}

// CreateInvoice records a card invoice and reserves its total on the card's
// available limit. The card must belong to the user.
func (e *Engine) CreateInvoice(userID uuid.UUID, create models.Invoice) (models.Invoice, error) {
	if create.TotalAmount.IsNegative() {
		return models.Invoice{}, models.ErrAmountNotPositive
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var card models.Card
		err := tx.Where("user_id = ?", userID).First(&card, "id = ?", create.CardID).Error
		if err != nil {
			return err
		}

		if err := tx.Create(&create).Error; err != nil {
			return err
		}

		return tx.Session(&gorm.Session{SkipHooks: true}).
			Model(&models.Card{}).
			Where("id = ?", card.ID).
			Update("available_limit", gorm.Expr("available_limit - ?", create.TotalAmount)).Error
	})
	if err != nil {
		return models.Invoice{}, err
	}

	return create, nil
}

// PayInvoice pays amount of a card invoice from a bank account: the invoice
// total is reduced (floored at zero, flipping to paid at zero), the account
// balance is debited without a sufficiency check, and the card's available
// limit is credited back.
func (e *Engine) PayInvoice(userID uuid.UUID, invoiceID uuid.UUID, accountID uuid.UUID, amount decimal.Decimal, paymentDate time.Time) (models.Invoice, error) {
	if !amount.IsPositive() {
		return models.Invoice{}, models.ErrAmountNotPositive
	}

	var invoice models.Invoice
	err := e.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Joins("Card").
			Where("Card.user_id = ?", userID).
			First(&invoice, "invoices.id = ?", invoiceID).Error
		if err != nil {
			return err
		}

		newTotal := invoice.TotalAmount.Sub(amount)
		if !newTotal.IsPositive() {
			newTotal = decimal.Zero
			invoice.Status = models.InvoiceStatusPaid
			paid := paymentDate.In(time.UTC)
			invoice.PaymentDate = &paid
		} else {
			invoice.Status = models.InvoiceStatusOpen
		}
		invoice.TotalAmount = newTotal

		err = tx.Model(&invoice).
			Select("TotalAmount", "Status", "PaymentDate").
			Updates(&invoice).Error
		if err != nil {
			return err
		}

		// Overdraft is allowed, like negative envelope balances.
		res := tx.Session(&gorm.Session{SkipHooks: true}).
			Model(&models.Account{}).
			Where("id = ? AND user_id = ?", accountID, userID).
			Update("balance", gorm.Expr("balance - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w account matching your query", models.ErrResourceNotFound)
		}

		res = tx.Session(&gorm.Session{SkipHooks: true}).
			Model(&models.Card{}).
			Where("id = ?", invoice.CardID).
			Update("available_limit", gorm.Expr("available_limit + ?", amount))
		if res.Error != nil {
			return res.Error
		}

		return nil
	})
	if err != nil {
		return models.Invoice{}, err
	}

	return invoice, nil
}

// PurchaseWishlistItem marks a wishlist item as bought. When an envelope is
// given, the envelope is debited by the actual amount (falling back to the
// estimated value) and a matching expense transaction is recorded.
func (e *Engine) PurchaseWishlistItem(userID uuid.UUID, itemID uuid.UUID, envelopeID *uuid.UUID, actualAmount *decimal.Decimal) (models.WishlistItem, error) {
	var item models.WishlistItem
	err := e.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&item, "id = ?", itemID).Error
		if err != nil {
			return err
		}

		if item.Status == models.WishlistStatusBought {
			return models.ErrWishlistItemAlreadyBought
		}

		now := time.Now().In(time.UTC)
		item.Status = models.WishlistStatusBought
		item.PurchasedAt = &now

		err = tx.Model(&item).
			Select("Status", "PurchasedAt").
			Updates(&item).Error
		if err != nil {
			return err
		}

		if envelopeID == nil {
			return nil
		}

		amount := item.EstimatedValue
		if actualAmount != nil {
			if !actualAmount.IsPositive() {
				return models.ErrAmountNotPositive
			}
			amount = *actualAmount
		}

		err = tx.Create(&models.Transaction{
			UserID:     userID,
			Type:       models.TransactionTypeExpense,
			Amount:     amount,
			Date:       now,
			Note:       item.Name,
			EnvelopeID: envelopeID,
		}).Error
		if err != nil {
			return err
		}

		return debit(tx, *envelopeID, amount)
	})
	if err != nil {
		return models.WishlistItem{}, err
	}

	return item, nil
}
