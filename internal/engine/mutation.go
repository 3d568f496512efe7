package engine

import (
	"time"

	"github.com/caixinhas/backend/internal/models"
	"github.com/caixinhas/backend/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTransaction records a transaction and applies its effect on the
// envelope balances in one transaction: income is allocated across the
// month's envelopes, an expense is debited from its envelope.
func (e *Engine) CreateTransaction(userID uuid.UUID, create models.Transaction) (models.Transaction, error) {
	create.UserID = userID

	if err := validateTransaction(create); err != nil {
		return models.Transaction{}, err
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&create).Error; err != nil {
			return err
		}

		return applyEffect(tx, create)
	})
	if err != nil {
		return models.Transaction{}, err
	}

	return create, nil
}

// UpdateTransaction edits a transaction. The original's effect on envelope
// balances is reversed first, then the row is updated, then the new effect
// is applied, all in one transaction. Editing a transaction to identical
// values therefore leaves every balance unchanged.
func (e *Engine) UpdateTransaction(userID uuid.UUID, id uuid.UUID, update models.Transaction) (models.Transaction, error) {
	update.UserID = userID
	update.ID = id

	if err := validateTransaction(update); err != nil {
		return models.Transaction{}, err
	}

	// The new effect is computed from the date before the row hooks run,
	// normalize it the same way the hooks do.
	if update.Date.IsZero() {
		update.Date = time.Now().In(time.UTC)
	} else {
		update.Date = update.Date.In(time.UTC)
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var original models.Transaction
		err := tx.Where("user_id = ?", userID).First(&original, "id = ?", id).Error
		if err != nil {
			return err
		}

		if err := reverseEffect(tx, original); err != nil {
			return err
		}

		// Select all mutable fields: a zero field of the update (for example
		// a cleared note or envelope link) must overwrite, not be skipped.
		err = tx.Model(&original).
			Select("Type", "Amount", "Date", "Note", "EnvelopeID").
			Updates(update).Error
		if err != nil {
			return err
		}

		if err := applyEffect(tx, update); err != nil {
			return err
		}

		// Reload so the caller gets the stored row with its timestamps
		return tx.First(&update, "id = ?", id).Error
	})
	if err != nil {
		return models.Transaction{}, err
	}

	return update, nil
}

// DeleteTransaction reverses the transaction's effect on envelope balances
// and removes the row, in one transaction. Creating and then deleting a
// transaction restores every touched balance exactly.
func (e *Engine) DeleteTransaction(userID uuid.UUID, id uuid.UUID) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		var transaction models.Transaction
		err := tx.Where("user_id = ?", userID).First(&transaction, "id = ?", id).Error
		if err != nil {
			return err
		}

		if err := reverseEffect(tx, transaction); err != nil {
			return err
		}

		return tx.Delete(&transaction).Error
	})
}

// DeleteEnvelope removes an envelope together with its transactions. Weak
// links from debts, goals, wishlist items and recurring items are cleared,
// those resources stay.
func (e *Engine) DeleteEnvelope(userID uuid.UUID, id uuid.UUID) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		var envelope models.Envelope
		err := tx.Where("user_id = ?", userID).First(&envelope, "id = ?", id).Error
		if err != nil {
			return err
		}

		err = tx.Where("envelope_id = ?", id).Delete(&models.Transaction{}).Error
		if err != nil {
			return err
		}

		for _, linked := range []interface{}{
			&models.Debt{},
			&models.Goal{},
			&models.WishlistItem{},
			&models.RecurringItem{},
		} {
			// SkipHooks: the zero-value model would trip the save-time
			// validation hooks, and only one column changes here.
			err = tx.Session(&gorm.Session{SkipHooks: true}).
				Model(linked).
				Where("envelope_id = ?", id).
				Update("envelope_id", nil).Error
			if err != nil {
				return err
			}
		}

		return tx.Delete(&envelope).Error
	})
}

func validateTransaction(transaction models.Transaction) error {
	if transaction.Type != models.TransactionTypeIncome && transaction.Type != models.TransactionTypeExpense {
		return models.ErrTransactionTypeInvalid
	}

	if !transaction.Amount.IsPositive() {
		return models.ErrAmountNotPositive
	}

	if transaction.Type == models.TransactionTypeExpense && transaction.EnvelopeID == nil {
		return models.ErrExpenseRequiresEnvelope
	}

	return nil
}

// applyEffect books the transaction against the envelope balances.
func applyEffect(tx *gorm.DB, transaction models.Transaction) error {
	if transaction.Type == models.TransactionTypeIncome {
		return allocate(tx, transaction.UserID, types.MonthOf(transaction.Date), transaction.Amount)
	}

	return debit(tx, *transaction.EnvelopeID, transaction.Amount)
}

// reverseEffect undoes the transaction's effect, using the envelope and the
// month of the original date. Editing a transaction's date must not reverse
// against the wrong month's envelopes.
func reverseEffect(tx *gorm.DB, transaction models.Transaction) error {
	if transaction.Type == models.TransactionTypeIncome {
		return deallocate(tx, transaction.UserID, types.MonthOf(transaction.Date), transaction.Amount)
	}

	return reverseDebit(tx, *transaction.EnvelopeID, transaction.Amount)
}
