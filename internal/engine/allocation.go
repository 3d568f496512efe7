package engine

import (
	"fmt"

	"github.com/caixinhas/backend/internal/models"
	"github.com/caixinhas/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// AllocateIncome distributes amount across all envelopes of the month
// according to their target percentages, in one transaction. With
// percentages summing to 100 the allocation increases sum up to exactly the
// amount; stored percentages are used as they are either way.
func (e *Engine) AllocateIncome(userID uuid.UUID, month types.Month, amount decimal.Decimal) ([]models.Envelope, error) {
	if !amount.IsPositive() {
		return nil, models.ErrAmountNotPositive
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		return allocate(tx, userID, month, amount)
	})
	if err != nil {
		return nil, err
	}

	return e.Envelopes(userID, month)
}

// allocate fans amount out across the month's envelopes inside tx.
// A positive amount allocates, a negative one reverses an allocation.
func allocate(tx *gorm.DB, userID uuid.UUID, month types.Month, amount decimal.Decimal) error {
	var envelopes []models.Envelope
	err := tx.Where("user_id = ? AND month = ?", userID, month).Find(&envelopes).Error
	if err != nil {
		return err
	}

	if len(envelopes) == 0 {
		return models.ErrNoEnvelopesConfigured
	}

	for _, envelope := range envelopes {
		share := amount.Mul(envelope.TargetPercent).Div(hundred)

		// Relative update so that concurrent writes to the same envelope
		// cannot lose each other's delta. Available is derived in the same
		// statement, it never carries a stale value.
		err = tx.Model(&models.Envelope{}).
			Where("id = ?", envelope.ID).
			Updates(map[string]interface{}{
				"allocated": gorm.Expr("allocated + ?", share),
				"available": gorm.Expr("(allocated + ?) - spent", share),
			}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// deallocate reverses a previous allocation of amount against the month's
// envelopes. The caller must pass the month of the original transaction
// date; reversing against the current month would corrupt both months.
//
// An empty envelope set is a no-op: the envelopes were deleted after the
// income was recorded and there is nothing left to reverse.
func deallocate(tx *gorm.DB, userID uuid.UUID, month types.Month, amount decimal.Decimal) error {
	var envelopes []models.Envelope
	err := tx.Where("user_id = ? AND month = ?", userID, month).Find(&envelopes).Error
	if err != nil {
		return err
	}

	for _, envelope := range envelopes {
		share := amount.Mul(envelope.TargetPercent).Div(hundred)

		err = tx.Model(&models.Envelope{}).
			Where("id = ?", envelope.ID).
			Updates(map[string]interface{}{
				"allocated": gorm.Expr("allocated - ?", share),
				"available": gorm.Expr("(allocated - ?) - spent", share),
			}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// debit books a spend of amount against a single envelope. There is no
// floor: available may go negative, overspending is surfaced to the user
// instead of being rejected.
func debit(tx *gorm.DB, envelopeID uuid.UUID, amount decimal.Decimal) error {
	res := tx.Model(&models.Envelope{}).
		Where("id = ?", envelopeID).
		Updates(map[string]interface{}{
			"spent":     gorm.Expr("spent + ?", amount),
			"available": gorm.Expr("allocated - (spent + ?)", amount),
		})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w envelope matching your query", models.ErrResourceNotFound)
	}

	return nil
}

// reverseDebit undoes a previous debit of amount.
func reverseDebit(tx *gorm.DB, envelopeID uuid.UUID, amount decimal.Decimal) error {
	return debit(tx, envelopeID, amount.Neg())
}
