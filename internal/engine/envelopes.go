package engine

import (
	"errors"

	"github.com/caixinhas/backend/internal/models"
	"github.com/caixinhas/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EnvelopeConfig is one entry of a bulk envelope configuration.
type EnvelopeConfig struct {
	Name          string          `json:"name" example:"Custos"`
	TargetPercent decimal.Decimal `json:"targetPercent" example:"55"` // Share of income in percent, 0-100
}

// ConfigureEnvelopes upserts the envelopes of a month by (user, name, month).
// An existing envelope only gets its target percentage overwritten, balances
// stay untouched; new envelopes start with zero balances.
//
// The percentages of a month are not forced to sum to 100. Allocation always
// distributes with whatever is stored, a mismatch is only logged.
func (e *Engine) ConfigureEnvelopes(userID uuid.UUID, month types.Month, configs []EnvelopeConfig) ([]models.Envelope, error) {
	if len(configs) == 0 {
		return nil, models.ErrEnvelopeConfigurationsEmpty
	}

	if month.IsZero() {
		return nil, models.ErrEnvelopeMonthRequired
	}

	hundred := decimal.NewFromInt(100)
	for _, config := range configs {
		if config.Name == "" {
			return nil, models.ErrEnvelopeNameEmpty
		}

		if config.TargetPercent.IsNegative() || config.TargetPercent.GreaterThan(hundred) {
			return nil, models.ErrTargetPercentOutOfRange
		}
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		for _, config := range configs {
			var envelope models.Envelope
			err := tx.Where("user_id = ? AND name = ? AND month = ?", userID, config.Name, month).
				First(&envelope).Error
			if err != nil && !errors.Is(err, models.ErrResourceNotFound) {
				return err
			}

			if err == nil {
				err = tx.Model(&envelope).Update("target_percent", config.TargetPercent).Error
				if err != nil {
					return err
				}
				continue
			}

			err = tx.Create(&models.Envelope{
				UserID:        userID,
				Name:          config.Name,
				Month:         month,
				TargetPercent: config.TargetPercent,
				Allocated:     decimal.Zero,
				Spent:         decimal.Zero,
				Available:     decimal.Zero,
			}).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	envelopes, err := e.Envelopes(userID, month)
	if err != nil {
		return nil, err
	}

	sum := decimal.Zero
	for _, envelope := range envelopes {
		sum = sum.Add(envelope.TargetPercent)
	}

	if !sum.Equal(hundred) {
		e.log.Warn().
			Str("user", userID.String()).
			Str("month", month.String()).
			Str("percentSum", sum.String()).
			Msg("envelope percentages do not sum to 100")
	}

	return envelopes, nil
}

// Envelopes returns all envelopes of the user for the month, ordered by
// name. A month without configuration yields an empty slice, not an error.
func (e *Engine) Envelopes(userID uuid.UUID, month types.Month) ([]models.Envelope, error) {
	envelopes := make([]models.Envelope, 0)

	err := e.db.
		Where("user_id = ? AND month = ?", userID, month).
		Order("name ASC").
		Find(&envelopes).Error
	if err != nil {
		return nil, err
	}

	return envelopes, nil
}
