package models_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/caixinhas/backend/internal/models"
	"github.com/caixinhas/backend/internal/types"
)

func (suite *TestSuiteStandard) TestEnvelopeNameUniquePerUserAndMonth() {
	user := suite.createTestUser()
	month := types.NewMonth(2024, time.July)

	envelope := models.Envelope{
		UserID: user.ID,
		Name:   "Custos",
		Month:  month,
	}
	require.NoError(suite.T(), suite.db.Create(&envelope).Error)

	// Same name and month for the same user collides
	err := suite.db.Create(&models.Envelope{
		UserID: user.ID,
		Name:   "Custos",
		Month:  month,
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrEnvelopeNameNotUnique)

	// Another month is fine
	require.NoError(suite.T(), suite.db.Create(&models.Envelope{
		UserID: user.ID,
		Name:   "Custos",
		Month:  month.AddDate(0, 1),
	}).Error)

	// Another user is fine, too
	other := suite.createTestUser()
	require.NoError(suite.T(), suite.db.Create(&models.Envelope{
		UserID: other.ID,
		Name:   "Custos",
		Month:  month,
	}).Error)
}

func (suite *TestSuiteStandard) TestEnvelopeTargetPercentRange() {
	tests := []struct {
		percent decimal.Decimal
		err     error
	}{
		{decimal.NewFromInt(-1), models.ErrTargetPercentOutOfRange},
		{decimal.NewFromInt(101), models.ErrTargetPercentOutOfRange},
		{decimal.Zero, nil},
		{decimal.NewFromInt(100), nil},
	}

	for _, tt := range tests {
		envelope := models.Envelope{TargetPercent: tt.percent}

		err := envelope.AfterSave(&gorm.DB{})
		assert.Equal(suite.T(), tt.err, err)
	}
}

func (suite *TestSuiteStandard) TestEnvelopeTrimWhitespace() {
	user := suite.createTestUser()

	envelope := models.Envelope{
		UserID: user.ID,
		Name:   "  Custos \t",
		Month:  types.NewMonth(2024, time.July),
	}
	require.NoError(suite.T(), suite.db.Create(&envelope).Error)

	assert.Equal(suite.T(), "Custos", envelope.Name)
}
