package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caixinhas/backend/internal/models"
)

func (suite *TestSuiteStandard) TestCreateIncomeTransaction() {
	user := suite.createTestUser()
	month := testMonth()
	suite.configureStandardEnvelopes(user.ID, month)

	transaction, err := suite.engine.CreateTransaction(user.ID, models.Transaction{
		Type:   models.TransactionTypeIncome,
		Amount: decimal.NewFromInt(1000),
		Date:   testDate(),
		Note:   "Salary",
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID, transaction.UserID)

	envelopes, err := suite.engine.Envelopes(user.ID, month)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), envelopes[0].Allocated.Equal(decimal.NewFromInt(550)), "allocated is %s", envelopes[0].Allocated)
}

func (suite *TestSuiteStandard) TestCreateIncomeWithoutEnvelopes() {
	user := suite.createTestUser()

	_, err := suite.engine.CreateTransaction(user.ID, models.Transaction{
		Type:   models.TransactionTypeIncome,
		Amount: decimal.NewFromInt(1000),
		Date:   testDate(),
	})
	assert.ErrorIs(suite.T(), err, models.ErrNoEnvelopesConfigured)
}

func (suite *TestSuiteStandard) TestCreateExpenseTransaction() {
	user := suite.createTestUser()
	month := testMonth()
	suite.configureStandardEnvelopes(user.ID, month)

	_, err := suite.engine.AllocateIncome(user.ID, month, decimal.NewFromInt(1000))
	require.NoError(suite.T(), err)

	envelopes, err := suite.engine.Envelopes(user.ID, month)
	require.NoError(suite.T(), err)
	custos := envelopes[0]

	// Overspending is allowed, available goes negative
	_, err = suite.engine.CreateTransaction(user.ID, models.Transaction{
		Type:       models.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(600),
		Date:       testDate(),
		EnvelopeID: &custos.ID,
	})
	require.NoError(suite.T(), err)

	custos = suite.envelope(custos.ID)
	assert.True(suite.T(), custos.Spent.Equal(decimal.NewFromInt(600)), "spent is %s", custos.Spent)
	assert.True(suite.T(), custos.Available.Equal(decimal.NewFromInt(-50)), "available is %s", custos.Available)
}

func (suite *TestSuiteStandard) TestCreateTransactionValidation() {
	user := suite.createTestUser()
	month := testMonth()
	envelope := suite.createTestEnvelope(user.ID, month, "Custos", 55)

	tests := []struct {
		name        string
		transaction models.Transaction
		err         error
	}{
		{
			"invalid type",
			models.Transaction{Type: "transfer", Amount: decimal.NewFromInt(10)},
			models.ErrTransactionTypeInvalid,
		},
		{
			"zero amount",
			models.Transaction{Type: models.TransactionTypeExpense, Amount: decimal.Zero, EnvelopeID: &envelope.ID},
			models.ErrAmountNotPositive,
		},
		{
			"negative amount",
			models.Transaction{Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(-10), EnvelopeID: &envelope.ID},
			models.ErrAmountNotPositive,
		},
		{
			"expense without envelope",
			models.Transaction{Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(10)},
			models.ErrExpenseRequiresEnvelope,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, err := suite.engine.CreateTransaction(user.ID, tt.transaction)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestDeleteTransactionRestoresBalances() {
	user := suite.createTestUser()
	month := testMonth()
	suite.configureStandardEnvelopes(user.ID, month)

	_, err := suite.engine.AllocateIncome(user.ID, month, decimal.NewFromInt(1000))
	require.NoError(suite.T(), err)

	envelopes, err := suite.engine.Envelopes(user.ID, month)
	require.NoError(suite.T(), err)
	custos := envelopes[0]

	expense, err := suite.engine.CreateTransaction(user.ID, models.Transaction{
		Type:       models.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(200),
		Date:       testDate(),
		EnvelopeID: &custos.ID,
	})
	require.NoError(suite.T(), err)

	reloaded := suite.envelope(custos.ID)
	assert.True(suite.T(), reloaded.Available.Equal(decimal.NewFromInt(350)), "available is %s", reloaded.Available)

	err = suite.engine.DeleteTransaction(user.ID, expense.ID)
	require.NoError(suite.T(), err)

	reloaded = suite.envelope(custos.ID)
	assert.True(suite.T(), reloaded.Spent.IsZero(), "spent is %s", reloaded.Spent)
	assert.True(suite.T(), reloaded.Available.Equal(decimal.NewFromInt(550)), "available is %s", reloaded.Available)
}

func (suite *TestSuiteStandard) TestDeleteIncomeTransaction() {
	user := suite.createTestUser()
	month := testMonth()
	suite.configureStandardEnvelopes(user.ID, month)

	income, err := suite.engine.CreateTransaction(user.ID, models.Transaction{
		Type:   models.TransactionTypeIncome,
		Amount: decimal.NewFromInt(1000),
		Date:   testDate(),
	})
	require.NoError(suite.T(), err)

	err = suite.engine.DeleteTransaction(user.ID, income.ID)
	require.NoError(suite.T(), err)

	envelopes, err := suite.engine.Envelopes(user.ID, month)
	require.NoError(suite.T(), err)
	for _, envelope := range envelopes {
		assert.True(suite.T(), envelope.Allocated.IsZero(), "%s allocated is %s", envelope.Name, envelope.Allocated)
		assert.True(suite.T(), envelope.Available.IsZero(), "%s available is %s", envelope.Name, envelope.Available)
	}
}

func (suite *TestSuiteStandard) TestUpdateTransactionIdentical() {
	user := suite.createTestUser()
	month := testMonth()
	suite.configureStandardEnvelopes(user.ID, month)

	_, err := suite.engine.AllocateIncome(user.ID, month, decimal.NewFromInt(1000))
	require.NoError(suite.T(), err)

	envelopes, err := suite.engine.Envelopes(user.ID, month)
	require.NoError(suite.T(), err)
	custos := envelopes[0]

	expense, err := suite.engine.CreateTransaction(user.ID, models.Transaction{
		Type:       models.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(200),
		Date:       testDate(),
		EnvelopeID: &custos.ID,
	})
	require.NoError(suite.T(), err)

	// Editing to identical values must leave every balance unchanged
	_, err = suite.engine.UpdateTransaction(user.ID, expense.ID, models.Transaction{
		Type:       expense.Type,
		Amount:     expense.Amount,
		Date:       expense.Date,
		Note:       expense.Note,
		EnvelopeID: expense.EnvelopeID,
	})
	require.NoError(suite.T(), err)

	reloaded := suite.envelope(custos.ID)
	assert.True(suite.T(), reloaded.Spent.Equal(decimal.NewFromInt(200)), "spent is %s", reloaded.Spent)
	assert.True(suite.T(), reloaded.Available.Equal(decimal.NewFromInt(350)), "available is %s", reloaded.Available)
}

func (suite *TestSuiteStandard) TestUpdateTransactionReturnsStoredRow() {
	user := suite.createTestUser()
	month := testMonth()
	suite.configureStandardEnvelopes(user.ID, month)

	_, err := suite.engine.AllocateIncome(user.ID, month, decimal.NewFromInt(1000))
	require.NoError(suite.T(), err)

	envelopes, err := suite.engine.Envelopes(user.ID, month)
	require.NoError(suite.T(), err)
	custos := envelopes[0]

	expense, err := suite.engine.CreateTransaction(user.ID, models.Transaction{
		Type:       models.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(200),
		Date:       testDate(),
		EnvelopeID: &custos.ID,
	})
	require.NoError(suite.T(), err)

	updated, err := suite.engine.UpdateTransaction(user.ID, expense.ID, models.Transaction{
		Type:       expense.Type,
		Amount:     decimal.NewFromInt(150),
		Date:       expense.Date,
		EnvelopeID: expense.EnvelopeID,
	})
	require.NoError(suite.T(), err)

	// The returned value is the stored row, timestamps included
	assert.Equal(suite.T(), expense.ID, updated.ID)
	assert.True(suite.T(), updated.Amount.Equal(decimal.NewFromInt(150)), "amount is %s", updated.Amount)
	assert.False(suite.T(), updated.CreatedAt.IsZero())
	assert.False(suite.T(), updated.UpdatedAt.IsZero())
}

func (suite *TestSuiteStandard) TestUpdateTransactionMovesEnvelope() {
	user := suite.createTestUser()
	month := testMonth()
	suite.configureStandardEnvelopes(user.ID, month)

	envelopes, err := suite.engine.AllocateIncome(user.ID, month, decimal.NewFromInt(1000))
	require.NoError(suite.T(), err)

	custos := envelopes[0]
	lazer := envelopes[1]

	expense, err := suite.engine.CreateTransaction(user.ID, models.Transaction{
		Type:       models.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(100),
		Date:       testDate(),
		EnvelopeID: &custos.ID,
	})
	require.NoError(suite.T(), err)

	// Move the expense to another envelope and change the amount
	_, err = suite.engine.UpdateTransaction(user.ID, expense.ID, models.Transaction{
		Type:       models.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(50),
		Date:       expense.Date,
		EnvelopeID: &lazer.ID,
	})
	require.NoError(suite.T(), err)

	reloadedCustos := suite.envelope(custos.ID)
	assert.True(suite.T(), reloadedCustos.Spent.IsZero(), "spent is %s", reloadedCustos.Spent)
	assert.True(suite.T(), reloadedCustos.Available.Equal(decimal.NewFromInt(550)), "available is %s", reloadedCustos.Available)

	reloadedLazer := suite.envelope(lazer.ID)
	assert.True(suite.T(), reloadedLazer.Spent.Equal(decimal.NewFromInt(50)), "spent is %s", reloadedLazer.Spent)
	assert.True(suite.T(), reloadedLazer.Available.Equal(decimal.NewFromInt(100)), "available is %s", reloadedLazer.Available)
}

func (suite *TestSuiteStandard) TestUpdateIncomeAmount() {
	user := suite.createTestUser()
	month := testMonth()
	suite.configureStandardEnvelopes(user.ID, month)

	income, err := suite.engine.CreateTransaction(user.ID, models.Transaction{
		Type:   models.TransactionTypeIncome,
		Amount: decimal.NewFromInt(1000),
		Date:   testDate(),
	})
	require.NoError(suite.T(), err)

	_, err = suite.engine.UpdateTransaction(user.ID, income.ID, models.Transaction{
		Type:   models.TransactionTypeIncome,
		Amount: decimal.NewFromInt(500),
		Date:   income.Date,
	})
	require.NoError(suite.T(), err)

	envelopes, err := suite.engine.Envelopes(user.ID, month)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), envelopes[0].Allocated.Equal(decimal.NewFromInt(275)), "allocated is %s", envelopes[0].Allocated)
}

func (suite *TestSuiteStandard) TestTransactionsScopedToUser() {
	user := suite.createTestUser()
	other := suite.createTestUser()
	month := testMonth()
	envelope := suite.createTestEnvelope(user.ID, month, "Custos", 55)

	expense, err := suite.engine.CreateTransaction(user.ID, models.Transaction{
		Type:       models.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(10),
		Date:       testDate(),
		EnvelopeID: &envelope.ID,
	})
	require.NoError(suite.T(), err)

	// Another user must not be able to touch the transaction
	err = suite.engine.DeleteTransaction(other.ID, expense.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	_, err = suite.engine.UpdateTransaction(other.ID, expense.ID, models.Transaction{
		Type:       models.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(20),
		EnvelopeID: &envelope.ID,
	})
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestDeleteEnvelope() {
	user := suite.createTestUser()
	month := testMonth()
	suite.configureStandardEnvelopes(user.ID, month)

	envelopes, err := suite.engine.AllocateIncome(user.ID, month, decimal.NewFromInt(1000))
	require.NoError(suite.T(), err)
	custos := envelopes[0]

	expense, err := suite.engine.CreateTransaction(user.ID, models.Transaction{
		Type:       models.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(100),
		Date:       testDate(),
		EnvelopeID: &custos.ID,
	})
	require.NoError(suite.T(), err)

	debt := models.Debt{
		UserID:         user.ID,
		Description:    "Car loan",
		OriginalAmount: decimal.NewFromInt(1000),
		CurrentAmount:  decimal.NewFromInt(1000),
		EnvelopeID:     &custos.ID,
	}
	require.NoError(suite.T(), suite.db.Create(&debt).Error)

	err = suite.engine.DeleteEnvelope(user.ID, custos.ID)
	require.NoError(suite.T(), err)

	// The envelope's transactions are gone
	var count int64
	require.NoError(suite.T(), suite.db.Model(&models.Transaction{}).Where("id = ?", expense.ID).Count(&count).Error)
	assert.Zero(suite.T(), count)

	// The debt stays with its link cleared
	var reloaded models.Debt
	require.NoError(suite.T(), suite.db.First(&reloaded, "id = ?", debt.ID).Error)
	assert.Nil(suite.T(), reloaded.EnvelopeID)

	remaining, err := suite.engine.Envelopes(user.ID, month)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), remaining, 2)
}

func (suite *TestSuiteStandard) TestDeleteEnvelopeScopedToUser() {
	user := suite.createTestUser()
	other := suite.createTestUser()
	envelope := suite.createTestEnvelope(user.ID, testMonth(), "Custos", 55)

	err := suite.engine.DeleteEnvelope(other.ID, envelope.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}
