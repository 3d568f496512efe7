package engine_test

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caixinhas/backend/internal/models"
)

func (suite *TestSuiteStandard) TestAmortizeDebt() {
	user := suite.createTestUser()
	month := testMonth()
	envelope := suite.createTestEnvelope(user.ID, month, "Custos", 55)

	_, err := suite.engine.AllocateIncome(user.ID, month, decimal.NewFromInt(2000))
	require.NoError(suite.T(), err)

	debt := models.Debt{
		UserID:         user.ID,
		Description:    "Car loan",
		OriginalAmount: decimal.NewFromInt(1000),
		CurrentAmount:  decimal.NewFromInt(1000),
	}
	require.NoError(suite.T(), suite.db.Create(&debt).Error)

	// Partial amortization leaves the debt pending
	updated, err := suite.engine.AmortizeDebt(user.ID, debt.ID, envelope.ID, decimal.NewFromInt(400), testDate(), "first payment")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), updated.CurrentAmount.Equal(decimal.NewFromInt(600)), "current amount is %s", updated.CurrentAmount)
	assert.Equal(suite.T(), models.DebtStatusPending, updated.Status)
	assert.Nil(suite.T(), updated.SettledDate)

	// Overpaying floors at zero and settles the debt
	updated, err = suite.engine.AmortizeDebt(user.ID, debt.ID, envelope.ID, decimal.NewFromInt(700), testDate(), "payoff")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), updated.CurrentAmount.IsZero(), "current amount is %s", updated.CurrentAmount)
	assert.Equal(suite.T(), models.DebtStatusSettled, updated.Status)
	require.NotNil(suite.T(), updated.SettledDate)

	// A settled debt rejects further amortizations
	_, err = suite.engine.AmortizeDebt(user.ID, debt.ID, envelope.ID, decimal.NewFromInt(10), testDate(), "")
	assert.ErrorIs(suite.T(), err, models.ErrDebtAlreadySettled)

	// Both payments were debited from the envelope
	reloaded := suite.envelope(envelope.ID)
	assert.True(suite.T(), reloaded.Spent.Equal(decimal.NewFromInt(1100)), "spent is %s", reloaded.Spent)

	// Both amortizations were recorded
	var count int64
	require.NoError(suite.T(), suite.db.Model(&models.Amortization{}).Where("debt_id = ?", debt.ID).Count(&count).Error)
	assert.Equal(suite.T(), int64(2), count)
}

func (suite *TestSuiteStandard) TestAmortizeDebtValidation() {
	user := suite.createTestUser()
	envelope := suite.createTestEnvelope(user.ID, testMonth(), "Custos", 55)

	debt := models.Debt{
		UserID:         user.ID,
		Description:    "Car loan",
		OriginalAmount: decimal.NewFromInt(1000),
		CurrentAmount:  decimal.NewFromInt(1000),
	}
	require.NoError(suite.T(), suite.db.Create(&debt).Error)

	_, err := suite.engine.AmortizeDebt(user.ID, debt.ID, envelope.ID, decimal.Zero, testDate(), "")
	assert.ErrorIs(suite.T(), err, models.ErrAmountNotPositive)

	other := suite.createTestUser()
	_, err = suite.engine.AmortizeDebt(other.ID, debt.ID, envelope.ID, decimal.NewFromInt(10), testDate(), "")
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestContributeToGoal() {
	user := suite.createTestUser()

	goal := models.Goal{
		UserID:       user.ID,
		Name:         "New notebook",
		TargetAmount: decimal.NewFromInt(500),
	}
	require.NoError(suite.T(), suite.db.Create(&goal).Error)

	// Below the target the goal stays active
	updated, err := suite.engine.ContributeToGoal(user.ID, goal.ID, decimal.NewFromInt(300), testDate(), nil, "")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), updated.CurrentAmount.Equal(decimal.NewFromInt(300)))
	assert.Equal(suite.T(), models.GoalStatusActive, updated.Status)

	// Reaching the target completes the goal
	updated, err = suite.engine.ContributeToGoal(user.ID, goal.ID, decimal.NewFromInt(250), testDate(), nil, "")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), updated.CurrentAmount.Equal(decimal.NewFromInt(550)))
	assert.Equal(suite.T(), models.GoalStatusCompleted, updated.Status)

	// Over-contribution stays allowed, the amount keeps growing
	updated, err = suite.engine.ContributeToGoal(user.ID, goal.ID, decimal.NewFromInt(100), testDate(), nil, "")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), updated.CurrentAmount.Equal(decimal.NewFromInt(650)))
	assert.Equal(suite.T(), models.GoalStatusCompleted, updated.Status)
}

func (suite *TestSuiteStandard) TestContributeToGoalFromEnvelope() {
	user := suite.createTestUser()
	month := testMonth()
	envelope := suite.createTestEnvelope(user.ID, month, "Metas", 30)

	_, err := suite.engine.AllocateIncome(user.ID, month, decimal.NewFromInt(1000))
	require.NoError(suite.T(), err)

	goal := models.Goal{
		UserID:       user.ID,
		Name:         "New notebook",
		TargetAmount: decimal.NewFromInt(500),
	}
	require.NoError(suite.T(), suite.db.Create(&goal).Error)

	_, err = suite.engine.ContributeToGoal(user.ID, goal.ID, decimal.NewFromInt(100), testDate(), &envelope.ID, "monthly saving")
	require.NoError(suite.T(), err)

	reloaded := suite.envelope(envelope.ID)
	assert.True(suite.T(), reloaded.Spent.Equal(decimal.NewFromInt(100)), "spent is %s", reloaded.Spent)
	assert.True(suite.T(), reloaded.Available.Equal(decimal.NewFromInt(200)), "available is %s", reloaded.Available)
}

func (suite *TestSuiteStandard) TestCreateInvoiceReservesLimit() {
	user := suite.createTestUser()

	card := models.Card{
		UserID:         user.ID,
		Name:           "Ultravioleta",
		Limit:          decimal.NewFromInt(5000),
		AvailableLimit: decimal.NewFromInt(5000),
		ClosingDay:     28,
		DueDay:         5,
		Active:         true,
	}
	require.NoError(suite.T(), suite.db.Create(&card).Error)

	invoice, err := suite.engine.CreateInvoice(user.ID, models.Invoice{
		CardID:      card.ID,
		Month:       testMonth(),
		TotalAmount: decimal.NewFromInt(350),
		ClosingDate: testDate(),
		DueDate:     testDate(),
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.InvoiceStatusOpen, invoice.Status)

	var reloaded models.Card
	require.NoError(suite.T(), suite.db.First(&reloaded, "id = ?", card.ID).Error)
	assert.True(suite.T(), reloaded.AvailableLimit.Equal(decimal.NewFromInt(4650)), "available limit is %s", reloaded.AvailableLimit)
}

func (suite *TestSuiteStandard) TestPayInvoice() {
	user := suite.createTestUser()

	card := models.Card{
		UserID:         user.ID,
		Name:           "Ultravioleta",
		Limit:          decimal.NewFromInt(5000),
		AvailableLimit: decimal.NewFromInt(5000),
		ClosingDay:     28,
		DueDay:         5,
		Active:         true,
	}
	require.NoError(suite.T(), suite.db.Create(&card).Error)

	account := models.Account{
		UserID:         user.ID,
		Name:           "Checking",
		Type:           models.AccountTypeChecking,
		InitialBalance: decimal.NewFromInt(100),
		Balance:        decimal.NewFromInt(100),
	}
	require.NoError(suite.T(), suite.db.Create(&account).Error)

	invoice, err := suite.engine.CreateInvoice(user.ID, models.Invoice{
		CardID:      card.ID,
		Month:       testMonth(),
		TotalAmount: decimal.NewFromInt(350),
		ClosingDate: testDate(),
		DueDate:     testDate(),
	})
	require.NoError(suite.T(), err)

	// A partial payment leaves the invoice open; the account may overdraw
	updated, err := suite.engine.PayInvoice(user.ID, invoice.ID, account.ID, decimal.NewFromInt(200), testDate())
	require.NoError(suite.T(), err)
	assert.True(suite.T(), updated.TotalAmount.Equal(decimal.NewFromInt(150)), "total is %s", updated.TotalAmount)
	assert.Equal(suite.T(), models.InvoiceStatusOpen, updated.Status)
	assert.Nil(suite.T(), updated.PaymentDate)

	var reloadedAccount models.Account
	require.NoError(suite.T(), suite.db.First(&reloadedAccount, "id = ?", account.ID).Error)
	assert.True(suite.T(), reloadedAccount.Balance.Equal(decimal.NewFromInt(-100)), "balance is %s", reloadedAccount.Balance)

	// Paying the rest floors at zero, marks the invoice paid and restores
	// the card's available limit
	updated, err = suite.engine.PayInvoice(user.ID, invoice.ID, account.ID, decimal.NewFromInt(200), testDate())
	require.NoError(suite.T(), err)
	assert.True(suite.T(), updated.TotalAmount.IsZero(), "total is %s", updated.TotalAmount)
	assert.Equal(suite.T(), models.InvoiceStatusPaid, updated.Status)
	require.NotNil(suite.T(), updated.PaymentDate)

	var reloadedCard models.Card
	require.NoError(suite.T(), suite.db.First(&reloadedCard, "id = ?", card.ID).Error)
	assert.True(suite.T(), reloadedCard.AvailableLimit.Equal(decimal.NewFromInt(5050)), "available limit is %s", reloadedCard.AvailableLimit)
}

func (suite *TestSuiteStandard) TestPayInvoiceScopedToUser() {
	user := suite.createTestUser()
	other := suite.createTestUser()

	card := models.Card{
		UserID:         user.ID,
		Name:           "Ultravioleta",
		Limit:          decimal.NewFromInt(5000),
		AvailableLimit: decimal.NewFromInt(5000),
		ClosingDay:     28,
		DueDay:         5,
		Active:         true,
	}
	require.NoError(suite.T(), suite.db.Create(&card).Error)

	account := models.Account{
		UserID:  other.ID,
		Name:    "Checking",
		Type:    models.AccountTypeChecking,
		Balance: decimal.NewFromInt(1000),
	}
	require.NoError(suite.T(), suite.db.Create(&account).Error)

	invoice, err := suite.engine.CreateInvoice(user.ID, models.Invoice{
		CardID:      card.ID,
		Month:       testMonth(),
		TotalAmount: decimal.NewFromInt(350),
		ClosingDate: testDate(),
		DueDate:     testDate(),
	})
	require.NoError(suite.T(), err)

	// The invoice belongs to user, not other
	_, err = suite.engine.PayInvoice(other.ID, invoice.ID, account.ID, decimal.NewFromInt(100), testDate())
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	// The account belongs to other, not user
	_, err = suite.engine.PayInvoice(user.ID, invoice.ID, account.ID, decimal.NewFromInt(100), testDate())
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestPurchaseWishlistItem() {
	user := suite.createTestUser()
	month := testMonth()
	envelope := suite.createTestEnvelope(user.ID, month, "Lazer", 15)

	_, err := suite.engine.AllocateIncome(user.ID, month, decimal.NewFromInt(10000))
	require.NoError(suite.T(), err)

	item := models.WishlistItem{
		UserID:              user.ID,
		Name:                "Standing desk",
		EstimatedValue:      decimal.NewFromInt(1200),
		MonthlyContribution: decimal.NewFromInt(200),
		Status:              models.WishlistStatusSaving,
	}
	require.NoError(suite.T(), suite.db.Create(&item).Error)

	actual := decimal.NewFromInt(1100)
	updated, err := suite.engine.PurchaseWishlistItem(user.ID, item.ID, &envelope.ID, &actual)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.WishlistStatusBought, updated.Status)
	require.NotNil(suite.T(), updated.PurchasedAt)

	// The purchase books an expense transaction against the envelope
	var transaction models.Transaction
	require.NoError(suite.T(), suite.db.First(&transaction, "user_id = ? AND note = ?", user.ID, item.Name).Error)
	assert.Equal(suite.T(), models.TransactionTypeExpense, transaction.Type)
	assert.True(suite.T(), transaction.Amount.Equal(actual))

	reloaded := suite.envelope(envelope.ID)
	assert.True(suite.T(), reloaded.Spent.Equal(actual), "spent is %s", reloaded.Spent)

	// Buying twice is rejected
	_, err = suite.engine.PurchaseWishlistItem(user.ID, item.ID, nil, nil)
	assert.ErrorIs(suite.T(), err, models.ErrWishlistItemAlreadyBought)
}

func (suite *TestSuiteStandard) TestPurchaseWishlistItemWithoutEnvelope() {
	user := suite.createTestUser()

	item := models.WishlistItem{
		UserID:         user.ID,
		Name:           "Standing desk",
		EstimatedValue: decimal.NewFromInt(1200),
		Status:         models.WishlistStatusWanting,
	}
	require.NoError(suite.T(), suite.db.Create(&item).Error)

	updated, err := suite.engine.PurchaseWishlistItem(user.ID, item.ID, nil, nil)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.WishlistStatusBought, updated.Status)

	// No transaction is booked without an envelope
	var count int64
	require.NoError(suite.T(), suite.db.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(suite.T(), count)
}
