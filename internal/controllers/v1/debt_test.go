package v1_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/caixinhas/backend/internal/controllers/v1"
	"github.com/caixinhas/backend/internal/models"
	"github.com/caixinhas/backend/test"
)

func (suite *TestSuiteStandard) createTestDebt(editable v1.DebtEditable) models.Debt {
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/debts", editable, suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.DebtResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)

	return *response.Data
}

func (suite *TestSuiteStandard) TestCreateDebt() {
	debt := suite.createTestDebt(v1.DebtEditable{
		Description:         "Car loan",
		OriginalAmount:      decimal.NewFromInt(1000),
		MonthlyInterestRate: decimal.NewFromFloat(1.5),
	})

	assert.Equal(suite.T(), models.DebtStatusPending, debt.Status)
	assert.True(suite.T(), debt.CurrentAmount.Equal(decimal.NewFromInt(1000)))
}

func (suite *TestSuiteStandard) TestCreateDebtEmptyDescription() {
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/debts", v1.DebtEditable{
		OriginalAmount: decimal.NewFromInt(1000),
	}, suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetDebtsStatusFilter() {
	suite.createTestDebt(v1.DebtEditable{
		Description:    "Car loan",
		OriginalAmount: decimal.NewFromInt(1000),
	})
	suite.createTestDebt(v1.DebtEditable{
		Description:    "Credit card backlog",
		OriginalAmount: decimal.NewFromInt(500),
		Status:         models.DebtStatusNegotiating,
	})

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/debts?status=negotiating", "", suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.DebtListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "Credit card backlog", response.Data[0].Description)
}

func (suite *TestSuiteStandard) TestUpdateDebtOriginalAmount() {
	debt := suite.createTestDebt(v1.DebtEditable{
		Description:    "Car loan",
		OriginalAmount: decimal.NewFromInt(1000),
	})

	// Correcting the original amount moves the current amount along
	recorder := test.Request(suite.T(), suite.router, http.MethodPatch, fmt.Sprintf("/v1/debts/%s", debt.ID), map[string]any{
		"originalAmount": decimal.NewFromInt(1200),
	}, suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.DebtResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Data.OriginalAmount.Equal(decimal.NewFromInt(1200)))
	assert.True(suite.T(), response.Data.CurrentAmount.Equal(decimal.NewFromInt(1200)))
}

func (suite *TestSuiteStandard) TestAmortizeDebtUntilSettled() {
	envelopes := suite.configureStandardEnvelopes("2024-07")
	debt := suite.createTestDebt(v1.DebtEditable{
		Description:    "Car loan",
		OriginalAmount: decimal.NewFromInt(1000),
	})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, fmt.Sprintf("/v1/debts/%s/amortizations", debt.ID), v1.AmortizationEditable{
		EnvelopeID:  envelopes[0].ID,
		Amount:      decimal.NewFromInt(400),
		PaymentDate: time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC),
	}, suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.DebtResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Data.CurrentAmount.Equal(decimal.NewFromInt(600)))
	assert.Equal(suite.T(), models.DebtStatusPending, response.Data.Status)

	// Overpaying floors at zero and settles the debt
	recorder = test.Request(suite.T(), suite.router, http.MethodPost, fmt.Sprintf("/v1/debts/%s/amortizations", debt.ID), v1.AmortizationEditable{
		EnvelopeID: envelopes[0].ID,
		Amount:     decimal.NewFromInt(700),
	}, suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Data.CurrentAmount.IsZero())
	assert.Equal(suite.T(), models.DebtStatusSettled, response.Data.Status)
	assert.NotNil(suite.T(), response.Data.SettledDate)

	// A settled debt takes no further payments
	recorder = test.Request(suite.T(), suite.router, http.MethodPost, fmt.Sprintf("/v1/debts/%s/amortizations", debt.ID), v1.AmortizationEditable{
		EnvelopeID: envelopes[0].ID,
		Amount:     decimal.NewFromInt(100),
	}, suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/debts/%s/amortizations", debt.ID), "", suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var amortizations v1.AmortizationListResponse
	test.DecodeResponse(suite.T(), &recorder, &amortizations)
	assert.Len(suite.T(), amortizations.Data, 2)
}

func (suite *TestSuiteStandard) TestDeleteDebtRemovesAmortizations() {
	envelopes := suite.configureStandardEnvelopes("2024-07")
	debt := suite.createTestDebt(v1.DebtEditable{
		Description:    "Car loan",
		OriginalAmount: decimal.NewFromInt(1000),
	})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, fmt.Sprintf("/v1/debts/%s/amortizations", debt.ID), v1.AmortizationEditable{
		EnvelopeID: envelopes[0].ID,
		Amount:     decimal.NewFromInt(400),
	}, suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.T(), suite.router, http.MethodDelete, fmt.Sprintf("/v1/debts/%s", debt.ID), "", suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	var count int64
	suite.db.Model(&models.Amortization{}).Where("debt_id = ?", debt.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}
