package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/caixinhas/backend/internal/controllers/v1"
	"github.com/caixinhas/backend/internal/models"
	"github.com/caixinhas/backend/test"
)

// createSystemCategory seeds a category that belongs to no user, like the
// ones shipped with a fresh installation.
func (suite *TestSuiteStandard) createSystemCategory(name string, categoryType models.TransactionType) models.Category {
	category := models.Category{
		Name:   name,
		Type:   categoryType,
		System: true,
	}
	require.NoError(suite.T(), suite.db.Create(&category).Error)

	return category
}

func (suite *TestSuiteStandard) TestCreateCategory() {
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/categories", v1.CategoryEditable{
		Name: "Mercado",
		Type: models.TransactionTypeExpense,
		Icon: "🛒",
	}, suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)

	assert.Equal(suite.T(), "Mercado", response.Data.Name)
	assert.Equal(suite.T(), "#6B7280", response.Data.Color)
	assert.False(suite.T(), response.Data.System)
	require.NotNil(suite.T(), response.Data.UserID)
	assert.Equal(suite.T(), suite.user.ID, *response.Data.UserID)
}

func (suite *TestSuiteStandard) TestCreateCategoryValidation() {
	tests := []struct {
		name     string
		editable v1.CategoryEditable
	}{
		{"missing name", v1.CategoryEditable{Type: models.TransactionTypeExpense}},
		{"missing type", v1.CategoryEditable{Name: "Mercado"}},
		{"invalid type", v1.CategoryEditable{Name: "Mercado", Type: "transfer"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, suite.router, http.MethodPost, "/v1/categories", tt.editable, suite.authHeaders())
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestGetCategories() {
	suite.createSystemCategory("Alimentação", models.TransactionTypeExpense)
	suite.createSystemCategory("Salário", models.TransactionTypeIncome)

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/categories", v1.CategoryEditable{
		Name: "Academia",
		Type: models.TransactionTypeExpense,
	}, suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	// Another user's personal categories stay invisible
	otherToken, _ := suite.registerTestUser()
	recorder = test.Request(suite.T(), suite.router, http.MethodPost, "/v1/categories", v1.CategoryEditable{
		Name: "Pesca",
		Type: models.TransactionTypeExpense,
	}, map[string]string{"Authorization": "Bearer " + otherToken})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/categories", "", suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 3)

	// System categories come first, each block ordered by name
	assert.Equal(suite.T(), "Alimentação", response.Data[0].Name)
	assert.Equal(suite.T(), "Salário", response.Data[1].Name)
	assert.Equal(suite.T(), "Academia", response.Data[2].Name)
}

func (suite *TestSuiteStandard) TestGetCategoriesTypeFilter() {
	suite.createSystemCategory("Alimentação", models.TransactionTypeExpense)
	suite.createSystemCategory("Salário", models.TransactionTypeIncome)

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/categories?type=income", "", suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "Salário", response.Data[0].Name)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/categories?type=transfer", "", suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDeleteCategory() {
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/categories", v1.CategoryEditable{
		Name: "Academia",
		Type: models.TransactionTypeExpense,
	}, suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)

	recorder = test.Request(suite.T(), suite.router, http.MethodDelete, fmt.Sprintf("/v1/categories/%s", response.Data.ID), "", suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), suite.router, http.MethodDelete, fmt.Sprintf("/v1/categories/%s", response.Data.ID), "", suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeleteSystemCategory() {
	category := suite.createSystemCategory("Alimentação", models.TransactionTypeExpense)

	recorder := test.Request(suite.T(), suite.router, http.MethodDelete, fmt.Sprintf("/v1/categories/%s", category.ID), "", suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	var reloaded models.Category
	require.NoError(suite.T(), suite.db.First(&reloaded, category.ID).Error)
}

func (suite *TestSuiteStandard) TestDeleteOtherUsersCategory() {
	otherToken, _ := suite.registerTestUser()
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/categories", v1.CategoryEditable{
		Name: "Pesca",
		Type: models.TransactionTypeExpense,
	}, map[string]string{"Authorization": "Bearer " + otherToken})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)

	recorder = test.Request(suite.T(), suite.router, http.MethodDelete, fmt.Sprintf("/v1/categories/%s", response.Data.ID), "", suite.authHeaders())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
