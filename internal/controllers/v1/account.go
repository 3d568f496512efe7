package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/caixinhas/backend/internal/httputil"
	"github.com/caixinhas/backend/internal/models"
)

type AccountEditable struct {
	Name           string             `json:"name" example:"Nubank"`
	Type           models.AccountType `json:"type" example:"checking"`
	InitialBalance decimal.Decimal    `json:"initialBalance" example:"250"`
}

func (editable AccountEditable) model() models.Account {
	return models.Account{
		Name:           editable.Name,
		Type:           editable.Type,
		InitialBalance: editable.InitialBalance,
	}
}

type AccountResponse struct {
	Data  *models.Account `json:"data"`
	Error *string         `json:"error"`
}

type AccountListResponse struct {
	Data  []models.Account `json:"data"`
	Error *string          `json:"error"`
}

// @Summary		List accounts
// @Description	Returns all accounts of the user, ordered by name
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	AccountListResponse
// @Failure		500	{object}	AccountListResponse
// @Router			/v1/accounts [get]
func (co *Controller) GetAccounts(c *gin.Context) {
	accounts := make([]models.Account, 0)
	err := co.db.Where("user_id = ?", userID(c)).Order("name ASC").Find(&accounts).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, AccountListResponse{Data: accounts})
}

// @Summary		Get account
// @Description	Returns a specific account
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	AccountResponse
// @Failure		400	{object}	AccountResponse
// @Failure		404	{object}	AccountResponse
// @Failure		500	{object}	AccountResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id} [get]
func (co *Controller) GetAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	var account models.Account
	err = co.db.Where("user_id = ?", userID(c)).First(&account, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &account})
}

// @Summary		Create account
// @Description	Creates a new account. The balance starts at the initial balance.
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		201		{object}	AccountResponse
// @Failure		400		{object}	AccountResponse
// @Failure		500		{object}	AccountResponse
// @Param			account	body		AccountEditable	true	"Account"
// @Router			/v1/accounts [post]
func (co *Controller) CreateAccount(c *gin.Context) {
	var data AccountEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	account := data.model()
	account.UserID = userID(c)
	account.Balance = account.InitialBalance

	err = co.db.Create(&account).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, AccountResponse{Data: &account})
}

// @Summary		Update account
// @Description	Updates an existing account. Only values to be updated need to be specified. Changing the initial balance moves the balance by the same difference.
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		200		{object}	AccountResponse
// @Failure		400		{object}	AccountResponse
// @Failure		404		{object}	AccountResponse
// @Failure		500		{object}	AccountResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			account	body		AccountEditable	true	"Account"
// @Router			/v1/accounts/{id} [patch]
func (co *Controller) UpdateAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	var account models.Account
	err = co.db.Where("user_id = ?", userID(c)).First(&account, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, AccountEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	var data AccountEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	for _, field := range updateFields {
		switch field {
		case "Name":
			account.Name = data.Name
		case "Type":
			account.Type = data.Type
		case "InitialBalance":
			// The balance moves with the initial balance so booked
			// movements are preserved
			account.Balance = account.Balance.Add(data.InitialBalance.Sub(account.InitialBalance))
			account.InitialBalance = data.InitialBalance
		}
	}

	err = co.db.Model(&account).
		Select("Name", "Type", "InitialBalance", "Balance").
		Updates(&account).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &account})
}

// @Summary		Delete account
// @Description	Deletes an account
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id} [delete]
func (co *Controller) DeleteAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var account models.Account
	err = co.db.Where("user_id = ?", userID(c)).First(&account, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = co.db.Delete(&account).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
