package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/caixinhas/backend/internal/httputil"
	"github.com/caixinhas/backend/internal/models"
)

type RecurringItemEditable struct {
	Name       string                 `json:"name" example:"Rent"`
	Type       models.TransactionType `json:"type" example:"expense"`
	Amount     decimal.Decimal        `json:"amount" example:"900"`
	DayOfMonth int                    `json:"dayOfMonth" example:"5"`
	EnvelopeID *uuid.UUID             `json:"envelopeId"`
	Active     bool                   `json:"active" example:"true"`
}

func (editable RecurringItemEditable) model() models.RecurringItem {
	return models.RecurringItem{
		Name:       editable.Name,
		Type:       editable.Type,
		Amount:     editable.Amount,
		DayOfMonth: editable.DayOfMonth,
		EnvelopeID: editable.EnvelopeID,
		Active:     editable.Active,
	}
}

type RecurringItemResponse struct {
	Data  *models.RecurringItem `json:"data"`
	Error *string               `json:"error"`
}

type RecurringListResponse struct {
	Data  []models.RecurringItem `json:"data"`
	Error *string                `json:"error"`
}

// @Summary		List recurring items
// @Description	Returns all recurring items of the user, ordered by day of month
// @Tags			Recurring
// @Produce		json
// @Success		200	{object}	RecurringListResponse
// @Failure		500	{object}	RecurringListResponse
// @Router			/v1/recurring [get]
func (co *Controller) GetRecurringItems(c *gin.Context) {
	items := make([]models.RecurringItem, 0)
	err := co.db.
		Where("user_id = ?", userID(c)).
		Order("day_of_month ASC, name ASC").
		Find(&items).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, RecurringListResponse{Data: items})
}

// @Summary		Get recurring item
// @Description	Returns a specific recurring item
// @Tags			Recurring
// @Produce		json
// @Success		200	{object}	RecurringItemResponse
// @Failure		400	{object}	RecurringItemResponse
// @Failure		404	{object}	RecurringItemResponse
// @Failure		500	{object}	RecurringItemResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring/{id} [get]
func (co *Controller) GetRecurringItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringItemResponse{Error: &e})
		return
	}

	var item models.RecurringItem
	err = co.db.Where("user_id = ?", userID(c)).First(&item, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringItemResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, RecurringItemResponse{Data: &item})
}

// @Summary		Create recurring item
// @Description	Creates a new recurring item. The item starts active.
// @Tags			Recurring
// @Accept			json
// @Produce		json
// @Success		201		{object}	RecurringItemResponse
// @Failure		400		{object}	RecurringItemResponse
// @Failure		500		{object}	RecurringItemResponse
// @Param			item	body		RecurringItemEditable	true	"Item"
// @Router			/v1/recurring [post]
func (co *Controller) CreateRecurringItem(c *gin.Context) {
	bodyFields, err := httputil.GetBodyFields(c, RecurringItemEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringItemResponse{Error: &e})
		return
	}

	var data RecurringItemEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringItemResponse{Error: &e})
		return
	}

	item := data.model()
	item.UserID = userID(c)

	if !slices.Contains(bodyFields, any("Active")) {
		item.Active = true
	}

	err = co.db.Create(&item).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringItemResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, RecurringItemResponse{Data: &item})
}

// @Summary		Update recurring item
// @Description	Updates an existing recurring item. Only values to be updated need to be specified.
// @Tags			Recurring
// @Accept			json
// @Produce		json
// @Success		200		{object}	RecurringItemResponse
// @Failure		400		{object}	RecurringItemResponse
// @Failure		404		{object}	RecurringItemResponse
// @Failure		500		{object}	RecurringItemResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			item	body		RecurringItemEditable	true	"Item"
// @Router			/v1/recurring/{id} [patch]
func (co *Controller) UpdateRecurringItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringItemResponse{Error: &e})
		return
	}

	var item models.RecurringItem
	err = co.db.Where("user_id = ?", userID(c)).First(&item, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringItemResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RecurringItemEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringItemResponse{Error: &e})
		return
	}

	var data RecurringItemEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringItemResponse{Error: &e})
		return
	}

	for _, field := range updateFields {
		switch field {
		case "Name":
			item.Name = data.Name
		case "Type":
			item.Type = data.Type
		case "Amount":
			item.Amount = data.Amount
		case "DayOfMonth":
			item.DayOfMonth = data.DayOfMonth
		case "EnvelopeID":
			item.EnvelopeID = data.EnvelopeID
		case "Active":
			item.Active = data.Active
		}
	}

	err = co.db.Model(&item).
		Select("Name", "Type", "Amount", "DayOfMonth", "EnvelopeID", "Active").
		Updates(&item).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringItemResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, RecurringItemResponse{Data: &item})
}

// @Summary		Delete recurring item
// @Description	Deletes a recurring item
// @Tags			Recurring
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring/{id} [delete]
func (co *Controller) DeleteRecurringItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var item models.RecurringItem
	err = co.db.Where("user_id = ?", userID(c)).First(&item, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = co.db.Delete(&item).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
