package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/caixinhas/backend/internal/engine"
	"github.com/caixinhas/backend/internal/httputil"
	"github.com/caixinhas/backend/internal/models"
	"github.com/caixinhas/backend/internal/types"
)

type ConfigureEnvelopesEditable struct {
	Month     string                  `json:"month" example:"2024-07"` // Year and month in YYYY-MM format
	Envelopes []engine.EnvelopeConfig `json:"envelopes"`
}

type AllocateIncomeEditable struct {
	Month  string          `json:"month" example:"2024-07"` // Defaults to the current month
	Amount decimal.Decimal `json:"amount" example:"1000"`
}

type EnvelopeResponse struct {
	Data  *models.Envelope `json:"data"`
	Error *string          `json:"error"`
}

type EnvelopeListResponse struct {
	Data  []models.Envelope `json:"data"`
	Error *string           `json:"error"`
}

// queryMonth resolves the month query parameter, defaulting to the current
// month when it is not set.
func queryMonth(c *gin.Context) (types.Month, error) {
	var query QueryMonth
	if err := c.ShouldBindQuery(&query); err != nil {
		return types.Month{}, httputil.ErrInvalidMonth
	}

	if query.Month == "" {
		return types.MonthOf(time.Now().In(time.UTC)), nil
	}

	month, err := types.ParseMonth(query.Month)
	if err != nil {
		return types.Month{}, httputil.ErrInvalidMonth
	}

	return month, nil
}

// @Summary		List envelopes
// @Description	Returns the envelopes of a month, ordered by name
// @Tags			Envelopes
// @Produce		json
// @Success		200		{object}	EnvelopeListResponse
// @Failure		400		{object}	EnvelopeListResponse
// @Failure		500		{object}	EnvelopeListResponse
// @Param			month	query		string	false	"Month in YYYY-MM format, defaults to the current month"
// @Router			/v1/envelopes [get]
func (co *Controller) GetEnvelopes(c *gin.Context) {
	month, err := queryMonth(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeListResponse{Error: &e})
		return
	}

	envelopes, err := co.engine.Envelopes(userID(c), month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, EnvelopeListResponse{Data: envelopes})
}

// @Summary		Get envelope
// @Description	Returns a specific envelope
// @Tags			Envelopes
// @Produce		json
// @Success		200	{object}	EnvelopeResponse
// @Failure		400	{object}	EnvelopeResponse
// @Failure		404	{object}	EnvelopeResponse
// @Failure		500	{object}	EnvelopeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/envelopes/{id} [get]
func (co *Controller) GetEnvelope(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{Error: &e})
		return
	}

	var envelope models.Envelope
	err = co.db.Where("user_id = ?", userID(c)).First(&envelope, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, EnvelopeResponse{Data: &envelope})
}

// @Summary		Configure envelopes
// @Description	Upserts the envelopes of a month. Existing envelopes only get their target percentage updated, balances stay untouched.
// @Tags			Envelopes
// @Accept			json
// @Produce		json
// @Success		200				{object}	EnvelopeListResponse
// @Failure		400				{object}	EnvelopeListResponse
// @Failure		500				{object}	EnvelopeListResponse
// @Param			configuration	body		ConfigureEnvelopesEditable	true	"Configuration"
// @Router			/v1/envelopes/configure [post]
func (co *Controller) ConfigureEnvelopes(c *gin.Context) {
	var data ConfigureEnvelopesEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeListResponse{Error: &e})
		return
	}

	month, err := types.ParseMonth(data.Month)
	if err != nil {
		e := httputil.ErrInvalidMonth.Error()
		c.JSON(http.StatusBadRequest, EnvelopeListResponse{Error: &e})
		return
	}

	envelopes, err := co.engine.ConfigureEnvelopes(userID(c), month, data.Envelopes)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, EnvelopeListResponse{Data: envelopes})
}

// @Summary		Allocate income
// @Description	Distributes an income amount across the envelopes of a month without booking a transaction
// @Tags			Envelopes
// @Accept			json
// @Produce		json
// @Success		200			{object}	EnvelopeListResponse
// @Failure		400			{object}	EnvelopeListResponse
// @Failure		500			{object}	EnvelopeListResponse
// @Param			allocation	body		AllocateIncomeEditable	true	"Allocation"
// @Router			/v1/envelopes/allocate [post]
func (co *Controller) AllocateIncome(c *gin.Context) {
	var data AllocateIncomeEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeListResponse{Error: &e})
		return
	}

	month := types.MonthOf(time.Now().In(time.UTC))
	if data.Month != "" {
		month, err = types.ParseMonth(data.Month)
		if err != nil {
			e := httputil.ErrInvalidMonth.Error()
			c.JSON(http.StatusBadRequest, EnvelopeListResponse{Error: &e})
			return
		}
	}

	envelopes, err := co.engine.AllocateIncome(userID(c), month, data.Amount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, EnvelopeListResponse{Data: envelopes})
}

// @Summary		Delete envelope
// @Description	Deletes an envelope with its transactions. Debts, goals, wishlist items and recurring items keep existing with their envelope link cleared.
// @Tags			Envelopes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/envelopes/{id} [delete]
func (co *Controller) DeleteEnvelope(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = co.engine.DeleteEnvelope(userID(c), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
