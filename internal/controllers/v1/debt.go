package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/caixinhas/backend/internal/httputil"
	"github.com/caixinhas/backend/internal/models"
)

type DebtEditable struct {
	Description         string            `json:"description" example:"Car loan"`
	OriginalAmount      decimal.Decimal   `json:"originalAmount" example:"1000"`
	MonthlyInterestRate decimal.Decimal   `json:"monthlyInterestRate" example:"1.5"`
	Status              models.DebtStatus `json:"status" example:"pending"`
	StartDate           time.Time         `json:"startDate"`
	EnvelopeID          *uuid.UUID        `json:"envelopeId"`
}

func (editable DebtEditable) model() models.Debt {
	return models.Debt{
		Description:         editable.Description,
		OriginalAmount:      editable.OriginalAmount,
		MonthlyInterestRate: editable.MonthlyInterestRate,
		Status:              editable.Status,
		StartDate:           editable.StartDate,
		EnvelopeID:          editable.EnvelopeID,
	}
}

type AmortizationEditable struct {
	EnvelopeID  uuid.UUID       `json:"envelopeId"`
	Amount      decimal.Decimal `json:"amount" example:"400"`
	PaymentDate time.Time       `json:"paymentDate"`
	Note        string          `json:"note"`
}

type DebtResponse struct {
	Data  *models.Debt `json:"data"`
	Error *string      `json:"error"`
}

type DebtListResponse struct {
	Data  []models.Debt `json:"data"`
	Error *string       `json:"error"`
}

type AmortizationListResponse struct {
	Data  []models.Amortization `json:"data"`
	Error *string               `json:"error"`
}

// @Summary		List debts
// @Description	Returns all debts of the user, newest first
// @Tags			Debts
// @Produce		json
// @Success		200		{object}	DebtListResponse
// @Failure		400		{object}	DebtListResponse
// @Failure		500		{object}	DebtListResponse
// @Param			status	query		string	false	"Filter by status"
// @Router			/v1/debts [get]
func (co *Controller) GetDebts(c *gin.Context) {
	q := co.db.Where("user_id = ?", userID(c)).Order("datetime(created_at) DESC")

	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}

	debts := make([]models.Debt, 0)
	err := q.Find(&debts).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, DebtListResponse{Data: debts})
}

// @Summary		Get debt
// @Description	Returns a specific debt
// @Tags			Debts
// @Produce		json
// @Success		200	{object}	DebtResponse
// @Failure		400	{object}	DebtResponse
// @Failure		404	{object}	DebtResponse
// @Failure		500	{object}	DebtResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/debts/{id} [get]
func (co *Controller) GetDebt(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{Error: &e})
		return
	}

	var debt models.Debt
	err = co.db.Where("user_id = ?", userID(c)).First(&debt, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, DebtResponse{Data: &debt})
}

// @Summary		Create debt
// @Description	Creates a new debt. The current amount starts at the original amount.
// @Tags			Debts
// @Accept			json
// @Produce		json
// @Success		201		{object}	DebtResponse
// @Failure		400		{object}	DebtResponse
// @Failure		500		{object}	DebtResponse
// @Param			debt	body		DebtEditable	true	"Debt"
// @Router			/v1/debts [post]
func (co *Controller) CreateDebt(c *gin.Context) {
	var data DebtEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{Error: &e})
		return
	}

	if data.Description == "" {
		e := models.ErrDebtDescriptionEmpty.Error()
		c.JSON(http.StatusBadRequest, DebtResponse{Error: &e})
		return
	}

	debt := data.model()
	debt.UserID = userID(c)
	debt.CurrentAmount = debt.OriginalAmount

	err = co.db.Create(&debt).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, DebtResponse{Data: &debt})
}

// @Summary		Update debt
// @Description	Updates an existing debt. Only values to be updated need to be specified. Changing the original amount moves the current amount by the same difference.
// @Tags			Debts
// @Accept			json
// @Produce		json
// @Success		200		{object}	DebtResponse
// @Failure		400		{object}	DebtResponse
// @Failure		404		{object}	DebtResponse
// @Failure		500		{object}	DebtResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			debt	body		DebtEditable	true	"Debt"
// @Router			/v1/debts/{id} [patch]
func (co *Controller) UpdateDebt(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{Error: &e})
		return
	}

	var debt models.Debt
	err = co.db.Where("user_id = ?", userID(c)).First(&debt, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, DebtEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{Error: &e})
		return
	}

	var data DebtEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{Error: &e})
		return
	}

	for _, field := range updateFields {
		switch field {
		case "Description":
			debt.Description = data.Description
		case "OriginalAmount":
			debt.CurrentAmount = debt.CurrentAmount.Add(data.OriginalAmount.Sub(debt.OriginalAmount))
			debt.OriginalAmount = data.OriginalAmount
		case "MonthlyInterestRate":
			debt.MonthlyInterestRate = data.MonthlyInterestRate
		case "Status":
			debt.Status = data.Status
		case "StartDate":
			debt.StartDate = data.StartDate
		case "EnvelopeID":
			debt.EnvelopeID = data.EnvelopeID
		}
	}

	err = co.db.Model(&debt).
		Select("Description", "OriginalAmount", "CurrentAmount", "MonthlyInterestRate", "Status", "StartDate", "EnvelopeID").
		Updates(&debt).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, DebtResponse{Data: &debt})
}

// @Summary		Delete debt
// @Description	Deletes a debt with its amortizations
// @Tags			Debts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/debts/{id} [delete]
func (co *Controller) DeleteDebt(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var debt models.Debt
	err = co.db.Where("user_id = ?", userID(c)).First(&debt, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = co.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("debt_id = ?", debt.ID).Delete(&models.Amortization{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&debt).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		List amortizations
// @Description	Returns the amortizations of a debt, newest first
// @Tags			Debts
// @Produce		json
// @Success		200	{object}	AmortizationListResponse
// @Failure		400	{object}	AmortizationListResponse
// @Failure		404	{object}	AmortizationListResponse
// @Failure		500	{object}	AmortizationListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/debts/{id}/amortizations [get]
func (co *Controller) GetAmortizations(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AmortizationListResponse{Error: &e})
		return
	}

	var debt models.Debt
	err = co.db.Where("user_id = ?", userID(c)).First(&debt, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AmortizationListResponse{Error: &e})
		return
	}

	amortizations := make([]models.Amortization, 0)
	err = co.db.
		Where("debt_id = ?", debt.ID).
		Order("datetime(payment_date) DESC").
		Find(&amortizations).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AmortizationListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, AmortizationListResponse{Data: amortizations})
}

// @Summary		Amortize debt
// @Description	Pays down a debt from an envelope. The current amount is floored at zero and the debt is settled when it reaches zero. Settled debts reject further amortizations.
// @Tags			Debts
// @Accept			json
// @Produce		json
// @Success		201				{object}	DebtResponse
// @Failure		400				{object}	DebtResponse
// @Failure		404				{object}	DebtResponse
// @Failure		500				{object}	DebtResponse
// @Param			id				path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			amortization	body		AmortizationEditable	true	"Amortization"
// @Router			/v1/debts/{id}/amortizations [post]
func (co *Controller) CreateAmortization(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{Error: &e})
		return
	}

	var data AmortizationEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{Error: &e})
		return
	}

	debt, err := co.engine.AmortizeDebt(userID(c), uri.ID.UUID, data.EnvelopeID, data.Amount, data.PaymentDate, data.Note)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, DebtResponse{Data: &debt})
}
