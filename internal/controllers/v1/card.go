package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"github.com/caixinhas/backend/internal/httputil"
	"github.com/caixinhas/backend/internal/models"
	"github.com/caixinhas/backend/internal/types"
)

type CardEditable struct {
	Name       string          `json:"name" example:"Nubank Ultravioleta"`
	Brand      string          `json:"brand" example:"Mastercard"`
	Limit      decimal.Decimal `json:"limit" example:"5000"`
	ClosingDay int             `json:"closingDay" example:"28"`
	DueDay     int             `json:"dueDay" example:"5"`
	Active     bool            `json:"active" example:"true"`
}

func (editable CardEditable) model() models.Card {
	return models.Card{
		Name:       editable.Name,
		Brand:      editable.Brand,
		Limit:      editable.Limit,
		ClosingDay: editable.ClosingDay,
		DueDay:     editable.DueDay,
		Active:     editable.Active,
	}
}

type InvoiceEditable struct {
	Month       string          `json:"month" example:"2024-07"`
	TotalAmount decimal.Decimal `json:"totalAmount" example:"350"`
	ClosingDate time.Time       `json:"closingDate"`
	DueDate     time.Time       `json:"dueDate"`
}

type PaymentEditable struct {
	AccountID   uuid.UUID       `json:"accountId"`
	Amount      decimal.Decimal `json:"amount" example:"350"`
	PaymentDate time.Time       `json:"paymentDate"`
}

type CardResponse struct {
	Data  *models.Card `json:"data"`
	Error *string      `json:"error"`
}

type CardListResponse struct {
	Data  []models.Card `json:"data"`
	Error *string       `json:"error"`
}

type InvoiceResponse struct {
	Data  *models.Invoice `json:"data"`
	Error *string         `json:"error"`
}

type InvoiceListResponse struct {
	Data  []models.Invoice `json:"data"`
	Error *string          `json:"error"`
}

// @Summary		List cards
// @Description	Returns all cards of the user, ordered by name
// @Tags			Cards
// @Produce		json
// @Success		200	{object}	CardListResponse
// @Failure		500	{object}	CardListResponse
// @Router			/v1/cards [get]
func (co *Controller) GetCards(c *gin.Context) {
	cards := make([]models.Card, 0)
	err := co.db.Where("user_id = ?", userID(c)).Order("name ASC").Find(&cards).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CardListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, CardListResponse{Data: cards})
}

// @Summary		Get card
// @Description	Returns a specific card
// @Tags			Cards
// @Produce		json
// @Success		200	{object}	CardResponse
// @Failure		400	{object}	CardResponse
// @Failure		404	{object}	CardResponse
// @Failure		500	{object}	CardResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cards/{id} [get]
func (co *Controller) GetCard(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CardResponse{Error: &e})
		return
	}

	var card models.Card
	err = co.db.Where("user_id = ?", userID(c)).First(&card, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CardResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, CardResponse{Data: &card})
}

// @Summary		Create card
// @Description	Creates a new card. The available limit starts at the limit, the card starts active.
// @Tags			Cards
// @Accept			json
// @Produce		json
// @Success		201		{object}	CardResponse
// @Failure		400		{object}	CardResponse
// @Failure		500		{object}	CardResponse
// @Param			card	body		CardEditable	true	"Card"
// @Router			/v1/cards [post]
func (co *Controller) CreateCard(c *gin.Context) {
	bodyFields, err := httputil.GetBodyFields(c, CardEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CardResponse{Error: &e})
		return
	}

	var data CardEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CardResponse{Error: &e})
		return
	}

	card := data.model()
	card.UserID = userID(c)
	card.AvailableLimit = card.Limit

	// A card starts active unless the body says otherwise
	if !slices.Contains(bodyFields, any("Active")) {
		card.Active = true
	}

	err = co.db.Create(&card).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CardResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, CardResponse{Data: &card})
}

// @Summary		Update card
// @Description	Updates an existing card. Only values to be updated need to be specified. Changing the limit moves the available limit by the same difference.
// @Tags			Cards
// @Accept			json
// @Produce		json
// @Success		200		{object}	CardResponse
// @Failure		400		{object}	CardResponse
// @Failure		404		{object}	CardResponse
// @Failure		500		{object}	CardResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			card	body		CardEditable	true	"Card"
// @Router			/v1/cards/{id} [patch]
func (co *Controller) UpdateCard(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CardResponse{Error: &e})
		return
	}

	var card models.Card
	err = co.db.Where("user_id = ?", userID(c)).First(&card, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CardResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CardEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CardResponse{Error: &e})
		return
	}

	var data CardEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CardResponse{Error: &e})
		return
	}

	for _, field := range updateFields {
		switch field {
		case "Name":
			card.Name = data.Name
		case "Brand":
			card.Brand = data.Brand
		case "Limit":
			card.AvailableLimit = card.AvailableLimit.Add(data.Limit.Sub(card.Limit))
			card.Limit = data.Limit
		case "ClosingDay":
			card.ClosingDay = data.ClosingDay
		case "DueDay":
			card.DueDay = data.DueDay
		case "Active":
			card.Active = data.Active
		}
	}

	err = co.db.Model(&card).
		Select("Name", "Brand", "Limit", "AvailableLimit", "ClosingDay", "DueDay", "Active").
		Updates(&card).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CardResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, CardResponse{Data: &card})
}

// @Summary		Delete card
// @Description	Deletes a card with its invoices
// @Tags			Cards
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cards/{id} [delete]
func (co *Controller) DeleteCard(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var card models.Card
	err = co.db.Where("user_id = ?", userID(c)).First(&card, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = co.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("card_id = ?", card.ID).Delete(&models.Invoice{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&card).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		List invoices
// @Description	Returns the invoices of a card, newest month first
// @Tags			Cards
// @Produce		json
// @Success		200	{object}	InvoiceListResponse
// @Failure		400	{object}	InvoiceListResponse
// @Failure		404	{object}	InvoiceListResponse
// @Failure		500	{object}	InvoiceListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cards/{id}/invoices [get]
func (co *Controller) GetInvoices(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvoiceListResponse{Error: &e})
		return
	}

	var card models.Card
	err = co.db.Where("user_id = ?", userID(c)).First(&card, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvoiceListResponse{Error: &e})
		return
	}

	invoices := make([]models.Invoice, 0)
	err = co.db.
		Where("card_id = ?", card.ID).
		Order("date(month) DESC").
		Find(&invoices).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvoiceListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, InvoiceListResponse{Data: invoices})
}

// @Summary		Create invoice
// @Description	Creates an invoice for a card and month. Closing and due dates default to the card's closing and due days. Creating an invoice reserves its total on the card's available limit.
// @Tags			Cards
// @Accept			json
// @Produce		json
// @Success		201		{object}	InvoiceResponse
// @Failure		400		{object}	InvoiceResponse
// @Failure		404		{object}	InvoiceResponse
// @Failure		500		{object}	InvoiceResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			invoice	body		InvoiceEditable	true	"Invoice"
// @Router			/v1/cards/{id}/invoices [post]
func (co *Controller) CreateInvoice(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvoiceResponse{Error: &e})
		return
	}

	var card models.Card
	err = co.db.Where("user_id = ?", userID(c)).First(&card, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvoiceResponse{Error: &e})
		return
	}

	var data InvoiceEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvoiceResponse{Error: &e})
		return
	}

	month, err := types.ParseMonth(data.Month)
	if err != nil {
		e := httputil.ErrInvalidMonth.Error()
		c.JSON(http.StatusBadRequest, InvoiceResponse{Error: &e})
		return
	}

	invoice := models.Invoice{
		CardID:      card.ID,
		Month:       month,
		TotalAmount: data.TotalAmount,
		ClosingDate: data.ClosingDate,
		DueDate:     data.DueDate,
	}

	first := time.Time(month)
	if invoice.ClosingDate.IsZero() {
		invoice.ClosingDate = time.Date(first.Year(), first.Month(), card.ClosingDay, 0, 0, 0, 0, time.UTC)
	}
	if invoice.DueDate.IsZero() {
		// The due day falls into the month after closing
		next := first.AddDate(0, 1, 0)
		invoice.DueDate = time.Date(next.Year(), next.Month(), card.DueDay, 0, 0, 0, 0, time.UTC)
	}

	invoice, err = co.engine.CreateInvoice(userID(c), invoice)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvoiceResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, InvoiceResponse{Data: &invoice})
}

// @Summary		Pay invoice
// @Description	Pays an invoice from an account. The invoice total is floored at zero and the invoice is paid when it reaches zero. The account balance may go negative; the paid amount is credited back to the card's available limit.
// @Tags			Cards
// @Accept			json
// @Produce		json
// @Success		201		{object}	InvoiceResponse
// @Failure		400		{object}	InvoiceResponse
// @Failure		404		{object}	InvoiceResponse
// @Failure		500		{object}	InvoiceResponse
// @Param			id		path		URIInvoice		true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payment	body		PaymentEditable	true	"Payment"
// @Router			/v1/cards/{id}/invoices/{invoiceId}/payments [post]
func (co *Controller) PayInvoice(c *gin.Context) {
	var uri URIInvoice
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvoiceResponse{Error: &e})
		return
	}

	var data PaymentEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvoiceResponse{Error: &e})
		return
	}

	invoice, err := co.engine.PayInvoice(userID(c), uri.InvoiceID.UUID, data.AccountID, data.Amount, data.PaymentDate)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvoiceResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, InvoiceResponse{Data: &invoice})
}
