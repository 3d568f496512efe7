package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/caixinhas/backend/internal/httputil"
	"github.com/caixinhas/backend/internal/models"
	cx_uuid "github.com/caixinhas/backend/internal/uuid"
)

type TransactionEditable struct {
	Type       models.TransactionType `json:"type" example:"expense"`
	Amount     decimal.Decimal        `json:"amount" example:"14.03"`
	Date       time.Time              `json:"date"`
	Note       string                 `json:"note" example:"Lunch"`
	EnvelopeID *uuid.UUID             `json:"envelopeId"`
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Type:       editable.Type,
		Amount:     editable.Amount,
		Date:       editable.Date,
		Note:       editable.Note,
		EnvelopeID: editable.EnvelopeID,
	}
}

type TransactionQueryFilter struct {
	Type       string       `form:"type" filterField:"false"`     // Filter by type
	EnvelopeID cx_uuid.UUID `form:"envelope" filterField:"false"` // Filter by envelope, "envelope=" filters transactions without one
	From       string       `form:"from" filterField:"false"`     // Earliest date, YYYY-MM-DD
	To         string       `form:"to" filterField:"false"`       // Latest date, YYYY-MM-DD
	Offset     uint         `form:"offset" filterField:"false"`   // Offset for pagination
	Limit      int          `form:"limit" filterField:"false"`    // Maximum number of resources, defaults to 50
}

type Pagination struct {
	Count  int   `json:"count"`
	Offset uint  `json:"offset"`
	Limit  int   `json:"limit"`
	Total  int64 `json:"total"`
}

type TransactionResponse struct {
	Data  *models.Transaction `json:"data"`
	Error *string             `json:"error"`
}

type TransactionListResponse struct {
	Data       []models.Transaction `json:"data"`
	Error      *string              `json:"error"`
	Pagination *Pagination          `json:"pagination"`
}

type TransactionStats struct {
	Month   string          `json:"month" example:"2024-07"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
	Count   int             `json:"count"`
}

type TransactionStatsResponse struct {
	Data  *TransactionStats `json:"data"`
	Error *string           `json:"error"`
}

// @Summary		List transactions
// @Description	Returns transactions, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Param			type		query	string	false	"Filter by type"
// @Param			envelope	query	string	false	"Filter by envelope ID, an empty value filters transactions without an envelope"
// @Param			from		query	string	false	"Earliest date in YYYY-MM-DD format"
// @Param			to			query	string	false	"Latest date in YYYY-MM-DD format"
// @Param			offset		query	uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of transactions returned. Defaults to 50."
// @Router			/v1/transactions [get]
func (co *Controller) GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &e})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := co.db.
		Where("user_id = ?", userID(c)).
		Order("date(date) DESC, datetime(created_at) DESC")

	if filter.Type != "" {
		if !slices.Contains([]string{string(models.TransactionTypeIncome), string(models.TransactionTypeExpense)}, filter.Type) {
			e := models.ErrTransactionTypeInvalid.Error()
			c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &e})
			return
		}

		q = q.Where("type = ?", filter.Type)
	}

	if slices.Contains(setFields, "EnvelopeID") {
		if filter.EnvelopeID == cx_uuid.Nil {
			q = q.Where("envelope_id IS NULL")
		} else {
			q = q.Where("envelope_id = ?", filter.EnvelopeID.UUID)
		}
	}

	if filter.From != "" {
		from, err := time.Parse("2006-01-02", filter.From)
		if err != nil {
			e := httputil.ErrInvalidDate.Error()
			c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &e})
			return
		}
		q = q.Where("date >= ?", from)
	}

	if filter.To != "" {
		to, err := time.Parse("2006-01-02", filter.To)
		if err != nil {
			e := httputil.ErrInvalidDate.Error()
			c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &e})
			return
		}
		// The whole day is included
		q = q.Where("date < ?", to.AddDate(0, 0, 1))
	}

	// Set the offset. Does not need checking, as the zero value is the
	// query default anyway
	q = q.Offset(int(filter.Offset))

	// Default to 50 transactions and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	transactions := make([]models.Transaction, 0)
	err := q.Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: transactions,
		Pagination: &Pagination{
			Count:  len(transactions),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [get]
func (co *Controller) GetTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	var transaction models.Transaction
	err = co.db.Where("user_id = ?", userID(c)).First(&transaction, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

// @Summary		Create transaction
// @Description	Books a transaction. Income is allocated across the envelopes of its month, an expense is debited from its envelope.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func (co *Controller) CreateTransaction(c *gin.Context) {
	var data TransactionEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	transaction, err := co.engine.CreateTransaction(userID(c), data.model())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: &transaction})
}

// @Summary		Update transaction
// @Description	Updates an existing transaction. Only values to be updated need to be specified. The effect of the previous values on the envelope balances is reversed and the new effect is applied.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func (co *Controller) UpdateTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	var transaction models.Transaction
	err = co.db.Where("user_id = ?", userID(c)).First(&transaction, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	var data TransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	// Start from the stored values and overwrite what the body sets
	update := models.Transaction{
		Type:       transaction.Type,
		Amount:     transaction.Amount,
		Date:       transaction.Date,
		Note:       transaction.Note,
		EnvelopeID: transaction.EnvelopeID,
	}

	for _, field := range updateFields {
		switch field {
		case "Type":
			update.Type = data.Type
		case "Amount":
			update.Amount = data.Amount
		case "Date":
			update.Date = data.Date
		case "Note":
			update.Note = data.Note
		case "EnvelopeID":
			update.EnvelopeID = data.EnvelopeID
		}
	}

	updated, err := co.engine.UpdateTransaction(userID(c), uri.ID.UUID, update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &updated})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction and reverses its effect on the envelope balances
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [delete]
func (co *Controller) DeleteTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = co.engine.DeleteTransaction(userID(c), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Transaction statistics
// @Description	Returns the income, expense and balance totals of a month
// @Tags			Transactions
// @Produce		json
// @Success		200		{object}	TransactionStatsResponse
// @Failure		400		{object}	TransactionStatsResponse
// @Failure		500		{object}	TransactionStatsResponse
// @Param			month	query		string	false	"Month in YYYY-MM format, defaults to the current month"
// @Router			/v1/transactions/stats [get]
func (co *Controller) GetTransactionStats(c *gin.Context) {
	month, err := queryMonth(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionStatsResponse{Error: &e})
		return
	}

	from := time.Time(month)
	to := time.Time(month.AddDate(0, 1))

	var transactions []models.Transaction
	err = co.db.
		Where("user_id = ? AND date >= ? AND date < ?", userID(c), from, to).
		Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionStatsResponse{Error: &e})
		return
	}

	income := decimal.Zero
	expense := decimal.Zero
	for _, transaction := range transactions {
		switch transaction.Type {
		case models.TransactionTypeIncome:
			income = income.Add(transaction.Amount)
		case models.TransactionTypeExpense:
			expense = expense.Add(transaction.Amount)
		}
	}

	c.JSON(http.StatusOK, TransactionStatsResponse{
		Data: &TransactionStats{
			Month:   month.String(),
			Income:  income,
			Expense: expense,
			Balance: income.Sub(expense),
			Count:   len(transactions),
		},
	})
}
