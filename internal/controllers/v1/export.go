package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/caixinhas/backend/internal/httputil"
	"github.com/caixinhas/backend/internal/models"
)

// @Summary		Export transactions
// @Description	Returns an xlsx file with the user's transactions, oldest first. The date range is optional.
// @Tags			Export
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			from	query	string	false	"Earliest date in YYYY-MM-DD format"
// @Param			to		query	string	false	"Latest date in YYYY-MM-DD format"
// @Router			/v1/export/transactions [get]
func (co *Controller) ExportTransactions(c *gin.Context) {
	q := co.db.Where("user_id = ?", userID(c)).Order("date(date) ASC, datetime(created_at) ASC")

	if from := c.Query("from"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidDate.Error()})
			return
		}
		q = q.Where("date >= ?", parsed)
	}

	if to := c.Query("to"); to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidDate.Error()})
			return
		}
		q = q.Where("date < ?", parsed.AddDate(0, 0, 1))
	}

	var transactions []models.Transaction
	err := q.Find(&transactions).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// Envelope names are resolved once so the export does not need a
	// query per row
	var envelopes []models.Envelope
	err = co.db.Where("user_id = ?", userID(c)).Find(&envelopes).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	envelopeNames := make(map[uuid.UUID]string, len(envelopes))
	for _, envelope := range envelopes {
		envelopeNames[envelope.ID] = envelope.Name
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Transactions"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 10)
	f.SetColWidth(sheet, "C", "C", 12)
	f.SetColWidth(sheet, "D", "D", 40)
	f.SetColWidth(sheet, "E", "E", 20)

	headers := []string{"Date", "Type", "Amount", "Note", "Envelope"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	income := decimal.Zero
	expense := decimal.Zero
	for i, transaction := range transactions {
		row := i + 2

		envelope := ""
		if transaction.EnvelopeID != nil {
			envelope = envelopeNames[*transaction.EnvelopeID]
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), transaction.Date.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), string(transaction.Type))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), transaction.Amount.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), transaction.Note)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), envelope)

		switch transaction.Type {
		case models.TransactionTypeIncome:
			income = income.Add(transaction.Amount)
		case models.TransactionTypeExpense:
			expense = expense.Add(transaction.Amount)
		}
	}

	summaryRow := len(transactions) + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", summaryRow), income.Sub(expense).InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("D%d", summaryRow), fmt.Sprintf("%d transactions", len(transactions)))
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("E%d", summaryRow), headerStyle)

	filename := fmt.Sprintf("transactions_%s.xlsx", time.Now().In(time.UTC).Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}
}
