package v1

import (
	cx_uuid "github.com/caixinhas/backend/internal/uuid"
)

type URIID struct {
	ID cx_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URIInvoice struct {
	URIID
	InvoiceID cx_uuid.UUID `uri:"invoiceId" binding:"required" format:"UUID"` // ID of the invoice
}

type QueryMonth struct {
	Month string `form:"month" example:"2024-07"` // Year and month in YYYY-MM format
}
