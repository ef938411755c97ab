package dto

import (
	"github.com/shopspring/decimal"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
)

// CreateFeeRequest is the body of POST /api/fees.
type CreateFeeRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description *string         `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	SchoolYear  string          `json:"schoolYear" binding:"required"`
}

// UpdateFeeRequest is the partial-update body of PUT /api/fees/:id.
type UpdateFeeRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	SchoolYear  *string          `json:"schoolYear"`
}

// CreateInvoiceRequest is the body of POST /api/invoices. The invoice
// number is generated server-side.
type CreateInvoiceRequest struct {
	StudentID int64            `json:"studentId" binding:"required,gt=0"`
	FeeID     *int64           `json:"feeId"`
	Amount    *decimal.Decimal `json:"amount"` // defaults to the fee amount
	IssuedAt  models.Date      `json:"issuedAt"`
	DueAt     models.Date      `json:"dueAt"`
}

// UpdateInvoiceRequest changes invoice metadata or cancels it. Paid status
// is never set directly; it follows from recorded payments.
type UpdateInvoiceRequest struct {
	Status *string      `json:"status" binding:"omitempty,oneof=open overdue cancelled"`
	DueAt  *models.Date `json:"dueAt"`
}

// RecordPaymentRequest is the body of POST /api/payments.
type RecordPaymentRequest struct {
	InvoiceID int64           `json:"invoiceId" binding:"required,gt=0"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required,oneof=cash bancontact transfer online"`
	PaidAt    models.Date     `json:"paidAt"`
	Reference *string         `json:"reference"`
}
