package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fee is a billable item in the school's fee catalog, based on the 'fees'
// table (inschrijvingsgeld, boekengeld, ...).
type Fee struct {
	ID           int64           `json:"id" db:"id"`
	SchoolID     int64           `json:"schoolId" db:"school_id"`
	Name         string          `json:"name" db:"name" example:"Inschrijvingsgeld"`
	Description  *string         `json:"description,omitempty" db:"description"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	SchoolYear   string          `json:"schoolYear" db:"school_year" example:"2025-2026"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}

// InvoiceStatus is the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceOpen      InvoiceStatus = "open"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceOpen, InvoicePaid, InvoiceOverdue, InvoiceCancelled:
		return true
	}
	return false
}

// Payable reports whether payments may still be recorded against an
// invoice in this state.
func (s InvoiceStatus) Payable() bool {
	return s == InvoiceOpen || s == InvoiceOverdue
}

// Invoice bills a student for a fee, based on the 'invoices' table.
// Number is generated ("INV-2026-000042") and unique per school.
type Invoice struct {
	ID        int64           `json:"id" db:"id"`
	SchoolID  int64           `json:"schoolId" db:"school_id"`
	Number    string          `json:"number" db:"number" example:"INV-2026-000042"`
	StudentID int64           `json:"studentId" db:"student_id"`
	FeeID     *int64          `json:"feeId,omitempty" db:"fee_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Status    InvoiceStatus   `json:"status" db:"status" example:"open"`
	IssuedAt  Date            `json:"issuedAt" db:"issued_at"`
	DueAt     Date            `json:"dueAt" db:"due_at"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`

	Student    *Student         `json:"student,omitempty"`    // Relation, no db tag
	AmountPaid *decimal.Decimal `json:"amountPaid,omitempty"` // Payment total, no db tag
}

// Payment records money received against an invoice, based on the
// 'payments' table.
type Payment struct {
	ID        int64           `json:"id" db:"id"`
	SchoolID  int64           `json:"schoolId" db:"school_id"`
	InvoiceID int64           `json:"invoiceId" db:"invoice_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Method    string          `json:"method" db:"method" example:"bancontact"`
	PaidAt    Date            `json:"paidAt" db:"paid_at"`
	Reference *string         `json:"reference,omitempty" db:"reference"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}
