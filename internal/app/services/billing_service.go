package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/logger"
)

type billingStore interface {
	CreateFee(ctx context.Context, fee *models.Fee) error
	GetFeeByID(ctx context.Context, schoolID, id int64) (*models.Fee, error)
	ListFees(ctx context.Context, schoolID int64, filter repositories.ListFilter, schoolYear string) ([]*models.Fee, int64, error)
	UpdateFee(ctx context.Context, fee *models.Fee) error
	FeeHasInvoices(ctx context.Context, schoolID, id int64) (bool, error)
	DeleteFee(ctx context.Context, schoolID, id int64) error

	CreateInvoice(ctx context.Context, invoice *models.Invoice) error
	GetInvoiceByID(ctx context.Context, schoolID, id int64) (*models.Invoice, error)
	ListInvoices(ctx context.Context, schoolID int64, filter repositories.ListFilter, studentID *int64) ([]*models.Invoice, int64, error)
	UpdateInvoice(ctx context.Context, invoice *models.Invoice) error
	MarkOverdueInvoices(ctx context.Context, schoolID int64, asOf models.Date) (int64, error)

	CreatePayment(ctx context.Context, payment *models.Payment) error
	ListPayments(ctx context.Context, schoolID, invoiceID int64) ([]*models.Payment, error)
	SumPayments(ctx context.Context, schoolID, invoiceID int64) (decimal.Decimal, error)
}

// BillingService manages the fee catalog, invoices and payments of one
// school.
type BillingService struct {
	billing  billingStore
	students studentReader
}

// NewBillingService creates a new BillingService
func NewBillingService(billing billingStore, students studentReader) *BillingService {
	return &BillingService{billing: billing, students: students}
}

// CreateFee adds a fee catalog entry. Amount must be positive.
func (s *BillingService) CreateFee(ctx context.Context, schoolID int64, req dto.CreateFeeRequest) (*models.Fee, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewBadRequestError("Fee amount must be positive")
	}

	fee := &models.Fee{
		SchoolID:    schoolID,
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		SchoolYear:  req.SchoolYear,
	}
	if err := s.billing.CreateFee(ctx, fee); err != nil {
		return nil, err
	}
	return fee, nil
}

// GetFee retrieves a fee within the school.
func (s *BillingService) GetFee(ctx context.Context, schoolID, id int64) (*models.Fee, error) {
	return s.billing.GetFeeByID(ctx, schoolID, id)
}

// ListFees retrieves fees, optionally narrowed to one school year.
func (s *BillingService) ListFees(ctx context.Context, schoolID int64, filter repositories.ListFilter, schoolYear string) ([]*models.Fee, int64, error) {
	return s.billing.ListFees(ctx, schoolID, filter, schoolYear)
}

// UpdateFee applies a partial update.
func (s *BillingService) UpdateFee(ctx context.Context, schoolID, id int64, req dto.UpdateFeeRequest) (*models.Fee, error) {
	fee, err := s.billing.GetFeeByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		fee.Name = *req.Name
	}
	if req.Description != nil {
		fee.Description = req.Description
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewBadRequestError("Fee amount must be positive")
		}
		fee.Amount = *req.Amount
	}
	if req.SchoolYear != nil {
		fee.SchoolYear = *req.SchoolYear
	}

	if err := s.billing.UpdateFee(ctx, fee); err != nil {
		return nil, err
	}
	return fee, nil
}

// DeleteFee removes a fee unless invoices reference it.
func (s *BillingService) DeleteFee(ctx context.Context, schoolID, id int64) error {
	if _, err := s.billing.GetFeeByID(ctx, schoolID, id); err != nil {
		return err
	}

	hasInvoices, err := s.billing.FeeHasInvoices(ctx, schoolID, id)
	if err != nil {
		return err
	}
	if hasInvoices {
		return apperrors.NewConflictError("Fee is referenced by invoices")
	}

	return s.billing.DeleteFee(ctx, schoolID, id)
}

// CreateInvoice bills a student. When the request names a fee but no
// amount, the fee's amount is used. The invoice number is generated
// server-side.
func (s *BillingService) CreateInvoice(ctx context.Context, schoolID int64, req dto.CreateInvoiceRequest) (*models.Invoice, error) {
	if _, err := s.students.GetByID(ctx, schoolID, req.StudentID); err != nil {
		return nil, err
	}

	var amount decimal.Decimal
	if req.Amount != nil {
		amount = *req.Amount
	} else if req.FeeID != nil {
		fee, err := s.billing.GetFeeByID(ctx, schoolID, *req.FeeID)
		if err != nil {
			return nil, err
		}
		amount = fee.Amount
	} else {
		return nil, apperrors.NewBadRequestError("Either amount or feeId is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewBadRequestError("Invoice amount must be positive")
	}

	issuedAt := req.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = models.DateOf(time.Now())
	}
	dueAt := req.DueAt
	if dueAt.IsZero() {
		dueAt = models.DateOf(issuedAt.AddDate(0, 1, 0))
	}
	if dueAt.Before(issuedAt.Time) {
		return nil, apperrors.NewBadRequestError("Due date cannot precede issue date")
	}

	invoice := &models.Invoice{
		SchoolID:  schoolID,
		StudentID: req.StudentID,
		FeeID:     req.FeeID,
		Amount:    amount,
		Status:    models.InvoiceOpen,
		IssuedAt:  issuedAt,
		DueAt:     dueAt,
	}
	if err := s.billing.CreateInvoice(ctx, invoice); err != nil {
		return nil, err
	}

	logger.Info().Int64("schoolId", schoolID).Str("number", invoice.Number).Msg("Invoice issued")
	return invoice, nil
}

// GetInvoice retrieves an invoice within the school, with the total paid
// against it so far.
func (s *BillingService) GetInvoice(ctx context.Context, schoolID, id int64) (*models.Invoice, error) {
	invoice, err := s.billing.GetInvoiceByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}
	paid, err := s.billing.SumPayments(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}
	invoice.AmountPaid = &paid
	return invoice, nil
}

// ListInvoices retrieves invoices, optionally narrowed by student or
// status.
func (s *BillingService) ListInvoices(ctx context.Context, schoolID int64, filter repositories.ListFilter, studentID *int64) ([]*models.Invoice, int64, error) {
	return s.billing.ListInvoices(ctx, schoolID, filter, studentID)
}

// UpdateInvoice changes the due date or moves the invoice between open,
// overdue and cancelled. Paid is never set here; it follows from
// payments. Cancelled and paid invoices are immutable.
func (s *BillingService) UpdateInvoice(ctx context.Context, schoolID, id int64, req dto.UpdateInvoiceRequest) (*models.Invoice, error) {
	invoice, err := s.billing.GetInvoiceByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == models.InvoicePaid || invoice.Status == models.InvoiceCancelled {
		return nil, apperrors.NewConflictError("Invoice can no longer be modified")
	}

	if req.Status != nil {
		invoice.Status = models.InvoiceStatus(*req.Status)
	}
	if req.DueAt != nil {
		if req.DueAt.Before(invoice.IssuedAt.Time) {
			return nil, apperrors.NewBadRequestError("Due date cannot precede issue date")
		}
		invoice.DueAt = *req.DueAt
	}

	if err := s.billing.UpdateInvoice(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// MarkOverdue flips open invoices past their due date to overdue and
// returns the number affected.
func (s *BillingService) MarkOverdue(ctx context.Context, schoolID int64) (int64, error) {
	return s.billing.MarkOverdueInvoices(ctx, schoolID, models.DateOf(time.Now()))
}

// RecordPayment records money against an invoice. The repository flips
// the invoice to paid once the payment total covers its amount; paying a
// cancelled or already paid invoice is rejected.
func (s *BillingService) RecordPayment(ctx context.Context, schoolID int64, req dto.RecordPaymentRequest) (*models.Payment, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewBadRequestError("Payment amount must be positive")
	}

	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = models.DateOf(time.Now())
	}

	payment := &models.Payment{
		SchoolID:  schoolID,
		InvoiceID: req.InvoiceID,
		Amount:    req.Amount,
		Method:    req.Method,
		PaidAt:    paidAt,
		Reference: req.Reference,
	}
	if err := s.billing.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("schoolId", schoolID).
		Int64("invoiceId", req.InvoiceID).
		Str("amount", req.Amount.String()).
		Msg("Payment recorded")
	return payment, nil
}

// ListPayments retrieves the payments of an invoice.
func (s *BillingService) ListPayments(ctx context.Context, schoolID, invoiceID int64) ([]*models.Payment, error) {
	if _, err := s.billing.GetInvoiceByID(ctx, schoolID, invoiceID); err != nil {
		return nil, err
	}
	return s.billing.ListPayments(ctx, schoolID, invoiceID)
}
