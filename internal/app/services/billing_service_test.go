package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
)

type fakeStudentReader struct {
	students map[int64]*models.Student
}

func (f *fakeStudentReader) GetByID(_ context.Context, schoolID, id int64) (*models.Student, error) {
	if s, ok := f.students[id]; ok && s.SchoolID == schoolID {
		return s, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

type fakeBillingStore struct {
	nextID   int64
	fees     map[int64]*models.Fee
	invoices map[int64]*models.Invoice
	payments []*models.Payment
	feeUsed  map[int64]bool
}

func newFakeBillingStore() *fakeBillingStore {
	return &fakeBillingStore{
		nextID:   1,
		fees:     make(map[int64]*models.Fee),
		invoices: make(map[int64]*models.Invoice),
		feeUsed:  make(map[int64]bool),
	}
}

func (f *fakeBillingStore) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeBillingStore) CreateFee(_ context.Context, fee *models.Fee) error {
	fee.ID = f.id()
	f.fees[fee.ID] = fee
	return nil
}

func (f *fakeBillingStore) GetFeeByID(_ context.Context, schoolID, id int64) (*models.Fee, error) {
	if fee, ok := f.fees[id]; ok && fee.SchoolID == schoolID {
		return fee, nil
	}
	return nil, apperrors.NewNotFoundError("Fee not found")
}

func (f *fakeBillingStore) ListFees(_ context.Context, schoolID int64, _ repositories.ListFilter, _ string) ([]*models.Fee, int64, error) {
	var out []*models.Fee
	for _, fee := range f.fees {
		if fee.SchoolID == schoolID {
			out = append(out, fee)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeBillingStore) UpdateFee(_ context.Context, fee *models.Fee) error {
	f.fees[fee.ID] = fee
	return nil
}

func (f *fakeBillingStore) FeeHasInvoices(_ context.Context, _, id int64) (bool, error) {
	return f.feeUsed[id], nil
}

func (f *fakeBillingStore) DeleteFee(_ context.Context, _, id int64) error {
	if _, ok := f.fees[id]; !ok {
		return apperrors.NewNotFoundError("Fee not found")
	}
	delete(f.fees, id)
	return nil
}

func (f *fakeBillingStore) CreateInvoice(_ context.Context, invoice *models.Invoice) error {
	invoice.ID = f.id()
	invoice.Number = "INV-2026-000001"
	f.invoices[invoice.ID] = invoice
	return nil
}

func (f *fakeBillingStore) GetInvoiceByID(_ context.Context, schoolID, id int64) (*models.Invoice, error) {
	if inv, ok := f.invoices[id]; ok && inv.SchoolID == schoolID {
		copied := *inv
		return &copied, nil
	}
	return nil, apperrors.ErrInvoiceNotFound
}

func (f *fakeBillingStore) ListInvoices(_ context.Context, schoolID int64, _ repositories.ListFilter, _ *int64) ([]*models.Invoice, int64, error) {
	var out []*models.Invoice
	for _, inv := range f.invoices {
		if inv.SchoolID == schoolID {
			out = append(out, inv)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeBillingStore) UpdateInvoice(_ context.Context, invoice *models.Invoice) error {
	if _, ok := f.invoices[invoice.ID]; !ok {
		return apperrors.ErrInvoiceNotFound
	}
	f.invoices[invoice.ID] = invoice
	return nil
}

func (f *fakeBillingStore) MarkOverdueInvoices(_ context.Context, schoolID int64, asOf models.Date) (int64, error) {
	var n int64
	for _, inv := range f.invoices {
		if inv.SchoolID == schoolID && inv.Status == models.InvoiceOpen && inv.DueAt.Before(asOf.Time) {
			inv.Status = models.InvoiceOverdue
			n++
		}
	}
	return n, nil
}

func (f *fakeBillingStore) CreatePayment(_ context.Context, payment *models.Payment) error {
	inv, ok := f.invoices[payment.InvoiceID]
	if !ok || inv.SchoolID != payment.SchoolID {
		return apperrors.ErrInvoiceNotFound
	}
	if !inv.Status.Payable() {
		return apperrors.ErrInvoiceNotPayable
	}

	payment.ID = f.id()
	f.payments = append(f.payments, payment)

	total := decimal.Zero
	for _, p := range f.payments {
		if p.InvoiceID == inv.ID {
			total = total.Add(p.Amount)
		}
	}
	if total.GreaterThanOrEqual(inv.Amount) {
		inv.Status = models.InvoicePaid
	}
	return nil
}

func (f *fakeBillingStore) ListPayments(_ context.Context, _, invoiceID int64) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range f.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeBillingStore) SumPayments(_ context.Context, _, invoiceID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range f.payments {
		if p.InvoiceID == invoiceID {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

const testSchoolID = int64(1)

func newBillingFixture() (*BillingService, *fakeBillingStore) {
	store := newFakeBillingStore()
	students := &fakeStudentReader{students: map[int64]*models.Student{
		1: {ID: 1, SchoolID: testSchoolID, FirstName: "Amina", LastName: "K"},
	}}
	return NewBillingService(store, students), store
}

func TestBillingServiceCreateInvoice(t *testing.T) {
	svc, _ := newBillingFixture()
	ctx := context.Background()

	fee, err := svc.CreateFee(ctx, testSchoolID, dto.CreateFeeRequest{
		Name:       "Tuition",
		Amount:     decimal.NewFromInt(250),
		SchoolYear: "2026-2027",
	})
	require.NoError(t, err)

	t.Run("amount from fee", func(t *testing.T) {
		inv, err := svc.CreateInvoice(ctx, testSchoolID, dto.CreateInvoiceRequest{
			StudentID: 1,
			FeeID:     &fee.ID,
		})
		require.NoError(t, err)
		assert.True(t, inv.Amount.Equal(decimal.NewFromInt(250)))
		assert.Equal(t, models.InvoiceOpen, inv.Status)
		assert.NotEmpty(t, inv.Number)
		// Default due date is one month after issue.
		assert.Equal(t, inv.IssuedAt.AddDate(0, 1, 0), inv.DueAt.Time)
	})

	t.Run("explicit amount wins", func(t *testing.T) {
		amount := decimal.NewFromInt(100)
		inv, err := svc.CreateInvoice(ctx, testSchoolID, dto.CreateInvoiceRequest{
			StudentID: 1,
			FeeID:     &fee.ID,
			Amount:    &amount,
		})
		require.NoError(t, err)
		assert.True(t, inv.Amount.Equal(amount))
	})

	t.Run("neither amount nor fee", func(t *testing.T) {
		_, err := svc.CreateInvoice(ctx, testSchoolID, dto.CreateInvoiceRequest{StudentID: 1})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("unknown student", func(t *testing.T) {
		_, err := svc.CreateInvoice(ctx, testSchoolID, dto.CreateInvoiceRequest{StudentID: 99, FeeID: &fee.ID})
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})

	t.Run("due before issue", func(t *testing.T) {
		_, err := svc.CreateInvoice(ctx, testSchoolID, dto.CreateInvoiceRequest{
			StudentID: 1,
			FeeID:     &fee.ID,
			IssuedAt:  models.NewDate(2026, time.September, 1),
			DueAt:     models.NewDate(2026, time.August, 1),
		})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}

func TestBillingServicePaymentFlow(t *testing.T) {
	svc, store := newBillingFixture()
	ctx := context.Background()

	amount := decimal.NewFromInt(200)
	inv, err := svc.CreateInvoice(ctx, testSchoolID, dto.CreateInvoiceRequest{StudentID: 1, Amount: &amount})
	require.NoError(t, err)

	t.Run("partial payment keeps invoice open", func(t *testing.T) {
		_, err := svc.RecordPayment(ctx, testSchoolID, dto.RecordPaymentRequest{
			InvoiceID: inv.ID,
			Amount:    decimal.NewFromInt(80),
			Method:    "cash",
		})
		require.NoError(t, err)
		assert.Equal(t, models.InvoiceOpen, store.invoices[inv.ID].Status)
	})

	t.Run("invoice carries its paid total", func(t *testing.T) {
		got, err := svc.GetInvoice(ctx, testSchoolID, inv.ID)
		require.NoError(t, err)
		require.NotNil(t, got.AmountPaid)
		assert.True(t, got.AmountPaid.Equal(decimal.NewFromInt(80)))
	})

	t.Run("covering payment flips to paid", func(t *testing.T) {
		_, err := svc.RecordPayment(ctx, testSchoolID, dto.RecordPaymentRequest{
			InvoiceID: inv.ID,
			Amount:    decimal.NewFromInt(120),
			Method:    "transfer",
		})
		require.NoError(t, err)
		assert.Equal(t, models.InvoicePaid, store.invoices[inv.ID].Status)
	})

	t.Run("paying a paid invoice is rejected", func(t *testing.T) {
		_, err := svc.RecordPayment(ctx, testSchoolID, dto.RecordPaymentRequest{
			InvoiceID: inv.ID,
			Amount:    decimal.NewFromInt(10),
			Method:    "cash",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvoiceNotPayable)
	})

	t.Run("non-positive payment is rejected", func(t *testing.T) {
		_, err := svc.RecordPayment(ctx, testSchoolID, dto.RecordPaymentRequest{
			InvoiceID: inv.ID,
			Amount:    decimal.Zero,
			Method:    "cash",
		})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}

func TestBillingServicePaymentOnCancelledInvoice(t *testing.T) {
	svc, store := newBillingFixture()
	ctx := context.Background()

	amount := decimal.NewFromInt(50)
	inv, err := svc.CreateInvoice(ctx, testSchoolID, dto.CreateInvoiceRequest{StudentID: 1, Amount: &amount})
	require.NoError(t, err)

	cancelled := "cancelled"
	_, err = svc.UpdateInvoice(ctx, testSchoolID, inv.ID, dto.UpdateInvoiceRequest{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceCancelled, store.invoices[inv.ID].Status)

	_, err = svc.RecordPayment(ctx, testSchoolID, dto.RecordPaymentRequest{
		InvoiceID: inv.ID,
		Amount:    decimal.NewFromInt(50),
		Method:    "cash",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvoiceNotPayable)
}

func TestBillingServiceUpdateInvoiceImmutableWhenSettled(t *testing.T) {
	svc, _ := newBillingFixture()
	ctx := context.Background()

	amount := decimal.NewFromInt(50)
	inv, err := svc.CreateInvoice(ctx, testSchoolID, dto.CreateInvoiceRequest{StudentID: 1, Amount: &amount})
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, testSchoolID, dto.RecordPaymentRequest{
		InvoiceID: inv.ID,
		Amount:    amount,
		Method:    "cash",
	})
	require.NoError(t, err)

	overdue := "overdue"
	_, err = svc.UpdateInvoice(ctx, testSchoolID, inv.ID, dto.UpdateInvoiceRequest{Status: &overdue})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestBillingServiceMarkOverdue(t *testing.T) {
	svc, store := newBillingFixture()
	ctx := context.Background()

	amount := decimal.NewFromInt(50)
	past, err := svc.CreateInvoice(ctx, testSchoolID, dto.CreateInvoiceRequest{
		StudentID: 1,
		Amount:    &amount,
		IssuedAt:  models.NewDate(2026, time.January, 1),
		DueAt:     models.NewDate(2026, time.February, 1),
	})
	require.NoError(t, err)

	future := models.DateOf(time.Now().AddDate(0, 2, 0))
	_, err = svc.CreateInvoice(ctx, testSchoolID, dto.CreateInvoiceRequest{
		StudentID: 1,
		Amount:    &amount,
		DueAt:     future,
	})
	require.NoError(t, err)

	updated, err := svc.MarkOverdue(ctx, testSchoolID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)
	assert.Equal(t, models.InvoiceOverdue, store.invoices[past.ID].Status)
}

func TestBillingServiceDeleteFeeWithInvoices(t *testing.T) {
	svc, store := newBillingFixture()
	ctx := context.Background()

	fee, err := svc.CreateFee(ctx, testSchoolID, dto.CreateFeeRequest{
		Name:       "Materials",
		Amount:     decimal.NewFromInt(30),
		SchoolYear: "2026-2027",
	})
	require.NoError(t, err)

	store.feeUsed[fee.ID] = true
	err = svc.DeleteFee(ctx, testSchoolID, fee.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	store.feeUsed[fee.ID] = false
	assert.NoError(t, svc.DeleteFee(ctx, testSchoolID, fee.ID))

	// Second delete fails with not found.
	err = svc.DeleteFee(ctx, testSchoolID, fee.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
