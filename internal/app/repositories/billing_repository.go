package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/db"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
)

// BillingRepository handles fees, invoices and payments. Payment
// recording runs in a transaction so the invoice status flip to 'paid'
// cannot race with a concurrent payment.
type BillingRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBillingRepository creates a new BillingRepository
func NewBillingRepository(db *pgxpool.Pool) *BillingRepository {
	return &BillingRepository{db: db, sb: newStatementBuilder()}
}

const feeColumns = "id, school_id, name, description, amount, school_year, created_at, updated_at"

func scanFee(row pgx.Row) (*models.Fee, error) {
	f := &models.Fee{}
	err := row.Scan(&f.ID, &f.SchoolID, &f.Name, &f.Description, &f.Amount,
		&f.SchoolYear, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// CreateFee inserts a fee catalog entry.
func (r *BillingRepository) CreateFee(ctx context.Context, fee *models.Fee) error {
	sql, args, err := r.sb.Insert("fees").
		Columns("school_id", "name", "description", "amount", "school_year").
		Values(fee.SchoolID, fee.Name, fee.Description, fee.Amount, fee.SchoolYear).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create fee query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&fee.ID, &fee.CreatedAt, &fee.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating fee: %w", err)
	}
	return nil
}

// GetFeeByID retrieves a fee within a school.
func (r *BillingRepository) GetFeeByID(ctx context.Context, schoolID, id int64) (*models.Fee, error) {
	sql, args, err := r.sb.Select(feeColumns).
		From("fees").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get fee query: %w", err)
	}

	fee, err := scanFee(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Fee not found")
		}
		return nil, fmt.Errorf("error getting fee by ID: %w", err)
	}
	return fee, nil
}

// ListFees retrieves fees of a school, optionally narrowed to one school
// year.
func (r *BillingRepository) ListFees(ctx context.Context, schoolID int64, filter ListFilter, schoolYear string) ([]*models.Fee, int64, error) {
	base := r.sb.Select(feeColumns).From("fees").Where(squirrel.Eq{"school_id": schoolID})
	countQ := r.sb.Select("COUNT(*)").From("fees").Where(squirrel.Eq{"school_id": schoolID})

	if filter.Search != "" {
		cond := squirrel.ILike{"name": searchPattern(filter.Search)}
		base = base.Where(cond)
		countQ = countQ.Where(cond)
	}
	if schoolYear != "" {
		base = base.Where(squirrel.Eq{"school_year": schoolYear})
		countQ = countQ.Where(squirrel.Eq{"school_year": schoolYear})
	}

	var total int64
	sql, args, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count fees query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting fees: %w", err)
	}

	sql, args, err = base.
		OrderBy("school_year DESC", "name ASC").
		Offset(uint64((filter.Page - 1) * filter.Limit)).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list fees query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying fees: %w", err)
	}
	defer rows.Close()

	fees := []*models.Fee{}
	for rows.Next() {
		fee, err := scanFee(rows)
		if err != nil {
			return nil, 0, err
		}
		fees = append(fees, fee)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return fees, total, nil
}

// UpdateFee rewrites the mutable columns of a fee.
func (r *BillingRepository) UpdateFee(ctx context.Context, fee *models.Fee) error {
	sql, args, err := r.sb.Update("fees").
		Set("name", fee.Name).
		Set("description", fee.Description).
		Set("amount", fee.Amount).
		Set("school_year", fee.SchoolYear).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": fee.ID, "school_id": fee.SchoolID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update fee query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating fee: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Fee not found")
	}
	return nil
}

// FeeHasInvoices reports whether any invoice references the fee.
func (r *BillingRepository) FeeHasInvoices(ctx context.Context, schoolID, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM invoices WHERE fee_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking fee invoices: %w", err)
	}
	return exists, nil
}

// DeleteFee removes a fee within a school.
func (r *BillingRepository) DeleteFee(ctx context.Context, schoolID, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM fees WHERE id = $1 AND school_id = $2`, id, schoolID)
	if err != nil {
		return fmt.Errorf("error deleting fee: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Fee not found")
	}
	return nil
}

const invoiceColumns = "id, school_id, number, student_id, fee_id, amount, status, issued_at, due_at, created_at, updated_at"

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	inv := &models.Invoice{}
	err := row.Scan(&inv.ID, &inv.SchoolID, &inv.Number, &inv.StudentID, &inv.FeeID,
		&inv.Amount, &inv.Status, &inv.IssuedAt, &inv.DueAt, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// CreateInvoice inserts an invoice, assigning the next sequential number
// for the school inside a transaction.
func (r *BillingRepository) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		year := invoice.IssuedAt.Year()

		// Serialize numbering per school: concurrent transactions would
		// otherwise compute the same sequence and collide on the unique
		// number index.
		var lockedID int64
		err := tx.QueryRow(ctx,
			`SELECT id FROM schools WHERE id = $1 FOR UPDATE`,
			invoice.SchoolID).Scan(&lockedID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrSchoolNotFound
			}
			return fmt.Errorf("error locking school for invoice numbering: %w", err)
		}

		var seq int64
		err = tx.QueryRow(ctx, `
			SELECT COUNT(*) + 1 FROM invoices
			 WHERE school_id = $1 AND number LIKE $2`,
			invoice.SchoolID, fmt.Sprintf("INV-%d-%%", year)).Scan(&seq)
		if err != nil {
			return fmt.Errorf("error computing invoice sequence: %w", err)
		}
		invoice.Number = fmt.Sprintf("INV-%d-%06d", year, seq)

		sql, args, err := r.sb.Insert("invoices").
			Columns("school_id", "number", "student_id", "fee_id", "amount", "status", "issued_at", "due_at").
			Values(invoice.SchoolID, invoice.Number, invoice.StudentID, invoice.FeeID,
				invoice.Amount, invoice.Status, invoice.IssuedAt, invoice.DueAt).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create invoice query: %w", err)
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&invoice.ID, &invoice.CreatedAt, &invoice.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error creating invoice: %w", err)
		}
		return nil
	})
}

// GetInvoiceByID retrieves an invoice within a school.
func (r *BillingRepository) GetInvoiceByID(ctx context.Context, schoolID, id int64) (*models.Invoice, error) {
	sql, args, err := r.sb.Select(invoiceColumns).
		From("invoices").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get invoice query: %w", err)
	}

	invoice, err := scanInvoice(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("error getting invoice by ID: %w", err)
	}
	return invoice, nil
}

// ListInvoices retrieves invoices of a school. StudentID narrows the
// result when non-nil, filter.Status when non-empty.
func (r *BillingRepository) ListInvoices(ctx context.Context, schoolID int64, filter ListFilter, studentID *int64) ([]*models.Invoice, int64, error) {
	base := r.sb.Select(invoiceColumns).From("invoices").Where(squirrel.Eq{"school_id": schoolID})
	countQ := r.sb.Select("COUNT(*)").From("invoices").Where(squirrel.Eq{"school_id": schoolID})

	if filter.Search != "" {
		cond := squirrel.ILike{"number": searchPattern(filter.Search)}
		base = base.Where(cond)
		countQ = countQ.Where(cond)
	}
	if filter.Status != "" {
		base = base.Where(squirrel.Eq{"status": filter.Status})
		countQ = countQ.Where(squirrel.Eq{"status": filter.Status})
	}
	if studentID != nil {
		base = base.Where(squirrel.Eq{"student_id": *studentID})
		countQ = countQ.Where(squirrel.Eq{"student_id": *studentID})
	}

	var total int64
	sql, args, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count invoices query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting invoices: %w", err)
	}

	sql, args, err = base.
		OrderBy("issued_at DESC", "id DESC").
		Offset(uint64((filter.Page - 1) * filter.Limit)).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list invoices query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying invoices: %w", err)
	}
	defer rows.Close()

	invoices := []*models.Invoice{}
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

// UpdateInvoice persists the mutable invoice fields (status and due
// date).
func (r *BillingRepository) UpdateInvoice(ctx context.Context, invoice *models.Invoice) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE invoices SET status = $1, due_at = $2, updated_at = $3 WHERE id = $4 AND school_id = $5`,
		invoice.Status, invoice.DueAt, time.Now(), invoice.ID, invoice.SchoolID)
	if err != nil {
		return fmt.Errorf("error updating invoice: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvoiceNotFound
	}
	return nil
}

// MarkOverdueInvoices flips open invoices past their due date to
// 'overdue' and returns how many rows changed.
func (r *BillingRepository) MarkOverdueInvoices(ctx context.Context, schoolID int64, asOf models.Date) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE invoices SET status = 'overdue', updated_at = NOW()
		 WHERE school_id = $1 AND status = 'open' AND due_at < $2`,
		schoolID, asOf)
	if err != nil {
		return 0, fmt.Errorf("error marking overdue invoices: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

const paymentColumns = "id, school_id, invoice_id, amount, method, paid_at, reference, created_at"

func scanPayment(row pgx.Row) (*models.Payment, error) {
	p := &models.Payment{}
	err := row.Scan(&p.ID, &p.SchoolID, &p.InvoiceID, &p.Amount, &p.Method,
		&p.PaidAt, &p.Reference, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePayment records a payment against an invoice inside a
// transaction. The invoice row is locked, the payment inserted, and when
// the payment total reaches the invoice amount the invoice flips to
// 'paid'. Non-payable invoices are rejected with ErrInvoiceNotPayable.
func (r *BillingRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var invoiceAmount decimal.Decimal
		var status models.InvoiceStatus
		err := tx.QueryRow(ctx,
			`SELECT amount, status FROM invoices WHERE id = $1 AND school_id = $2 FOR UPDATE`,
			payment.InvoiceID, payment.SchoolID).Scan(&invoiceAmount, &status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrInvoiceNotFound
			}
			return fmt.Errorf("error locking invoice: %w", err)
		}
		if !status.Payable() {
			return apperrors.ErrInvoiceNotPayable
		}

		sql, args, err := r.sb.Insert("payments").
			Columns("school_id", "invoice_id", "amount", "method", "paid_at", "reference").
			Values(payment.SchoolID, payment.InvoiceID, payment.Amount,
				payment.Method, payment.PaidAt, payment.Reference).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create payment query: %w", err)
		}
		err = tx.QueryRow(ctx, sql, args...).Scan(&payment.ID, &payment.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating payment: %w", err)
		}

		var paid decimal.Decimal
		err = tx.QueryRow(ctx,
			`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1`,
			payment.InvoiceID).Scan(&paid)
		if err != nil {
			return fmt.Errorf("error summing payments: %w", err)
		}
		if paid.GreaterThanOrEqual(invoiceAmount) {
			_, err = tx.Exec(ctx,
				`UPDATE invoices SET status = 'paid', updated_at = NOW() WHERE id = $1`,
				payment.InvoiceID)
			if err != nil {
				return fmt.Errorf("error marking invoice paid: %w", err)
			}
		}
		return nil
	})
}

// ListPayments retrieves payments of an invoice.
func (r *BillingRepository) ListPayments(ctx context.Context, schoolID, invoiceID int64) ([]*models.Payment, error) {
	sql, args, err := r.sb.Select(paymentColumns).
		From("payments").
		Where(squirrel.Eq{"school_id": schoolID, "invoice_id": invoiceID}).
		OrderBy("paid_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list payments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying payments: %w", err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

// SumPayments returns the total paid against an invoice.
func (r *BillingRepository) SumPayments(ctx context.Context, schoolID, invoiceID int64) (decimal.Decimal, error) {
	var paid decimal.Decimal
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE school_id = $1 AND invoice_id = $2`,
		schoolID, invoiceID).Scan(&paid)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error summing payments: %w", err)
	}
	return paid, nil
}
