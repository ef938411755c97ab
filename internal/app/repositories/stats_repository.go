package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
)

// StatsRepository computes dashboard aggregates for one school.
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// DashboardCounts holds the raw per-school aggregates the dashboard
// endpoint reports.
type DashboardCounts struct {
	Students          int64
	Teachers          int64
	Courses           int64
	ActiveEnrollments int64
	OpenInvoices      int64
	OutstandingAmount decimal.Decimal
	PresentToday      int64
	RecordedToday     int64
}

// Dashboard gathers the counts in a single round trip. Outstanding
// amount covers open and overdue invoices minus their recorded payments.
func (r *StatsRepository) Dashboard(ctx context.Context, schoolID int64, today models.Date) (*DashboardCounts, error) {
	c := &DashboardCounts{}
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM students WHERE school_id = $1 AND status = 'active'),
			(SELECT COUNT(*) FROM teachers WHERE school_id = $1 AND status = 'active'),
			(SELECT COUNT(*) FROM courses WHERE school_id = $1),
			(SELECT COUNT(*) FROM enrollments WHERE school_id = $1 AND status = 'active'),
			(SELECT COUNT(*) FROM invoices WHERE school_id = $1 AND status IN ('open', 'overdue')),
			(SELECT COALESCE(SUM(i.amount), 0) -
			        COALESCE((SELECT SUM(p.amount) FROM payments p
			                   JOIN invoices pi ON pi.id = p.invoice_id
			                  WHERE pi.school_id = $1 AND pi.status IN ('open', 'overdue')), 0)
			   FROM invoices i WHERE i.school_id = $1 AND i.status IN ('open', 'overdue')),
			(SELECT COUNT(*) FROM attendance WHERE school_id = $1 AND date = $2 AND status IN ('present', 'late')),
			(SELECT COUNT(*) FROM attendance WHERE school_id = $1 AND date = $2)`,
		schoolID, today).
		Scan(&c.Students, &c.Teachers, &c.Courses, &c.ActiveEnrollments,
			&c.OpenInvoices, &c.OutstandingAmount, &c.PresentToday, &c.RecordedToday)
	if err != nil {
		return nil, fmt.Errorf("error computing dashboard stats: %w", err)
	}
	return c, nil
}
