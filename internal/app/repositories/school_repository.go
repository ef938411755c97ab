package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/dberrors"
)

// SchoolRepository handles tenant database operations. Schools are the
// one entity with no school_id scoping of their own.
type SchoolRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSchoolRepository creates a new SchoolRepository
func NewSchoolRepository(db *pgxpool.Pool) *SchoolRepository {
	return &SchoolRepository{db: db, sb: newStatementBuilder()}
}

const schoolColumns = "id, name, address, phone, email, allow_deletion, enable_payments, created_at, updated_at"

func scanSchool(row pgx.Row) (*models.School, error) {
	s := &models.School{}
	err := row.Scan(&s.ID, &s.Name, &s.Address, &s.Phone, &s.Email,
		&s.AllowDeletion, &s.EnablePayments, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a school and fills in its generated id.
func (r *SchoolRepository) Create(ctx context.Context, school *models.School) error {
	sql, args, err := r.sb.Insert("schools").
		Columns("name", "address", "phone", "email", "allow_deletion", "enable_payments").
		Values(school.Name, school.Address, school.Phone, school.Email, school.AllowDeletion, school.EnablePayments).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create school query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&school.ID, &school.CreatedAt, &school.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.NewConflictError("School name already exists")
		}
		return fmt.Errorf("error creating school: %w", err)
	}
	return nil
}

// GetByID retrieves a school by ID
func (r *SchoolRepository) GetByID(ctx context.Context, id int64) (*models.School, error) {
	sql, args, err := r.sb.Select(schoolColumns).
		From("schools").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get school query: %w", err)
	}

	school, err := scanSchool(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSchoolNotFound
		}
		return nil, fmt.Errorf("error getting school by ID: %w", err)
	}
	return school, nil
}

// List retrieves all schools, alphabetically.
func (r *SchoolRepository) List(ctx context.Context, filter ListFilter) ([]*models.School, int64, error) {
	base := r.sb.Select(schoolColumns).From("schools")
	countQ := r.sb.Select("COUNT(*)").From("schools")

	if filter.Search != "" {
		cond := squirrel.ILike{"name": searchPattern(filter.Search)}
		base = base.Where(cond)
		countQ = countQ.Where(cond)
	}

	var total int64
	sql, args, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count schools query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting schools: %w", err)
	}

	sql, args, err = base.
		OrderBy("name ASC").
		Offset(uint64((filter.Page - 1) * filter.Limit)).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list schools query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying schools: %w", err)
	}
	defer rows.Close()

	schools := []*models.School{}
	for rows.Next() {
		school, err := scanSchool(rows)
		if err != nil {
			return nil, 0, err
		}
		schools = append(schools, school)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return schools, total, nil
}

// Update rewrites the mutable columns of a school.
func (r *SchoolRepository) Update(ctx context.Context, school *models.School) error {
	sql, args, err := r.sb.Update("schools").
		Set("name", school.Name).
		Set("address", school.Address).
		Set("phone", school.Phone).
		Set("email", school.Email).
		Set("allow_deletion", school.AllowDeletion).
		Set("enable_payments", school.EnablePayments).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": school.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update school query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.NewConflictError("School name already exists")
		}
		return fmt.Errorf("error updating school: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSchoolNotFound
	}
	return nil
}

// HasUsers reports whether any user belongs to the school.
func (r *SchoolRepository) HasUsers(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE school_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking school users: %w", err)
	}
	return exists, nil
}

// Delete removes a school.
func (r *SchoolRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM schools WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflictError("School has associated data and cannot be deleted")
		}
		return fmt.Errorf("error deleting school: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSchoolNotFound
	}
	return nil
}
