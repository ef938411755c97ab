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
)

// GuardianRepository handles guardian database operations, scoped by
// schoolID.
type GuardianRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGuardianRepository creates a new GuardianRepository
func NewGuardianRepository(db *pgxpool.Pool) *GuardianRepository {
	return &GuardianRepository{db: db, sb: newStatementBuilder()}
}

const guardianColumns = "id, school_id, first_name, last_name, email, phone, relationship, user_id, created_at, updated_at"

func scanGuardian(row pgx.Row) (*models.Guardian, error) {
	g := &models.Guardian{}
	err := row.Scan(&g.ID, &g.SchoolID, &g.FirstName, &g.LastName, &g.Email,
		&g.Phone, &g.Relationship, &g.UserID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Create inserts a guardian and fills in its generated id.
func (r *GuardianRepository) Create(ctx context.Context, guardian *models.Guardian) error {
	sql, args, err := r.sb.Insert("guardians").
		Columns("school_id", "first_name", "last_name", "email", "phone", "relationship", "user_id").
		Values(guardian.SchoolID, guardian.FirstName, guardian.LastName, guardian.Email,
			guardian.Phone, guardian.Relationship, guardian.UserID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create guardian query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&guardian.ID, &guardian.CreatedAt, &guardian.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating guardian: %w", err)
	}
	return nil
}

// GetByID retrieves a guardian within a school.
func (r *GuardianRepository) GetByID(ctx context.Context, schoolID, id int64) (*models.Guardian, error) {
	sql, args, err := r.sb.Select(guardianColumns).
		From("guardians").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get guardian query: %w", err)
	}

	guardian, err := scanGuardian(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGuardianNotFound
		}
		return nil, fmt.Errorf("error getting guardian by ID: %w", err)
	}
	return guardian, nil
}

// List retrieves guardians of a school with a search filter.
func (r *GuardianRepository) List(ctx context.Context, schoolID int64, filter ListFilter) ([]*models.Guardian, int64, error) {
	base := r.sb.Select(guardianColumns).From("guardians").Where(squirrel.Eq{"school_id": schoolID})
	countQ := r.sb.Select("COUNT(*)").From("guardians").Where(squirrel.Eq{"school_id": schoolID})

	if filter.Search != "" {
		cond := squirrel.Or{
			squirrel.ILike{"first_name": searchPattern(filter.Search)},
			squirrel.ILike{"last_name": searchPattern(filter.Search)},
			squirrel.ILike{"email": searchPattern(filter.Search)},
		}
		base = base.Where(cond)
		countQ = countQ.Where(cond)
	}

	var total int64
	sql, args, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count guardians query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting guardians: %w", err)
	}

	sql, args, err = base.
		OrderBy("last_name ASC", "first_name ASC").
		Offset(uint64((filter.Page - 1) * filter.Limit)).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list guardians query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying guardians: %w", err)
	}
	defer rows.Close()

	guardians := []*models.Guardian{}
	for rows.Next() {
		guardian, err := scanGuardian(rows)
		if err != nil {
			return nil, 0, err
		}
		guardians = append(guardians, guardian)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return guardians, total, nil
}

// ExistsByEmail checks the email natural key within a school, excluding
// excludeID (0 for creates).
func (r *GuardianRepository) ExistsByEmail(ctx context.Context, schoolID int64, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM guardians
		 WHERE school_id = $1 AND email = $2 AND id != $3)`,
		schoolID, email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking guardian existence: %w", err)
	}
	return exists, nil
}

// Update rewrites the mutable columns of a guardian.
func (r *GuardianRepository) Update(ctx context.Context, guardian *models.Guardian) error {
	sql, args, err := r.sb.Update("guardians").
		Set("first_name", guardian.FirstName).
		Set("last_name", guardian.LastName).
		Set("email", guardian.Email).
		Set("phone", guardian.Phone).
		Set("relationship", guardian.Relationship).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": guardian.ID, "school_id": guardian.SchoolID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update guardian query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating guardian: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGuardianNotFound
	}
	return nil
}

// HasStudents reports whether any student still references the guardian.
func (r *GuardianRepository) HasStudents(ctx context.Context, schoolID, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE guardian_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking guardian students: %w", err)
	}
	return exists, nil
}

// Delete removes a guardian within a school.
func (r *GuardianRepository) Delete(ctx context.Context, schoolID, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM guardians WHERE id = $1 AND school_id = $2`, id, schoolID)
	if err != nil {
		return fmt.Errorf("error deleting guardian: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGuardianNotFound
	}
	return nil
}
