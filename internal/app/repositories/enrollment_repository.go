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
	"github.com/RachidAzrou/madrassa-sub000/internal/db"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
)

// EnrollmentRepository handles enrollment database operations. Enrollment
// creation runs inside a transaction so the course capacity check and the
// insert see a consistent view.
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db, sb: newStatementBuilder()}
}

const enrollmentColumns = "id, school_id, student_id, course_id, status, enrolled_at, created_at, updated_at"

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	err := row.Scan(&e.ID, &e.SchoolID, &e.StudentID, &e.CourseID, &e.Status,
		&e.EnrolledAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts an enrollment transactionally. The course row is locked
// first so the active-enrollment count cannot change between the capacity
// check and the insert. Returns ErrCourseFull when the course is at its
// max capacity and ErrDuplicateEnrollment when the student already holds
// an active enrollment in the course.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var maxCapacity int
		err := tx.QueryRow(ctx,
			`SELECT max_capacity FROM courses WHERE id = $1 AND school_id = $2 FOR UPDATE`,
			enrollment.CourseID, enrollment.SchoolID).Scan(&maxCapacity)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrCourseNotFound
			}
			return fmt.Errorf("error locking course: %w", err)
		}

		var duplicate bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM enrollments
			 WHERE student_id = $1 AND course_id = $2 AND status = 'active')`,
			enrollment.StudentID, enrollment.CourseID).Scan(&duplicate)
		if err != nil {
			return fmt.Errorf("error checking duplicate enrollment: %w", err)
		}
		if duplicate {
			return apperrors.ErrDuplicateEnrollment
		}

		var active int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM enrollments WHERE course_id = $1 AND status = 'active'`,
			enrollment.CourseID).Scan(&active)
		if err != nil {
			return fmt.Errorf("error counting active enrollments: %w", err)
		}
		if maxCapacity > 0 && active >= maxCapacity {
			return apperrors.ErrCourseFull
		}

		sql, args, err := r.sb.Insert("enrollments").
			Columns("school_id", "student_id", "course_id", "status", "enrolled_at").
			Values(enrollment.SchoolID, enrollment.StudentID, enrollment.CourseID,
				enrollment.Status, enrollment.EnrolledAt).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create enrollment query: %w", err)
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&enrollment.ID, &enrollment.CreatedAt, &enrollment.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error creating enrollment: %w", err)
		}
		return nil
	})
}

// GetByID retrieves an enrollment within a school.
func (r *EnrollmentRepository) GetByID(ctx context.Context, schoolID, id int64) (*models.Enrollment, error) {
	sql, args, err := r.sb.Select(enrollmentColumns).
		From("enrollments").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error getting enrollment by ID: %w", err)
	}
	return enrollment, nil
}

// List retrieves enrollments of a school. StudentID and courseID narrow
// the result when non-nil, filter.Status when non-empty.
func (r *EnrollmentRepository) List(ctx context.Context, schoolID int64, filter ListFilter, studentID, courseID *int64) ([]*models.Enrollment, int64, error) {
	base := r.sb.Select(enrollmentColumns).From("enrollments").Where(squirrel.Eq{"school_id": schoolID})
	countQ := r.sb.Select("COUNT(*)").From("enrollments").Where(squirrel.Eq{"school_id": schoolID})

	if filter.Status != "" {
		base = base.Where(squirrel.Eq{"status": filter.Status})
		countQ = countQ.Where(squirrel.Eq{"status": filter.Status})
	}
	if studentID != nil {
		base = base.Where(squirrel.Eq{"student_id": *studentID})
		countQ = countQ.Where(squirrel.Eq{"student_id": *studentID})
	}
	if courseID != nil {
		base = base.Where(squirrel.Eq{"course_id": *courseID})
		countQ = countQ.Where(squirrel.Eq{"course_id": *courseID})
	}

	var total int64
	sql, args, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count enrollments query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting enrollments: %w", err)
	}

	sql, args, err = base.
		OrderBy("enrolled_at DESC", "id DESC").
		Offset(uint64((filter.Page - 1) * filter.Limit)).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []*models.Enrollment{}
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, 0, err
		}
		enrollments = append(enrollments, enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return enrollments, total, nil
}

// UpdateStatus moves an enrollment to a new status.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, schoolID, id int64, status models.EnrollmentStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE enrollments SET status = $1, updated_at = $2 WHERE id = $3 AND school_id = $4`,
		status, time.Now(), id, schoolID)
	if err != nil {
		return fmt.Errorf("error updating enrollment status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// Delete removes an enrollment within a school.
func (r *EnrollmentRepository) Delete(ctx context.Context, schoolID, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM enrollments WHERE id = $1 AND school_id = $2`, id, schoolID)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}
