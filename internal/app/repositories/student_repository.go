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

// StudentRepository handles student database operations. Every query is
// scoped by schoolID; there is no unscoped access path.
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db, sb: newStatementBuilder()}
}

const studentColumns = "id, school_id, code, first_name, last_name, email, phone, birth_date, status, guardian_id, user_id, created_at, updated_at"

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(&s.ID, &s.SchoolID, &s.Code, &s.FirstName, &s.LastName, &s.Email,
		&s.Phone, &s.BirthDate, &s.Status, &s.GuardianID, &s.UserID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a student and fills in its generated id.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("school_id", "code", "first_name", "last_name", "email", "phone", "birth_date", "status", "guardian_id", "user_id").
		Values(student.SchoolID, student.Code, student.FirstName, student.LastName, student.Email,
			student.Phone, student.BirthDate, student.Status, student.GuardianID, student.UserID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetByID retrieves a student within a school.
func (r *StudentRepository) GetByID(ctx context.Context, schoolID, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns).
		From("students").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}
	return student, nil
}

// List retrieves students of a school with search/status filters.
func (r *StudentRepository) List(ctx context.Context, schoolID int64, filter ListFilter) ([]*models.Student, int64, error) {
	base := r.sb.Select(studentColumns).From("students").Where(squirrel.Eq{"school_id": schoolID})
	countQ := r.sb.Select("COUNT(*)").From("students").Where(squirrel.Eq{"school_id": schoolID})

	if filter.Search != "" {
		cond := squirrel.Or{
			squirrel.ILike{"first_name": searchPattern(filter.Search)},
			squirrel.ILike{"last_name": searchPattern(filter.Search)},
			squirrel.ILike{"email": searchPattern(filter.Search)},
			squirrel.ILike{"code": searchPattern(filter.Search)},
		}
		base = base.Where(cond)
		countQ = countQ.Where(cond)
	}
	if filter.Status != "" {
		base = base.Where(squirrel.Eq{"status": filter.Status})
		countQ = countQ.Where(squirrel.Eq{"status": filter.Status})
	}

	var total int64
	sql, args, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count students query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	sql, args, err = base.
		OrderBy("last_name ASC", "first_name ASC").
		Offset(uint64((filter.Page - 1) * filter.Limit)).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

// ExistsByCodeOrEmail checks the natural keys within a school, excluding
// excludeID (0 for creates).
func (r *StudentRepository) ExistsByCodeOrEmail(ctx context.Context, schoolID int64, code, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students
		 WHERE school_id = $1 AND (code = $2 OR email = $3) AND id != $4)`,
		schoolID, code, email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}
	return exists, nil
}

// Update rewrites the mutable columns of a student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("code", student.Code).
		Set("first_name", student.FirstName).
		Set("last_name", student.LastName).
		Set("email", student.Email).
		Set("phone", student.Phone).
		Set("birth_date", student.BirthDate).
		Set("status", student.Status).
		Set("guardian_id", student.GuardianID).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": student.ID, "school_id": student.SchoolID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// HasDependents reports whether enrollments, grades, attendance or
// invoices still reference the student.
func (r *StudentRepository) HasDependents(ctx context.Context, schoolID, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1)
		    OR EXISTS(SELECT 1 FROM grades WHERE student_id = $1)
		    OR EXISTS(SELECT 1 FROM attendance WHERE student_id = $1)
		    OR EXISTS(SELECT 1 FROM invoices WHERE student_id = $1)`,
		id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student dependents: %w", err)
	}
	return exists, nil
}

// Delete removes a student within a school.
func (r *StudentRepository) Delete(ctx context.Context, schoolID, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM students WHERE id = $1 AND school_id = $2`, id, schoolID)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
