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

// TeacherRepository handles teacher database operations, always scoped by
// schoolID.
type TeacherRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{db: db, sb: newStatementBuilder()}
}

const teacherColumns = "id, school_id, code, first_name, last_name, email, phone, subject, hire_date, status, user_id, created_at, updated_at"

func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	t := &models.Teacher{}
	err := row.Scan(&t.ID, &t.SchoolID, &t.Code, &t.FirstName, &t.LastName, &t.Email,
		&t.Phone, &t.Subject, &t.HireDate, &t.Status, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Create inserts a teacher and fills in its generated id.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	sql, args, err := r.sb.Insert("teachers").
		Columns("school_id", "code", "first_name", "last_name", "email", "phone", "subject", "hire_date", "status", "user_id").
		Values(teacher.SchoolID, teacher.Code, teacher.FirstName, teacher.LastName, teacher.Email,
			teacher.Phone, teacher.Subject, teacher.HireDate, teacher.Status, teacher.UserID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create teacher query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&teacher.ID, &teacher.CreatedAt, &teacher.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating teacher: %w", err)
	}
	return nil
}

// GetByID retrieves a teacher within a school.
func (r *TeacherRepository) GetByID(ctx context.Context, schoolID, id int64) (*models.Teacher, error) {
	sql, args, err := r.sb.Select(teacherColumns).
		From("teachers").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get teacher query: %w", err)
	}

	teacher, err := scanTeacher(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error getting teacher by ID: %w", err)
	}
	return teacher, nil
}

// List retrieves teachers of a school with search/status filters.
func (r *TeacherRepository) List(ctx context.Context, schoolID int64, filter ListFilter) ([]*models.Teacher, int64, error) {
	base := r.sb.Select(teacherColumns).From("teachers").Where(squirrel.Eq{"school_id": schoolID})
	countQ := r.sb.Select("COUNT(*)").From("teachers").Where(squirrel.Eq{"school_id": schoolID})

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
		return nil, 0, fmt.Errorf("failed to build count teachers query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting teachers: %w", err)
	}

	sql, args, err = base.
		OrderBy("last_name ASC", "first_name ASC").
		Offset(uint64((filter.Page - 1) * filter.Limit)).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list teachers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying teachers: %w", err)
	}
	defer rows.Close()

	teachers := []*models.Teacher{}
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, 0, err
		}
		teachers = append(teachers, teacher)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return teachers, total, nil
}

// ExistsByCodeOrEmail checks the natural keys within a school, excluding
// excludeID (0 for creates).
func (r *TeacherRepository) ExistsByCodeOrEmail(ctx context.Context, schoolID int64, code, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM teachers
		 WHERE school_id = $1 AND (code = $2 OR email = $3) AND id != $4)`,
		schoolID, code, email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking teacher existence: %w", err)
	}
	return exists, nil
}

// Update rewrites the mutable columns of a teacher.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	sql, args, err := r.sb.Update("teachers").
		Set("code", teacher.Code).
		Set("first_name", teacher.FirstName).
		Set("last_name", teacher.LastName).
		Set("email", teacher.Email).
		Set("phone", teacher.Phone).
		Set("subject", teacher.Subject).
		Set("hire_date", teacher.HireDate).
		Set("status", teacher.Status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": teacher.ID, "school_id": teacher.SchoolID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update teacher query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating teacher: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}

// HasDependents reports whether courses or attendance records still
// reference the teacher.
func (r *TeacherRepository) HasDependents(ctx context.Context, schoolID, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM courses WHERE teacher_id = $1)
		    OR EXISTS(SELECT 1 FROM teacher_attendance WHERE teacher_id = $1)`,
		id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking teacher dependents: %w", err)
	}
	return exists, nil
}

// Delete removes a teacher within a school.
func (r *TeacherRepository) Delete(ctx context.Context, schoolID, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM teachers WHERE id = $1 AND school_id = $2`, id, schoolID)
	if err != nil {
		return fmt.Errorf("error deleting teacher: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}
