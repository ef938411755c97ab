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

// CourseRepository handles course database operations. The enrolled count
// returned with each course is derived from active enrollments at query
// time.
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db, sb: newStatementBuilder()}
}

const courseColumns = `c.id, c.school_id, c.name, c.code, c.description, c.program_id,
	c.teacher_id, c.max_capacity, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id AND e.status = 'active') AS enrolled`

func scanCourse(row pgx.Row) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(&c.ID, &c.SchoolID, &c.Name, &c.Code, &c.Description,
		&c.ProgramID, &c.TeacherID, &c.MaxCapacity, &c.CreatedAt, &c.UpdatedAt,
		&c.Enrolled)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a course and fills in its generated id.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("school_id", "name", "code", "description", "program_id", "teacher_id", "max_capacity").
		Values(course.SchoolID, course.Name, course.Code, course.Description,
			course.ProgramID, course.TeacherID, course.MaxCapacity).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course within a school, including its derived
// enrolled count.
func (r *CourseRepository) GetByID(ctx context.Context, schoolID, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns).
		From("courses c").
		Where(squirrel.Eq{"c.id": id, "c.school_id": schoolID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return course, nil
}

// List retrieves courses of a school. TeacherID and ProgramID narrow the
// result when non-nil.
func (r *CourseRepository) List(ctx context.Context, schoolID int64, filter ListFilter, programID, teacherID *int64) ([]*models.Course, int64, error) {
	base := r.sb.Select(courseColumns).From("courses c").Where(squirrel.Eq{"c.school_id": schoolID})
	countQ := r.sb.Select("COUNT(*)").From("courses c").Where(squirrel.Eq{"c.school_id": schoolID})

	if filter.Search != "" {
		cond := squirrel.Or{
			squirrel.ILike{"c.name": searchPattern(filter.Search)},
			squirrel.ILike{"c.code": searchPattern(filter.Search)},
		}
		base = base.Where(cond)
		countQ = countQ.Where(cond)
	}
	if programID != nil {
		base = base.Where(squirrel.Eq{"c.program_id": *programID})
		countQ = countQ.Where(squirrel.Eq{"c.program_id": *programID})
	}
	if teacherID != nil {
		base = base.Where(squirrel.Eq{"c.teacher_id": *teacherID})
		countQ = countQ.Where(squirrel.Eq{"c.teacher_id": *teacherID})
	}

	var total int64
	sql, args, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count courses query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	sql, args, err = base.
		OrderBy("c.name ASC").
		Offset(uint64((filter.Page - 1) * filter.Limit)).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// ExistsByCode checks the code natural key within a school, excluding
// excludeID (0 for creates).
func (r *CourseRepository) ExistsByCode(ctx context.Context, schoolID int64, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM courses
		 WHERE school_id = $1 AND code = $2 AND id != $3)`,
		schoolID, code, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course existence: %w", err)
	}
	return exists, nil
}

// Update rewrites the mutable columns of a course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		Set("name", course.Name).
		Set("code", course.Code).
		Set("description", course.Description).
		Set("program_id", course.ProgramID).
		Set("teacher_id", course.TeacherID).
		Set("max_capacity", course.MaxCapacity).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": course.ID, "school_id": course.SchoolID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// HasEnrollments reports whether the course has any enrollments, in any
// status.
func (r *CourseRepository) HasEnrollments(ctx context.Context, schoolID, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE course_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course enrollments: %w", err)
	}
	return exists, nil
}

// Delete removes a course within a school.
func (r *CourseRepository) Delete(ctx context.Context, schoolID, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM courses WHERE id = $1 AND school_id = $2`, id, schoolID)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}
