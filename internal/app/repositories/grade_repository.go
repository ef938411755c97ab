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

// GradeRepository handles grade database operations, scoped by schoolID.
type GradeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGradeRepository creates a new GradeRepository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{db: db, sb: newStatementBuilder()}
}

const gradeColumns = "id, school_id, student_id, course_id, assessment, score, max_score, weight, date, notes, created_at, updated_at"

func scanGrade(row pgx.Row) (*models.Grade, error) {
	g := &models.Grade{}
	err := row.Scan(&g.ID, &g.SchoolID, &g.StudentID, &g.CourseID, &g.Assessment,
		&g.Score, &g.MaxScore, &g.Weight, &g.Date, &g.Notes, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Create inserts a grade and fills in its generated id.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	sql, args, err := r.sb.Insert("grades").
		Columns("school_id", "student_id", "course_id", "assessment", "score", "max_score", "weight", "date", "notes").
		Values(grade.SchoolID, grade.StudentID, grade.CourseID, grade.Assessment,
			grade.Score, grade.MaxScore, grade.Weight, grade.Date, grade.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create grade query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&grade.ID, &grade.CreatedAt, &grade.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating grade: %w", err)
	}
	return nil
}

// GetByID retrieves a grade within a school.
func (r *GradeRepository) GetByID(ctx context.Context, schoolID, id int64) (*models.Grade, error) {
	sql, args, err := r.sb.Select(gradeColumns).
		From("grades").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get grade query: %w", err)
	}

	grade, err := scanGrade(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Grade not found")
		}
		return nil, fmt.Errorf("error getting grade by ID: %w", err)
	}
	return grade, nil
}

// List retrieves grades of a school. StudentID and courseID narrow the
// result when non-nil.
func (r *GradeRepository) List(ctx context.Context, schoolID int64, filter ListFilter, studentID, courseID *int64) ([]*models.Grade, int64, error) {
	base := r.sb.Select(gradeColumns).From("grades").Where(squirrel.Eq{"school_id": schoolID})
	countQ := r.sb.Select("COUNT(*)").From("grades").Where(squirrel.Eq{"school_id": schoolID})

	if filter.Search != "" {
		cond := squirrel.ILike{"assessment": searchPattern(filter.Search)}
		base = base.Where(cond)
		countQ = countQ.Where(cond)
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
		return nil, 0, fmt.Errorf("failed to build count grades query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting grades: %w", err)
	}

	sql, args, err = base.
		OrderBy("date DESC", "id DESC").
		Offset(uint64((filter.Page - 1) * filter.Limit)).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list grades query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying grades: %w", err)
	}
	defer rows.Close()

	grades := []*models.Grade{}
	for rows.Next() {
		grade, err := scanGrade(rows)
		if err != nil {
			return nil, 0, err
		}
		grades = append(grades, grade)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return grades, total, nil
}

// Update rewrites the mutable columns of a grade.
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	sql, args, err := r.sb.Update("grades").
		Set("assessment", grade.Assessment).
		Set("score", grade.Score).
		Set("max_score", grade.MaxScore).
		Set("weight", grade.Weight).
		Set("date", grade.Date).
		Set("notes", grade.Notes).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": grade.ID, "school_id": grade.SchoolID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update grade query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating grade: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Grade not found")
	}
	return nil
}

// Delete removes a grade within a school.
func (r *GradeRepository) Delete(ctx context.Context, schoolID, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM grades WHERE id = $1 AND school_id = $2`, id, schoolID)
	if err != nil {
		return fmt.Errorf("error deleting grade: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Grade not found")
	}
	return nil
}
