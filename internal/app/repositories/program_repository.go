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

// ProgramRepository handles program catalog database operations, scoped
// by schoolID.
type ProgramRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{db: db, sb: newStatementBuilder()}
}

const programColumns = "id, school_id, name, code, description, duration, department, created_at, updated_at"

func scanProgram(row pgx.Row) (*models.Program, error) {
	p := &models.Program{}
	err := row.Scan(&p.ID, &p.SchoolID, &p.Name, &p.Code, &p.Description,
		&p.Duration, &p.Department, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a program and fills in its generated id.
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) error {
	sql, args, err := r.sb.Insert("programs").
		Columns("school_id", "name", "code", "description", "duration", "department").
		Values(program.SchoolID, program.Name, program.Code, program.Description, program.Duration, program.Department).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create program query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&program.ID, &program.CreatedAt, &program.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating program: %w", err)
	}
	return nil
}

// GetByID retrieves a program within a school.
func (r *ProgramRepository) GetByID(ctx context.Context, schoolID, id int64) (*models.Program, error) {
	sql, args, err := r.sb.Select(programColumns).
		From("programs").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get program query: %w", err)
	}

	program, err := scanProgram(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error getting program by ID: %w", err)
	}
	return program, nil
}

// List retrieves programs of a school with a search filter.
func (r *ProgramRepository) List(ctx context.Context, schoolID int64, filter ListFilter) ([]*models.Program, int64, error) {
	base := r.sb.Select(programColumns).From("programs").Where(squirrel.Eq{"school_id": schoolID})
	countQ := r.sb.Select("COUNT(*)").From("programs").Where(squirrel.Eq{"school_id": schoolID})

	if filter.Search != "" {
		cond := squirrel.Or{
			squirrel.ILike{"name": searchPattern(filter.Search)},
			squirrel.ILike{"code": searchPattern(filter.Search)},
		}
		base = base.Where(cond)
		countQ = countQ.Where(cond)
	}

	var total int64
	sql, args, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count programs query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting programs: %w", err)
	}

	sql, args, err = base.
		OrderBy("name ASC").
		Offset(uint64((filter.Page - 1) * filter.Limit)).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list programs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying programs: %w", err)
	}
	defer rows.Close()

	programs := []*models.Program{}
	for rows.Next() {
		program, err := scanProgram(rows)
		if err != nil {
			return nil, 0, err
		}
		programs = append(programs, program)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return programs, total, nil
}

// ExistsByCode checks the code natural key within a school, excluding
// excludeID (0 for creates).
func (r *ProgramRepository) ExistsByCode(ctx context.Context, schoolID int64, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM programs
		 WHERE school_id = $1 AND code = $2 AND id != $3)`,
		schoolID, code, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking program existence: %w", err)
	}
	return exists, nil
}

// Update rewrites the mutable columns of a program.
func (r *ProgramRepository) Update(ctx context.Context, program *models.Program) error {
	sql, args, err := r.sb.Update("programs").
		Set("name", program.Name).
		Set("code", program.Code).
		Set("description", program.Description).
		Set("duration", program.Duration).
		Set("department", program.Department).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": program.ID, "school_id": program.SchoolID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update program query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating program: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}
	return nil
}

// HasCourses reports whether any course still references the program.
func (r *ProgramRepository) HasCourses(ctx context.Context, schoolID, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM courses WHERE program_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking program courses: %w", err)
	}
	return exists, nil
}

// Delete removes a program within a school.
func (r *ProgramRepository) Delete(ctx context.Context, schoolID, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM programs WHERE id = $1 AND school_id = $2`, id, schoolID)
	if err != nil {
		return fmt.Errorf("error deleting program: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}
	return nil
}
