package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
)

// AttendanceRepository handles student and teacher attendance records.
// Recording is an upsert on the natural key, so re-recording the same day
// overwrites the previous mark instead of failing.
type AttendanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db, sb: newStatementBuilder()}
}

const attendanceColumns = "id, school_id, student_id, course_id, date, status, notes, created_at, updated_at"

func scanAttendance(row pgx.Row) (*models.Attendance, error) {
	a := &models.Attendance{}
	err := row.Scan(&a.ID, &a.SchoolID, &a.StudentID, &a.CourseID, &a.Date,
		&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Record upserts a student attendance mark on (student, course, date).
func (r *AttendanceRepository) Record(ctx context.Context, attendance *models.Attendance) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO attendance (school_id, student_id, course_id, date, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (student_id, course_id, date)
		DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes, updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		attendance.SchoolID, attendance.StudentID, attendance.CourseID,
		attendance.Date, attendance.Status, attendance.Notes).
		Scan(&attendance.ID, &attendance.CreatedAt, &attendance.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error recording attendance: %w", err)
	}
	return nil
}

// GetByID retrieves an attendance record within a school.
func (r *AttendanceRepository) GetByID(ctx context.Context, schoolID, id int64) (*models.Attendance, error) {
	sql, args, err := r.sb.Select(attendanceColumns).
		From("attendance").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get attendance query: %w", err)
	}

	attendance, err := scanAttendance(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Attendance record not found")
		}
		return nil, fmt.Errorf("error getting attendance by ID: %w", err)
	}
	return attendance, nil
}

// List retrieves student attendance records of a school. StudentID,
// courseID and date narrow the result when non-nil.
func (r *AttendanceRepository) List(ctx context.Context, schoolID int64, filter ListFilter, studentID, courseID *int64, date *models.Date) ([]*models.Attendance, int64, error) {
	base := r.sb.Select(attendanceColumns).From("attendance").Where(squirrel.Eq{"school_id": schoolID})
	countQ := r.sb.Select("COUNT(*)").From("attendance").Where(squirrel.Eq{"school_id": schoolID})

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
	if date != nil {
		base = base.Where(squirrel.Eq{"date": *date})
		countQ = countQ.Where(squirrel.Eq{"date": *date})
	}

	var total int64
	sql, args, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count attendance query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting attendance: %w", err)
	}

	sql, args, err = base.
		OrderBy("date DESC", "id DESC").
		Offset(uint64((filter.Page - 1) * filter.Limit)).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list attendance query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying attendance: %w", err)
	}
	defer rows.Close()

	records := []*models.Attendance{}
	for rows.Next() {
		attendance, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, attendance)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Delete removes a student attendance record within a school.
func (r *AttendanceRepository) Delete(ctx context.Context, schoolID, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM attendance WHERE id = $1 AND school_id = $2`, id, schoolID)
	if err != nil {
		return fmt.Errorf("error deleting attendance: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Attendance record not found")
	}
	return nil
}

const teacherAttendanceColumns = "id, school_id, teacher_id, date, status, notes, created_at, updated_at"

func scanTeacherAttendance(row pgx.Row) (*models.TeacherAttendance, error) {
	a := &models.TeacherAttendance{}
	err := row.Scan(&a.ID, &a.SchoolID, &a.TeacherID, &a.Date, &a.Status,
		&a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// RecordTeacher upserts a teacher attendance mark on (teacher, date).
func (r *AttendanceRepository) RecordTeacher(ctx context.Context, attendance *models.TeacherAttendance) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO teacher_attendance (school_id, teacher_id, date, status, notes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (teacher_id, date)
		DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes, updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		attendance.SchoolID, attendance.TeacherID, attendance.Date,
		attendance.Status, attendance.Notes).
		Scan(&attendance.ID, &attendance.CreatedAt, &attendance.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error recording teacher attendance: %w", err)
	}
	return nil
}

// ListTeacher retrieves teacher attendance records of a school.
func (r *AttendanceRepository) ListTeacher(ctx context.Context, schoolID int64, filter ListFilter, teacherID *int64, date *models.Date) ([]*models.TeacherAttendance, int64, error) {
	base := r.sb.Select(teacherAttendanceColumns).From("teacher_attendance").Where(squirrel.Eq{"school_id": schoolID})
	countQ := r.sb.Select("COUNT(*)").From("teacher_attendance").Where(squirrel.Eq{"school_id": schoolID})

	if filter.Status != "" {
		base = base.Where(squirrel.Eq{"status": filter.Status})
		countQ = countQ.Where(squirrel.Eq{"status": filter.Status})
	}
	if teacherID != nil {
		base = base.Where(squirrel.Eq{"teacher_id": *teacherID})
		countQ = countQ.Where(squirrel.Eq{"teacher_id": *teacherID})
	}
	if date != nil {
		base = base.Where(squirrel.Eq{"date": *date})
		countQ = countQ.Where(squirrel.Eq{"date": *date})
	}

	var total int64
	sql, args, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count teacher attendance query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting teacher attendance: %w", err)
	}

	sql, args, err = base.
		OrderBy("date DESC", "id DESC").
		Offset(uint64((filter.Page - 1) * filter.Limit)).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list teacher attendance query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying teacher attendance: %w", err)
	}
	defer rows.Close()

	records := []*models.TeacherAttendance{}
	for rows.Next() {
		attendance, err := scanTeacherAttendance(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, attendance)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// DeleteTeacher removes a teacher attendance record within a school.
func (r *AttendanceRepository) DeleteTeacher(ctx context.Context, schoolID, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM teacher_attendance WHERE id = $1 AND school_id = $2`, id, schoolID)
	if err != nil {
		return fmt.Errorf("error deleting teacher attendance: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Attendance record not found")
	}
	return nil
}
