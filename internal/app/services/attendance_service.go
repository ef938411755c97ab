package services

import (
	"context"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
)

type attendanceStore interface {
	Record(ctx context.Context, attendance *models.Attendance) error
	GetByID(ctx context.Context, schoolID, id int64) (*models.Attendance, error)
	List(ctx context.Context, schoolID int64, filter repositories.ListFilter, studentID, courseID *int64, date *models.Date) ([]*models.Attendance, int64, error)
	Delete(ctx context.Context, schoolID, id int64) error
	RecordTeacher(ctx context.Context, attendance *models.TeacherAttendance) error
	ListTeacher(ctx context.Context, schoolID int64, filter repositories.ListFilter, teacherID *int64, date *models.Date) ([]*models.TeacherAttendance, int64, error)
	DeleteTeacher(ctx context.Context, schoolID, id int64) error
}

// AttendanceService records and reads per-date attendance for students
// and teachers.
type AttendanceService struct {
	attendance attendanceStore
	students   studentReader
	courses    courseReader
	teachers   teacherReader
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(attendance attendanceStore, students studentReader, courses courseReader, teachers teacherReader) *AttendanceService {
	return &AttendanceService{attendance: attendance, students: students, courses: courses, teachers: teachers}
}

// Record upserts a student attendance mark. Recording the same
// (student, course, date) twice overwrites the earlier mark.
func (s *AttendanceService) Record(ctx context.Context, schoolID int64, req dto.RecordAttendanceRequest) (*models.Attendance, error) {
	if _, err := s.students.GetByID(ctx, schoolID, req.StudentID); err != nil {
		return nil, err
	}
	if _, err := s.courses.GetByID(ctx, schoolID, req.CourseID); err != nil {
		return nil, err
	}

	attendance := &models.Attendance{
		SchoolID:  schoolID,
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Date:      req.Date,
		Status:    models.AttendanceStatus(req.Status),
		Notes:     req.Notes,
	}
	if err := s.attendance.Record(ctx, attendance); err != nil {
		return nil, err
	}
	return attendance, nil
}

// Get retrieves a student attendance record.
func (s *AttendanceService) Get(ctx context.Context, schoolID, id int64) (*models.Attendance, error) {
	return s.attendance.GetByID(ctx, schoolID, id)
}

// List retrieves student attendance records, optionally narrowed by
// student, course, date or status.
func (s *AttendanceService) List(ctx context.Context, schoolID int64, filter repositories.ListFilter, studentID, courseID *int64, date *models.Date) ([]*models.Attendance, int64, error) {
	return s.attendance.List(ctx, schoolID, filter, studentID, courseID, date)
}

// Delete removes a student attendance record.
func (s *AttendanceService) Delete(ctx context.Context, schoolID, id int64) error {
	return s.attendance.Delete(ctx, schoolID, id)
}

// RecordTeacher upserts a teacher attendance mark on (teacher, date).
func (s *AttendanceService) RecordTeacher(ctx context.Context, schoolID int64, req dto.RecordTeacherAttendanceRequest) (*models.TeacherAttendance, error) {
	if _, err := s.teachers.GetByID(ctx, schoolID, req.TeacherID); err != nil {
		return nil, err
	}

	attendance := &models.TeacherAttendance{
		SchoolID:  schoolID,
		TeacherID: req.TeacherID,
		Date:      req.Date,
		Status:    models.AttendanceStatus(req.Status),
		Notes:     req.Notes,
	}
	if err := s.attendance.RecordTeacher(ctx, attendance); err != nil {
		return nil, err
	}
	return attendance, nil
}

// ListTeacher retrieves teacher attendance records.
func (s *AttendanceService) ListTeacher(ctx context.Context, schoolID int64, filter repositories.ListFilter, teacherID *int64, date *models.Date) ([]*models.TeacherAttendance, int64, error) {
	return s.attendance.ListTeacher(ctx, schoolID, filter, teacherID, date)
}

// DeleteTeacher removes a teacher attendance record.
func (s *AttendanceService) DeleteTeacher(ctx context.Context, schoolID, id int64) error {
	return s.attendance.DeleteTeacher(ctx, schoolID, id)
}
