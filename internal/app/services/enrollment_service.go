package services

import (
	"context"
	"time"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/logger"
)

type enrollmentStore interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, schoolID, id int64) (*models.Enrollment, error)
	List(ctx context.Context, schoolID int64, filter repositories.ListFilter, studentID, courseID *int64) ([]*models.Enrollment, int64, error)
	UpdateStatus(ctx context.Context, schoolID, id int64, status models.EnrollmentStatus) error
	Delete(ctx context.Context, schoolID, id int64) error
}

type studentReader interface {
	GetByID(ctx context.Context, schoolID, id int64) (*models.Student, error)
}

type courseReader interface {
	GetByID(ctx context.Context, schoolID, id int64) (*models.Course, error)
}

// EnrollmentService manages student-course enrollments within one school.
// Capacity and duplicate checks happen transactionally in the repository;
// this layer validates the referenced records belong to the school.
type EnrollmentService struct {
	enrollments enrollmentStore
	students    studentReader
	courses     courseReader
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(enrollments enrollmentStore, students studentReader, courses courseReader) *EnrollmentService {
	return &EnrollmentService{enrollments: enrollments, students: students, courses: courses}
}

// Create enrolls a student in a course. Fails with a conflict when the
// course is full or the student already has an active enrollment in it.
func (s *EnrollmentService) Create(ctx context.Context, schoolID int64, req dto.CreateEnrollmentRequest) (*models.Enrollment, error) {
	if _, err := s.students.GetByID(ctx, schoolID, req.StudentID); err != nil {
		return nil, err
	}
	if _, err := s.courses.GetByID(ctx, schoolID, req.CourseID); err != nil {
		return nil, err
	}

	enrolledAt := req.EnrolledAt
	if enrolledAt.IsZero() {
		enrolledAt = models.DateOf(time.Now())
	}

	enrollment := &models.Enrollment{
		SchoolID:   schoolID,
		StudentID:  req.StudentID,
		CourseID:   req.CourseID,
		Status:     models.EnrollmentActive,
		EnrolledAt: enrolledAt,
	}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("schoolId", schoolID).
		Int64("studentId", req.StudentID).
		Int64("courseId", req.CourseID).
		Msg("Student enrolled")
	return enrollment, nil
}

// Get retrieves an enrollment within the school.
func (s *EnrollmentService) Get(ctx context.Context, schoolID, id int64) (*models.Enrollment, error) {
	return s.enrollments.GetByID(ctx, schoolID, id)
}

// List retrieves enrollments of the school, optionally narrowed by
// student, course or status.
func (s *EnrollmentService) List(ctx context.Context, schoolID int64, filter repositories.ListFilter, studentID, courseID *int64) ([]*models.Enrollment, int64, error) {
	return s.enrollments.List(ctx, schoolID, filter, studentID, courseID)
}

// UpdateStatus moves an enrollment to completed, dropped or back to
// active.
func (s *EnrollmentService) UpdateStatus(ctx context.Context, schoolID, id int64, req dto.UpdateEnrollmentRequest) (*models.Enrollment, error) {
	enrollment, err := s.enrollments.GetByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		status := models.EnrollmentStatus(*req.Status)
		if err := s.enrollments.UpdateStatus(ctx, schoolID, id, status); err != nil {
			return nil, err
		}
		enrollment.Status = status
	}
	return enrollment, nil
}

// Delete removes an enrollment record outright. Dropping out while
// keeping history is done through UpdateStatus instead.
func (s *EnrollmentService) Delete(ctx context.Context, schoolID, id int64) error {
	return s.enrollments.Delete(ctx, schoolID, id)
}
