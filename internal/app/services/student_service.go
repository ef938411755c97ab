package services

import (
	"context"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/logger"
)

type studentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, schoolID, id int64) (*models.Student, error)
	List(ctx context.Context, schoolID int64, filter repositories.ListFilter) ([]*models.Student, int64, error)
	ExistsByCodeOrEmail(ctx context.Context, schoolID int64, code, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, student *models.Student) error
	HasDependents(ctx context.Context, schoolID, id int64) (bool, error)
	Delete(ctx context.Context, schoolID, id int64) error
}

type guardianReader interface {
	GetByID(ctx context.Context, schoolID, id int64) (*models.Guardian, error)
}

// StudentService manages student records within one school.
type StudentService struct {
	students  studentStore
	guardians guardianReader
}

// NewStudentService creates a new StudentService
func NewStudentService(students studentStore, guardians guardianReader) *StudentService {
	return &StudentService{students: students, guardians: guardians}
}

// Create registers a student. Code and email must be unique within the
// school, and a referenced guardian must belong to the same school.
func (s *StudentService) Create(ctx context.Context, schoolID int64, req dto.CreateStudentRequest) (*models.Student, error) {
	taken, err := s.students.ExistsByCodeOrEmail(ctx, schoolID, req.Code, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflictError("Student code or email already exists")
	}

	if req.GuardianID != nil {
		if _, err := s.guardians.GetByID(ctx, schoolID, *req.GuardianID); err != nil {
			return nil, err
		}
	}

	status := models.StudentActive
	if req.Status != "" {
		status = models.StudentStatus(req.Status)
	}

	student := &models.Student{
		SchoolID:   schoolID,
		Code:       req.Code,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		BirthDate:  req.BirthDate,
		Status:     status,
		GuardianID: req.GuardianID,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	logger.Info().Int64("schoolId", schoolID).Str("code", student.Code).Msg("Student created")
	return student, nil
}

// Get retrieves a student within the school.
func (s *StudentService) Get(ctx context.Context, schoolID, id int64) (*models.Student, error) {
	return s.students.GetByID(ctx, schoolID, id)
}

// List retrieves students of the school.
func (s *StudentService) List(ctx context.Context, schoolID int64, filter repositories.ListFilter) ([]*models.Student, int64, error) {
	return s.students.List(ctx, schoolID, filter)
}

// Update applies a partial update, re-checking the natural keys when they
// change.
func (s *StudentService) Update(ctx context.Context, schoolID, id int64, req dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		student.Code = *req.Code
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Code != nil || req.Email != nil {
		taken, err := s.students.ExistsByCodeOrEmail(ctx, schoolID, student.Code, student.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewConflictError("Student code or email already exists")
		}
	}

	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.Phone != nil {
		student.Phone = req.Phone
	}
	if req.BirthDate != nil {
		student.BirthDate = *req.BirthDate
	}
	if req.Status != nil {
		student.Status = models.StudentStatus(*req.Status)
	}
	if req.GuardianID != nil {
		if _, err := s.guardians.GetByID(ctx, schoolID, *req.GuardianID); err != nil {
			return nil, err
		}
		student.GuardianID = req.GuardianID
	}

	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes a student. Students with enrollments, grades, attendance
// or invoices are rejected; deactivate them instead.
func (s *StudentService) Delete(ctx context.Context, schoolID, id int64) error {
	if _, err := s.students.GetByID(ctx, schoolID, id); err != nil {
		return err
	}

	hasDeps, err := s.students.HasDependents(ctx, schoolID, id)
	if err != nil {
		return err
	}
	if hasDeps {
		return apperrors.NewConflictError("Student has enrollments or billing records; set status to inactive instead")
	}

	return s.students.Delete(ctx, schoolID, id)
}
