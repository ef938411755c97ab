package services

import (
	"context"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/logger"
)

type teacherStore interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, schoolID, id int64) (*models.Teacher, error)
	List(ctx context.Context, schoolID int64, filter repositories.ListFilter) ([]*models.Teacher, int64, error)
	ExistsByCodeOrEmail(ctx context.Context, schoolID int64, code, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	HasDependents(ctx context.Context, schoolID, id int64) (bool, error)
	Delete(ctx context.Context, schoolID, id int64) error
}

// TeacherService manages teacher records within one school.
type TeacherService struct {
	teachers teacherStore
}

// NewTeacherService creates a new TeacherService
func NewTeacherService(teachers teacherStore) *TeacherService {
	return &TeacherService{teachers: teachers}
}

// Create registers a teacher. Code and email must be unique within the
// school.
func (s *TeacherService) Create(ctx context.Context, schoolID int64, req dto.CreateTeacherRequest) (*models.Teacher, error) {
	taken, err := s.teachers.ExistsByCodeOrEmail(ctx, schoolID, req.Code, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflictError("Teacher code or email already exists")
	}

	status := models.TeacherActive
	if req.Status != "" {
		status = models.TeacherStatus(req.Status)
	}

	teacher := &models.Teacher{
		SchoolID:  schoolID,
		Code:      req.Code,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		HireDate:  req.HireDate,
		Status:    status,
	}
	if err := s.teachers.Create(ctx, teacher); err != nil {
		return nil, err
	}

	logger.Info().Int64("schoolId", schoolID).Str("code", teacher.Code).Msg("Teacher created")
	return teacher, nil
}

// Get retrieves a teacher within the school.
func (s *TeacherService) Get(ctx context.Context, schoolID, id int64) (*models.Teacher, error) {
	return s.teachers.GetByID(ctx, schoolID, id)
}

// List retrieves teachers of the school.
func (s *TeacherService) List(ctx context.Context, schoolID int64, filter repositories.ListFilter) ([]*models.Teacher, int64, error) {
	return s.teachers.List(ctx, schoolID, filter)
}

// Update applies a partial update, re-checking the natural keys when they
// change.
func (s *TeacherService) Update(ctx context.Context, schoolID, id int64, req dto.UpdateTeacherRequest) (*models.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		teacher.Code = *req.Code
	}
	if req.Email != nil {
		teacher.Email = *req.Email
	}
	if req.Code != nil || req.Email != nil {
		taken, err := s.teachers.ExistsByCodeOrEmail(ctx, schoolID, teacher.Code, teacher.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewConflictError("Teacher code or email already exists")
		}
	}

	if req.FirstName != nil {
		teacher.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		teacher.LastName = *req.LastName
	}
	if req.Phone != nil {
		teacher.Phone = req.Phone
	}
	if req.Subject != nil {
		teacher.Subject = req.Subject
	}
	if req.HireDate != nil {
		teacher.HireDate = *req.HireDate
	}
	if req.Status != nil {
		teacher.Status = models.TeacherStatus(*req.Status)
	}

	if err := s.teachers.Update(ctx, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

// Delete removes a teacher. Teachers still assigned to courses or with
// attendance history are rejected.
func (s *TeacherService) Delete(ctx context.Context, schoolID, id int64) error {
	if _, err := s.teachers.GetByID(ctx, schoolID, id); err != nil {
		return err
	}

	hasDeps, err := s.teachers.HasDependents(ctx, schoolID, id)
	if err != nil {
		return err
	}
	if hasDeps {
		return apperrors.NewConflictError("Teacher is still assigned to courses; set status to inactive instead")
	}

	return s.teachers.Delete(ctx, schoolID, id)
}
