package services

import (
	"context"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
)

type guardianStore interface {
	Create(ctx context.Context, guardian *models.Guardian) error
	GetByID(ctx context.Context, schoolID, id int64) (*models.Guardian, error)
	List(ctx context.Context, schoolID int64, filter repositories.ListFilter) ([]*models.Guardian, int64, error)
	ExistsByEmail(ctx context.Context, schoolID int64, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, guardian *models.Guardian) error
	HasStudents(ctx context.Context, schoolID, id int64) (bool, error)
	Delete(ctx context.Context, schoolID, id int64) error
}

// GuardianService manages guardian records within one school.
type GuardianService struct {
	guardians guardianStore
}

// NewGuardianService creates a new GuardianService
func NewGuardianService(guardians guardianStore) *GuardianService {
	return &GuardianService{guardians: guardians}
}

// Create registers a guardian. Email must be unique within the school.
func (s *GuardianService) Create(ctx context.Context, schoolID int64, req dto.CreateGuardianRequest) (*models.Guardian, error) {
	taken, err := s.guardians.ExistsByEmail(ctx, schoolID, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflictError("Guardian email already exists")
	}

	guardian := &models.Guardian{
		SchoolID:     schoolID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Relationship: req.Relationship,
	}
	if err := s.guardians.Create(ctx, guardian); err != nil {
		return nil, err
	}
	return guardian, nil
}

// Get retrieves a guardian within the school.
func (s *GuardianService) Get(ctx context.Context, schoolID, id int64) (*models.Guardian, error) {
	return s.guardians.GetByID(ctx, schoolID, id)
}

// List retrieves guardians of the school.
func (s *GuardianService) List(ctx context.Context, schoolID int64, filter repositories.ListFilter) ([]*models.Guardian, int64, error) {
	return s.guardians.List(ctx, schoolID, filter)
}

// Update applies a partial update, re-checking the email key when it
// changes.
func (s *GuardianService) Update(ctx context.Context, schoolID, id int64, req dto.UpdateGuardianRequest) (*models.Guardian, error) {
	guardian, err := s.guardians.GetByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		taken, err := s.guardians.ExistsByEmail(ctx, schoolID, *req.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewConflictError("Guardian email already exists")
		}
		guardian.Email = *req.Email
	}
	if req.FirstName != nil {
		guardian.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		guardian.LastName = *req.LastName
	}
	if req.Phone != nil {
		guardian.Phone = req.Phone
	}
	if req.Relationship != nil {
		guardian.Relationship = req.Relationship
	}

	if err := s.guardians.Update(ctx, guardian); err != nil {
		return nil, err
	}
	return guardian, nil
}

// Delete removes a guardian unless students still reference them.
func (s *GuardianService) Delete(ctx context.Context, schoolID, id int64) error {
	if _, err := s.guardians.GetByID(ctx, schoolID, id); err != nil {
		return err
	}

	hasStudents, err := s.guardians.HasStudents(ctx, schoolID, id)
	if err != nil {
		return err
	}
	if hasStudents {
		return apperrors.NewConflictError("Guardian is still linked to students")
	}

	return s.guardians.Delete(ctx, schoolID, id)
}
