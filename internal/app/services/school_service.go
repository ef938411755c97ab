package services

import (
	"context"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/logger"
)

type schoolStore interface {
	Create(ctx context.Context, school *models.School) error
	GetByID(ctx context.Context, id int64) (*models.School, error)
	List(ctx context.Context, filter repositories.ListFilter) ([]*models.School, int64, error)
	Update(ctx context.Context, school *models.School) error
	HasUsers(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// SchoolService manages tenants. Creation, update and deletion are
// superadmin operations; reads are open to any authenticated user of the
// school itself.
type SchoolService struct {
	schools schoolStore
}

// NewSchoolService creates a new SchoolService
func NewSchoolService(schools schoolStore) *SchoolService {
	return &SchoolService{schools: schools}
}

// Create provisions a tenant.
func (s *SchoolService) Create(ctx context.Context, req dto.CreateSchoolRequest) (*models.School, error) {
	school := &models.School{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	if req.AllowDeletion != nil {
		school.AllowDeletion = *req.AllowDeletion
	}
	if req.EnablePayments != nil {
		school.EnablePayments = *req.EnablePayments
	}

	if err := s.schools.Create(ctx, school); err != nil {
		return nil, err
	}
	logger.Info().Int64("schoolId", school.ID).Str("name", school.Name).Msg("School created")
	return school, nil
}

// Get retrieves a school.
func (s *SchoolService) Get(ctx context.Context, id int64) (*models.School, error) {
	return s.schools.GetByID(ctx, id)
}

// List retrieves schools.
func (s *SchoolService) List(ctx context.Context, filter repositories.ListFilter) ([]*models.School, int64, error) {
	return s.schools.List(ctx, filter)
}

// Update applies a partial update.
func (s *SchoolService) Update(ctx context.Context, id int64, req dto.UpdateSchoolRequest) (*models.School, error) {
	school, err := s.schools.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		school.Name = *req.Name
	}
	if req.Address != nil {
		school.Address = req.Address
	}
	if req.Phone != nil {
		school.Phone = req.Phone
	}
	if req.Email != nil {
		school.Email = req.Email
	}
	if req.AllowDeletion != nil {
		school.AllowDeletion = *req.AllowDeletion
	}
	if req.EnablePayments != nil {
		school.EnablePayments = *req.EnablePayments
	}

	if err := s.schools.Update(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

// Delete removes a school. A school that still has user accounts, or that
// has deletion disabled in its settings, is rejected with a conflict.
func (s *SchoolService) Delete(ctx context.Context, id int64) error {
	school, err := s.schools.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !school.AllowDeletion {
		return apperrors.NewConflictError("School deletion is disabled for this school")
	}

	hasUsers, err := s.schools.HasUsers(ctx, id)
	if err != nil {
		return err
	}
	if hasUsers {
		return apperrors.NewConflictError("School still has user accounts")
	}

	return s.schools.Delete(ctx, id)
}
