package services

import (
	"context"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/auth"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/logger"
)

// userStore is the slice of the user repository the user service needs.
type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, schoolID *int64, filter repositories.ListFilter) ([]*models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
}

type sessionRevoker interface {
	RevokeAllForUser(ctx context.Context, userID int64) error
}

// UserService manages login accounts. Only superadmin and admin reach
// these operations; the middleware enforces that before the service runs.
type UserService struct {
	users    userStore
	sessions sessionRevoker
}

// NewUserService creates a new UserService
func NewUserService(users userStore, sessions sessionRevoker) *UserService {
	return &UserService{users: users, sessions: sessions}
}

// Create provisions a login account. Superadmin accounts carry no school;
// every other role requires one. Admins may only create accounts inside
// their own school, which the caller enforces by passing the actor.
func (s *UserService) Create(ctx context.Context, actor *models.User, req dto.CreateUserRequest) (*models.User, error) {
	role := models.Role(req.Role)

	if role == models.RoleSuperadmin {
		if req.SchoolID != nil {
			return nil, apperrors.NewBadRequestError("Superadmin accounts cannot belong to a school")
		}
		if actor.Role != models.RoleSuperadmin {
			return nil, apperrors.NewForbiddenError("Only a superadmin can create superadmin accounts")
		}
	} else if req.SchoolID == nil {
		if actor.SchoolID == nil {
			return nil, apperrors.NewBadRequestError("schoolId is required for this role")
		}
		req.SchoolID = actor.SchoolID
	}

	if actor.Role != models.RoleSuperadmin && req.SchoolID != nil &&
		(actor.SchoolID == nil || *actor.SchoolID != *req.SchoolID) {
		return nil, apperrors.NewForbiddenError("Cannot create accounts for another school")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
		SchoolID:  req.SchoolID,
		IsActive:  true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", user.ID).Str("role", req.Role).Msg("User account created")
	return user, nil
}

// Get retrieves a user, enforcing tenant visibility for non-superadmins.
func (s *UserService) Get(ctx context.Context, actor *models.User, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CrossTenant() {
		if user.SchoolID == nil || actor.SchoolID == nil || *user.SchoolID != *actor.SchoolID {
			return nil, apperrors.ErrUserNotFound
		}
	}
	return user, nil
}

// List retrieves accounts. Superadmins see every school, optionally
// narrowed by schoolID; everyone else only their own.
func (s *UserService) List(ctx context.Context, actor *models.User, schoolID *int64, filter repositories.ListFilter) ([]*models.User, int64, error) {
	if !actor.Role.CrossTenant() {
		schoolID = actor.SchoolID
	}
	return s.users.List(ctx, schoolID, filter)
}

// Update applies a partial update. Promoting to superadmin drops the
// school; moving to any other role requires one. Deactivating an account
// also revokes its open sessions so the user is logged out everywhere at
// once.
func (s *UserService) Update(ctx context.Context, actor *models.User, id int64, req dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		newRole := models.Role(*req.Role)
		if newRole == models.RoleSuperadmin && actor.Role != models.RoleSuperadmin {
			return nil, apperrors.NewForbiddenError("Only a superadmin can grant the superadmin role")
		}
		user.Role = newRole
	}
	if req.SchoolID != nil {
		if actor.Role != models.RoleSuperadmin &&
			(actor.SchoolID == nil || *actor.SchoolID != *req.SchoolID) {
			return nil, apperrors.NewForbiddenError("Cannot move accounts to another school")
		}
		user.SchoolID = req.SchoolID
	}
	// A superadmin carries no school; every other role needs one.
	if user.Role == models.RoleSuperadmin {
		if req.SchoolID != nil {
			return nil, apperrors.NewBadRequestError("Superadmin accounts cannot belong to a school")
		}
		user.SchoolID = nil
	} else if user.SchoolID == nil {
		return nil, apperrors.NewBadRequestError("schoolId is required for this role")
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	deactivated := false
	if req.IsActive != nil {
		if !*req.IsActive && user.IsActive {
			deactivated = true
		}
		user.IsActive = *req.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if deactivated {
		if err := s.sessions.RevokeAllForUser(ctx, user.ID); err != nil {
			logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to revoke sessions of deactivated user")
		}
	}
	return user, nil
}
