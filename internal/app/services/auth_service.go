package services

import (
	"context"
	"time"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/auth"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/logger"
)

// userReader is the slice of the user repository the auth service needs.
type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
}

// sessionStore is the slice of the session repository the auth service
// needs.
type sessionStore interface {
	Create(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
}

// AuthService handles login, logout and session resolution.
type AuthService struct {
	users    userReader
	sessions sessionStore
	cfg      auth.SessionConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(users userReader, sessions sessionStore, cfg auth.SessionConfig) *AuthService {
	return &AuthService{users: users, sessions: sessions, cfg: cfg}
}

// Login verifies credentials and opens a session. Unknown emails, wrong
// passwords and disabled accounts all surface as ErrInvalidCredentials so
// the response does not leak which part failed.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		logger.Debug().Str("email", req.Email).Msg("Login attempt for unknown email")
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		logger.Debug().Int64("userId", user.ID).Msg("Login attempt with wrong password")
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token := auth.NewSessionToken()
	expiresAt := time.Now().Add(s.cfg.TTL)
	if err := s.sessions.Create(ctx, token, user.ID, expiresAt); err != nil {
		return nil, "", err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to stamp last login")
	}

	logger.Info().Int64("userId", user.ID).Str("role", string(user.Role)).Msg("User logged in")
	return user, token, nil
}

// Logout revokes the session behind token. Revoking an already revoked or
// unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, token); err != nil {
		logger.Debug().Err(err).Msg("Logout for unknown session")
	}
	return nil
}

// Resolve maps a session token to its live user. Expired, revoked and
// unknown sessions return ErrUnauthenticated variants; a session whose
// user was deactivated after login is rejected too.
func (s *AuthService) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	return user, nil
}

// CookieTTLSeconds is the Max-Age to set on the session cookie.
func (s *AuthService) CookieTTLSeconds() int {
	return int(s.cfg.TTL.Seconds())
}

// SecureCookie reports whether the Secure attribute should be set.
func (s *AuthService) SecureCookie() bool {
	return s.cfg.Secure
}

// NewProfileResponse converts a user to its wire profile.
func NewProfileResponse(user *models.User) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        string(user.Role),
		SchoolID:    user.SchoolID,
		LastLoginAt: user.LastLoginAt,
	}
}
