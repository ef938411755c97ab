package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/auth"
)

type fakeUserReader struct {
	byEmail    map[string]*models.User
	byID       map[int64]*models.User
	lastLogins []int64
}

func (f *fakeUserReader) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserReader) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserReader) UpdateLastLogin(_ context.Context, id int64) error {
	f.lastLogins = append(f.lastLogins, id)
	return nil
}

type fakeSessionStore struct {
	sessions map[string]*models.Session
	revoked  map[string]bool
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		sessions: make(map[string]*models.Session),
		revoked:  make(map[string]bool),
	}
}

func (f *fakeSessionStore) Create(_ context.Context, token string, userID int64, expiresAt time.Time) error {
	f.sessions[token] = &models.Session{Token: token, UserID: userID, ExpiresAt: expiresAt}
	return nil
}

func (f *fakeSessionStore) GetByToken(_ context.Context, token string) (*models.Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	if f.revoked[token] {
		return nil, apperrors.ErrSessionRevoked
	}
	if time.Now().After(s.ExpiresAt) {
		return nil, apperrors.ErrSessionExpired
	}
	return s, nil
}

func (f *fakeSessionStore) Revoke(_ context.Context, token string) error {
	if _, ok := f.sessions[token]; !ok {
		return apperrors.ErrSessionNotFound
	}
	f.revoked[token] = true
	return nil
}

func (f *fakeSessionStore) RevokeAllForUser(_ context.Context, userID int64) error {
	for token, s := range f.sessions {
		if s.UserID == userID {
			f.revoked[token] = true
		}
	}
	return nil
}

func testUser(t *testing.T, id int64, email, password string, active bool) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	schoolID := int64(1)
	return &models.User{
		ID:        id,
		Email:     email,
		Password:  hash,
		FirstName: "Test",
		LastName:  "User",
		Role:      models.RoleAdmin,
		SchoolID:  &schoolID,
		IsActive:  active,
	}
}

func newAuthFixture(t *testing.T, users ...*models.User) (*AuthService, *fakeUserReader, *fakeSessionStore) {
	t.Helper()
	reader := &fakeUserReader{
		byEmail: make(map[string]*models.User),
		byID:    make(map[int64]*models.User),
	}
	for _, u := range users {
		reader.byEmail[u.Email] = u
		reader.byID[u.ID] = u
	}
	store := newFakeSessionStore()
	svc := NewAuthService(reader, store, auth.SessionConfig{TTL: time.Hour})
	return svc, reader, store
}

func TestAuthServiceLogin(t *testing.T) {
	active := testUser(t, 1, "admin@test.be", "Secret123!", true)
	disabled := testUser(t, 2, "gone@test.be", "Secret123!", false)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "success", email: "admin@test.be", password: "Secret123!"},
		{name: "unknown email", email: "nobody@test.be", password: "Secret123!", wantErr: apperrors.ErrInvalidCredentials},
		{name: "wrong password", email: "admin@test.be", password: "nope", wantErr: apperrors.ErrInvalidCredentials},
		{name: "disabled account", email: "gone@test.be", password: "Secret123!", wantErr: apperrors.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, store := newAuthFixture(t, active, disabled)

			user, token, err := svc.Login(context.Background(), dto.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, active.ID, user.ID)
			require.NotEmpty(t, token)
			assert.Contains(t, store.sessions, token)
		})
	}
}

func TestAuthServiceLoginStampsLastLogin(t *testing.T) {
	user := testUser(t, 1, "admin@test.be", "Secret123!", true)
	svc, reader, _ := newAuthFixture(t, user)

	_, _, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@test.be",
		Password: "Secret123!",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, reader.lastLogins)
}

func TestAuthServiceResolve(t *testing.T) {
	user := testUser(t, 1, "admin@test.be", "Secret123!", true)
	svc, reader, store := newAuthFixture(t, user)

	_, token, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@test.be",
		Password: "Secret123!",
	})
	require.NoError(t, err)

	t.Run("valid session", func(t *testing.T) {
		got, err := svc.Resolve(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.Resolve(context.Background(), "")
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := svc.Resolve(context.Background(), "not-a-session")
		assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("expired session", func(t *testing.T) {
		store.sessions[token].ExpiresAt = time.Now().Add(-time.Minute)
		_, err := svc.Resolve(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
		store.sessions[token].ExpiresAt = time.Now().Add(time.Hour)
	})

	t.Run("deactivated after login", func(t *testing.T) {
		reader.byID[1].IsActive = false
		_, err := svc.Resolve(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
		reader.byID[1].IsActive = true
	})

	t.Run("revoked session", func(t *testing.T) {
		require.NoError(t, svc.Logout(context.Background(), token))
		_, err := svc.Resolve(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrSessionRevoked)
	})
}

func TestAuthServiceLogoutIdempotent(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	assert.NoError(t, svc.Logout(context.Background(), ""))
	assert.NoError(t, svc.Logout(context.Background(), "unknown-token"))
}
