package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	appRepos "github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/auth"
)

// Default credentials for the first boot. The password must be rotated
// through the API before the instance faces the internet.
const (
	defaultSuperadminEmail    = "superadmin@mymadrassa.be"
	defaultSuperadminPassword = "ChangeMe123!"
	defaultSchoolName         = "Demo School"
)

// CreateDefaultData seeds the superadmin account and a demo school on an
// empty database. Existing rows are left untouched, so running it on
// every boot is safe.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	schoolRepo := appRepos.NewSchoolRepository(dbPool)

	var finalErr error

	_, err := userRepo.GetByEmail(ctx, defaultSuperadminEmail)
	switch {
	case err == nil:
		lgr.Info().Msg("Superadmin account already exists, skipping creation")
	case errors.Is(err, apperrors.ErrUserNotFound):
		lgr.Info().Msg("Creating default superadmin account...")

		hashed, hashErr := auth.HashPassword(defaultSuperadminPassword)
		if hashErr != nil {
			lgr.Error().Err(hashErr).Msg("Error hashing superadmin password")
			finalErr = errors.Join(finalErr, hashErr)
			break
		}

		superadmin := &appModels.User{
			Email:     defaultSuperadminEmail,
			Password:  hashed,
			FirstName: "System",
			LastName:  "Administrator",
			Role:      appModels.RoleSuperadmin,
			IsActive:  true,
		}
		if createErr := userRepo.Create(ctx, superadmin); createErr != nil {
			lgr.Error().Err(createErr).Msg("Error creating superadmin account")
			finalErr = errors.Join(finalErr, createErr)
		} else {
			lgr.Info().Int64("userId", superadmin.ID).Msg("Default superadmin account created")
		}
	default:
		lgr.Error().Err(err).Msg("Error checking for superadmin account")
		finalErr = errors.Join(finalErr, err)
	}

	schools, total, err := schoolRepo.List(ctx, appRepos.ListFilter{Page: 1, Limit: 1})
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for existing schools")
		return errors.Join(finalErr, err)
	}
	if total > 0 || len(schools) > 0 {
		return finalErr
	}

	lgr.Info().Msg("Creating demo school...")
	school := &appModels.School{
		Name:           defaultSchoolName,
		AllowDeletion:  true,
		EnablePayments: true,
	}
	if err := schoolRepo.Create(ctx, school); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo school")
		return errors.Join(finalErr, err)
	}
	lgr.Info().Int64("schoolId", school.ID).Msg("Demo school created")

	return finalErr
}
