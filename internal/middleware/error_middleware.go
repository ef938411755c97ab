package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/logger"
)

// HandleAPIError maps application errors onto the standard error body.
// Controllers call this for any service or binding failure.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	message := err.Error()
	if errors.As(err, &custom) && custom.Message != "" {
		message = custom.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(message))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid email or password"))
	case errors.Is(err, apperrors.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Session expired"))
	case errors.Is(err, apperrors.ErrSessionNotFound),
		errors.Is(err, apperrors.ErrSessionRevoked),
		errors.Is(err, apperrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
	case errors.Is(err, apperrors.ErrAccountDisabled):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Account is disabled"))
	case errors.Is(err, apperrors.ErrNoSchoolAssigned):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse("No school assigned to this account"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(message))
	case errors.Is(err, apperrors.ErrResourceNotFound),
		isNotFoundSentinel(err):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(message))
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDuplicateEnrollment),
		errors.Is(err, apperrors.ErrCourseFull),
		errors.Is(err, apperrors.ErrInvoiceNotPayable),
		errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(conflictMessage(err, message)))
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error"))
	}
}

// isNotFoundSentinel covers the per-entity not-found errors, which do not
// wrap ErrResourceNotFound.
func isNotFoundSentinel(err error) bool {
	for _, sentinel := range []error{
		apperrors.ErrSchoolNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrStudentNotFound,
		apperrors.ErrTeacherNotFound,
		apperrors.ErrGuardianNotFound,
		apperrors.ErrProgramNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrEnrollmentNotFound,
		apperrors.ErrInvoiceNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// conflictMessage gives the well-known conflict sentinels their exact
// client messages.
func conflictMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, apperrors.ErrDuplicateEnrollment):
		return "Student is already enrolled in this course"
	case errors.Is(err, apperrors.ErrCourseFull):
		return "Course is at maximum capacity"
	case errors.Is(err, apperrors.ErrInvoiceNotPayable):
		return "Invoice can no longer accept payments"
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return "Email already exists"
	}
	return fallback
}

// Recovery returns a recovery middleware that logs the panic and answers
// with the standard 500 body instead of gin's plain-text default.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("Panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			dto.NewErrorResponse("Internal server error"))
	})
}
