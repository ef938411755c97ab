package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
)

func respondWith(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/probe", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHandleAPIErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"bad request", apperrors.NewBadRequestError("Either amount or feeId is required"), http.StatusBadRequest, "Either amount or feeId is required"},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{"session expired", apperrors.ErrSessionExpired, http.StatusUnauthorized, "Session expired"},
		{"session revoked", apperrors.ErrSessionRevoked, http.StatusUnauthorized, "Authentication required"},
		{"account disabled", apperrors.ErrAccountDisabled, http.StatusUnauthorized, "Account is disabled"},
		{"permission denied", apperrors.NewForbiddenError("Cannot manage users of another school"), http.StatusForbidden, "Cannot manage users of another school"},
		{"generic not found", apperrors.NewNotFoundError("Grade not found"), http.StatusNotFound, "Grade not found"},
		{"entity not found", apperrors.ErrStudentNotFound, http.StatusNotFound, "student not found"},
		{"named conflict", apperrors.NewConflictError("Program code already exists"), http.StatusBadRequest, "Program code already exists"},
		{"duplicate enrollment", apperrors.ErrDuplicateEnrollment, http.StatusBadRequest, "Student is already enrolled in this course"},
		{"course full", apperrors.ErrCourseFull, http.StatusBadRequest, "Course is at maximum capacity"},
		{"invoice not payable", apperrors.ErrInvoiceNotPayable, http.StatusBadRequest, "Invoice can no longer accept payments"},
		{"email taken", apperrors.ErrEmailAlreadyExists, http.StatusBadRequest, "Email already exists"},
		{"unknown error", assert.AnError, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := respondWith(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}
