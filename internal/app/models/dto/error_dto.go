package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError names one invalid field in a request body.
type FieldError struct {
	Path    string `json:"path" example:"email"`
	Message string `json:"message" example:"email must be a valid email address"`
}

// ErrorResponse is the standard error body. Errors is only present for
// validation failures; RequiredRoles/ActualRole only for role refusals.
type ErrorResponse struct {
	Message       string       `json:"message"`
	Errors        []FieldError `json:"errors,omitempty"`
	RequiredRoles []string     `json:"requiredRoles,omitempty"`
	ActualRole    string       `json:"actualRole,omitempty"`
}

// NewErrorResponse creates an error body with just a message.
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Message: message}
}

// NewValidationErrorResponse translates a binding error into the standard
// 400 body, collecting every field error rather than stopping at the
// first.
func NewValidationErrorResponse(err error) *ErrorResponse {
	resp := &ErrorResponse{Message: "Validation failed"}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			resp.Errors = append(resp.Errors, FieldError{
				Path:    fieldPath(fe),
				Message: fieldMessage(fe),
			})
		}
	case errors.As(err, &typeErr):
		resp.Errors = append(resp.Errors, FieldError{
			Path:    typeErr.Field,
			Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type.String()),
		})
	default:
		resp.Errors = append(resp.Errors, FieldError{
			Path:    "",
			Message: err.Error(),
		})
	}
	return resp
}

// fieldPath lowercases the leading struct name off the namespace so the
// path matches the JSON field the client sent.
func fieldPath(fe validator.FieldError) string {
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}
	// validator reports Go field names; JSON field names are the same
	// with a lowercase first letter throughout this API.
	parts := strings.Split(path, ".")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}

// fieldMessage builds a human-readable message per validation tag.
func fieldMessage(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return field + " must be at least " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param()
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "gte":
		return field + " must be at least " + fe.Param()
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return field + " failed validation: " + fe.Tag()
	}
}
