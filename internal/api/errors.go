package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/verdanthq/verdant-api/internal/api/shared"
	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/domain/progress"
	"github.com/verdanthq/verdant-api/internal/service"
	"github.com/verdanthq/verdant-api/internal/service/auth"
	"github.com/verdanthq/verdant-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrEnrollmentNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrProgramNotFound),
		errors.Is(err, store.ErrEnrollmentNotFound),
		errors.Is(err, store.ErrDailyLogNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, service.ErrNoActiveEnrollment):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrOutOfRangeDay),
		errors.Is(err, domain.ErrEmptyItemID),
		errors.Is(err, domain.ErrInvalidEffortLevel),
		errors.Is(err, progress.ErrInvalidMonth):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		// A ValidationError that does not wrap a sentinel is still a client
		// error.
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return "An unexpected error occurred"
	}

	// Field-level validation errors carry a client-safe field and message;
	// surface those instead of a generic phrase.
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		if validationErr.Field == "" {
			return validationErr.Message
		}
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
	}

	// Map specific error types to user-friendly messages
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized operation"

	// Authorization errors
	case errors.Is(err, service.ErrEnrollmentNotOwned):
		return "You do not own this enrollment"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrProgramNotFound):
		return "Program not found"

	case errors.Is(err, store.ErrEnrollmentNotFound):
		return "Enrollment not found"

	case errors.Is(err, store.ErrDailyLogNotFound):
		return "Daily log not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, service.ErrNoActiveEnrollment):
		return "No active enrollment"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidDuration):
		return "Invalid program duration"

	case errors.Is(err, domain.ErrOutOfRangeDay):
		return "Day is outside the program range"

	case errors.Is(err, domain.ErrEmptyItemID):
		return "Item ID is required"

	case errors.Is(err, domain.ErrInvalidEffortLevel):
		return "Invalid effort level"

	case errors.Is(err, progress.ErrInvalidMonth):
		return "Invalid month"

	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Default case for unknown errors
	default:
		// Store and service wrappers carry a short operator-written summary
		// that is safe to show; raw driver errors stay in the logs only.
		var storeErr *store.StoreError
		if errors.As(err, &storeErr) {
			return fmt.Sprintf("Operation failed: %s", storeErr.Message)
		}
		var serviceErr *service.ServiceError
		if errors.As(err, &serviceErr) {
			return fmt.Sprintf("Operation failed: %s", serviceErr.Message)
		}
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and writes the sanitized
// error response, logging the full error details. An empty messageOverride
// uses the message derived from the error type; a non-empty one replaces it,
// which handlers use to keep generic 500s operation-specific.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, messageOverride string) {
	statusCode := MapErrorToStatusCode(err)

	message := messageOverride
	if message == "" {
		message = GetSafeErrorMessage(err)
	}

	// Rejected tokens and ownership violations log at WARN so probing shows
	// up without trawling debug output.
	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		shared.RespondWithErrorAndLog(w, r, statusCode, message, err, shared.WithElevatedLogLevel())
		return
	}

	shared.RespondWithErrorAndLog(w, r, statusCode, message, err)
}

// HandleValidationError writes a 400 response with a sanitized validation
// message, logging the full error details.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	// Domain validation errors already carry client-safe field and message.
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		if validationErr.Field == "" {
			return validationErr.Message
		}
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
	}

	errMsg := err.Error()

	// Check if this is likely a validation error message
	if strings.Contains(errMsg, "Field validation") {
		// Extract the field name and validation tag
		// Example format: "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			// Further split to get just the field validation part
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				// Create a cleaner error message
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gt":
		return "must be greater"
	default:
		return "validation failed"
	}
}
