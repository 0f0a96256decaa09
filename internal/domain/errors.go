// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")

	// ErrInvalidDuration is returned when a program duration of zero or
	// fewer days reaches day computation or a completion operation.
	// The operation is rejected before any state changes.
	ErrInvalidDuration = errors.New("program duration must be positive")

	// ErrOutOfRangeDay is returned when a caller-supplied day number
	// falls outside [1, durationDays]. Supplied days are never silently
	// clamped; only the computed effective day is.
	ErrOutOfRangeDay = errors.New("day is outside the program range")
)

// ValidationError carries field-level context for a validation failure.
// It wraps a sentinel (usually ErrValidation) so callers can match with
// errors.Is while still surfacing which field failed.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
