package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or request payload fails
	// validation. Field-level failures are reported as *ValidationError,
	// which matches ErrValidation with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrTypeMismatch is returned when a payload names a resource type or id
	// that disagrees with the endpoint it was sent to.
	ErrTypeMismatch = errors.New("resource type mismatch")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field wrapping err.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Message)
}

// Unwrap returns the field-specific cause.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports ErrValidation as a match so callers can branch on the kind.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
