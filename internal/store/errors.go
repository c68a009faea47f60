package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or when the database rejects it on a check, not-null or
	// foreign-key constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")

	ErrPostNotFound    = fmt.Errorf("%w: post", ErrNotFound)
	ErrCommentNotFound = fmt.Errorf("%w: comment", ErrNotFound)
	ErrTagNotFound     = fmt.Errorf("%w: tag", ErrNotFound)

	// ErrSlugExists indicates that another post already uses the slug.
	ErrSlugExists = fmt.Errorf("%w: post slug", ErrDuplicate)

	// ErrTagSlugExists indicates that the post already has a tag with the slug.
	ErrTagSlugExists = fmt.Errorf("%w: tag slug", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a store-specific error with the entity and operation that
// failed.
type StoreError struct {
	Entity    string // e.g. "post", "tag"
	Operation string // e.g. "create", "update"
	Message   string
	Err       error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
