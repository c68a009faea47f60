package jsonapi

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAttribute is returned when a record does not expose an
	// attribute that its type declares in the schema.
	ErrMissingAttribute = errors.New("missing declared attribute")

	// ErrUnknownType is returned when a record's type has no schema entry.
	ErrUnknownType = errors.New("unknown resource type")

	// ErrUnknownRelationship is returned when a relationship name is not
	// declared for the record's type.
	ErrUnknownRelationship = errors.New("unknown relationship")

	// ErrRelationshipType is returned when a relationship yields a record
	// whose type differs from the declared related type.
	ErrRelationshipType = errors.New("related record has unexpected type")

	// ErrEmptyRoots is returned when single-record roots hold no record,
	// e.g. a zero Roots value.
	ErrEmptyRoots = errors.New("single root holds no record")

	// ErrInvalidSchema is returned by Schema.Validate.
	ErrInvalidSchema = errors.New("invalid schema")
)

// AttributeError identifies the record and attribute that could not be
// serialized. It unwraps to ErrMissingAttribute.
type AttributeError struct {
	Type      string
	ID        string
	Attribute string
}

// Error implements the error interface.
func (e *AttributeError) Error() string {
	return fmt.Sprintf("%s %s: attribute %q: %v", e.Type, e.ID, e.Attribute, ErrMissingAttribute)
}

// Unwrap supports errors.Is(err, ErrMissingAttribute).
func (e *AttributeError) Unwrap() error {
	return ErrMissingAttribute
}
