package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/bloggy-api/internal/domain"
)

// TagStore defines persistence for tags.
type TagStore interface {
	// Create saves a new tag.
	// Returns ErrTagSlugExists if the post already has a tag with that slug.
	Create(ctx context.Context, tag *domain.Tag) error

	// GetByID retrieves a tag by its unique ID.
	// Returns ErrTagNotFound if the tag does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error)

	// ListByPost returns the tags of a post in creation order.
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Tag, error)

	// Delete removes a tag. Returns ErrTagNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a TagStore bound to tx.
	WithTx(tx *sql.Tx) TagStore
}
