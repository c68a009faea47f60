package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/bloggy-api/internal/domain"
)

// PostStore defines persistence for posts.
type PostStore interface {
	// Create saves a new post.
	// Returns ErrSlugExists if the slug is already taken.
	Create(ctx context.Context, post *domain.Post) error

	// GetByID retrieves a post by its unique ID.
	// Returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// List returns every post in creation order.
	List(ctx context.Context) ([]*domain.Post, error)

	// Update saves changes to slug, title and content of an existing post.
	// Returns ErrPostNotFound or ErrSlugExists.
	Update(ctx context.Context, post *domain.Post) error

	// Delete removes a post together with its comments and tags.
	// Returns ErrPostNotFound if the post does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a PostStore bound to tx.
	WithTx(tx *sql.Tx) PostStore
}
