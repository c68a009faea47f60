package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/bloggy-api/internal/domain"
)

// CommentStore defines persistence for comments.
type CommentStore interface {
	// Create saves a new comment. Returns ErrPostNotFound when the post is gone.
	Create(ctx context.Context, comment *domain.Comment) error

	// GetByID retrieves a comment by its unique ID.
	// Returns ErrCommentNotFound if the comment does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)

	// ListByPost returns the comments of a post in creation order.
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)

	// Update saves changes to an existing comment.
	Update(ctx context.Context, comment *domain.Comment) error

	// Delete removes a comment. Returns ErrCommentNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a CommentStore bound to tx.
	WithTx(tx *sql.Tx) CommentStore
}
