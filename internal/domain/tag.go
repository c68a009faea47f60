package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tag validation errors
var (
	ErrEmptyTagID     = errors.New("tag ID cannot be empty")
	ErrEmptyTagPostID = errors.New("tag post ID cannot be empty")
	ErrEmptyTagSlug   = errors.New("tag slug cannot be empty")
	ErrEmptyTagName   = errors.New("tag name cannot be empty")
)

// Tag labels a single post. Slug is unique within that post.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTag creates a new Tag on postID.
func NewTag(postID uuid.UUID, slug, name string) (*Tag, error) {
	now := time.Now().UTC()
	tag := &Tag{
		ID:        uuid.New(),
		PostID:    postID,
		Slug:      slug,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := tag.Validate(); err != nil {
		return nil, err
	}

	return tag, nil
}

// Validate checks if the Tag has valid data.
func (t *Tag) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrEmptyTagID)
	}
	if t.PostID == uuid.Nil {
		return NewValidationError("post_id", "is required", ErrEmptyTagPostID)
	}
	if strings.TrimSpace(t.Slug) == "" {
		return NewValidationError("slug", "is required", ErrEmptyTagSlug)
	}
	if strings.TrimSpace(t.Name) == "" {
		return NewValidationError("name", "is required", ErrEmptyTagName)
	}
	return nil
}
