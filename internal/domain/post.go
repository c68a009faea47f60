package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Post validation errors
var (
	ErrEmptyPostID    = errors.New("post ID cannot be empty")
	ErrEmptyPostSlug  = errors.New("post slug cannot be empty")
	ErrEmptyPostTitle = errors.New("post title cannot be empty")
)

// Post is a blog entry. Slug is unique across posts.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostChanges carries a partial update; nil fields are left untouched.
type PostChanges struct {
	Slug    *string
	Title   *string
	Content *string
}

// NewPost creates a new Post with a fresh ID and timestamps.
// Returns an error if validation fails.
func NewPost(slug, title, content string) (*Post, error) {
	now := time.Now().UTC()
	post := &Post{
		ID:        uuid.New(),
		Slug:      slug,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks if the Post has valid data.
func (p *Post) Validate() error {
	if p.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrEmptyPostID)
	}
	if strings.TrimSpace(p.Slug) == "" {
		return NewValidationError("slug", "is required", ErrEmptyPostSlug)
	}
	if strings.TrimSpace(p.Title) == "" {
		return NewValidationError("title", "is required", ErrEmptyPostTitle)
	}
	return nil
}

// Apply merges changes into the post and re-validates it. The post is left
// unmodified when the result would be invalid.
func (p *Post) Apply(changes PostChanges) error {
	updated := *p
	if changes.Slug != nil {
		updated.Slug = *changes.Slug
	}
	if changes.Title != nil {
		updated.Title = *changes.Title
	}
	if changes.Content != nil {
		updated.Content = *changes.Content
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC()
	*p = updated
	return nil
}
