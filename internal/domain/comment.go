package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Comment validation errors
var (
	ErrEmptyCommentID      = errors.New("comment ID cannot be empty")
	ErrEmptyCommentPostID  = errors.New("comment post ID cannot be empty")
	ErrEmptyCommentAuthor  = errors.New("comment author cannot be empty")
	ErrEmptyCommentContent = errors.New("comment content cannot be empty")
)

// Comment is a reader's reply to a post.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	Author    string    `json:"author"`
	Email     string    `json:"email"`
	Website   string    `json:"website"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentChanges carries a partial update; nil fields are left untouched.
type CommentChanges struct {
	Author  *string
	Email   *string
	Website *string
	Content *string
}

// NewComment creates a new Comment on postID with a fresh ID and timestamps.
func NewComment(postID uuid.UUID, author, email, website, content string) (*Comment, error) {
	now := time.Now().UTC()
	comment := &Comment{
		ID:        uuid.New(),
		PostID:    postID,
		Author:    author,
		Email:     email,
		Website:   website,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := comment.Validate(); err != nil {
		return nil, err
	}

	return comment, nil
}

// Validate checks if the Comment has valid data.
func (c *Comment) Validate() error {
	if c.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrEmptyCommentID)
	}
	if c.PostID == uuid.Nil {
		return NewValidationError("post_id", "is required", ErrEmptyCommentPostID)
	}
	if strings.TrimSpace(c.Author) == "" {
		return NewValidationError("author", "is required", ErrEmptyCommentAuthor)
	}
	if strings.TrimSpace(c.Content) == "" {
		return NewValidationError("content", "is required", ErrEmptyCommentContent)
	}
	return nil
}

// Apply merges changes into the comment and re-validates it. The comment is
// left unmodified when the result would be invalid.
func (c *Comment) Apply(changes CommentChanges) error {
	updated := *c
	if changes.Author != nil {
		updated.Author = *changes.Author
	}
	if changes.Email != nil {
		updated.Email = *changes.Email
	}
	if changes.Website != nil {
		updated.Website = *changes.Website
	}
	if changes.Content != nil {
		updated.Content = *changes.Content
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC()
	*c = updated
	return nil
}
