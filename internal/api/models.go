package api

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/bloggy-api/internal/domain"
	"github.com/phrazzld/bloggy-api/internal/service"
)

// Request payloads follow the JSON:API envelope:
//
//	{"data": {"type": "posts", "id": "...", "attributes": {...}}}
//
// Struct tags are checked by shared.ValidateRequest before the envelope's
// type and id are compared with the endpoint.

// CreatePostAttributes holds the attributes of a new post.
type CreatePostAttributes struct {
	Slug    string `json:"slug"    validate:"required,max=255"`
	Title   string `json:"title"   validate:"required,max=255"`
	Content string `json:"content"`
}

// CreatePostData is the resource object of a create post request.
type CreatePostData struct {
	Type       string               `json:"type" validate:"required"`
	ID         string               `json:"id,omitempty"`
	Attributes CreatePostAttributes `json:"attributes"`
}

// CreatePostRequest defines the payload for POST /admin/posts.
type CreatePostRequest struct {
	Data CreatePostData `json:"data"`
}

// Params checks the envelope and returns the service parameters.
func (req *CreatePostRequest) Params() (service.CreatePostParams, error) {
	if err := checkEnvelope(req.Data.Type, typePosts, req.Data.ID, ""); err != nil {
		return service.CreatePostParams{}, err
	}
	a := req.Data.Attributes
	return service.CreatePostParams{Slug: a.Slug, Title: a.Title, Content: a.Content}, nil
}

// UpdatePostAttributes holds a partial post update. Omitted or null
// attributes are left untouched.
type UpdatePostAttributes struct {
	Slug    *string `json:"slug"    validate:"omitempty,max=255"`
	Title   *string `json:"title"   validate:"omitempty,max=255"`
	Content *string `json:"content"`
}

// UpdatePostData is the resource object of an update post request.
type UpdatePostData struct {
	Type       string               `json:"type" validate:"required"`
	ID         string               `json:"id"   validate:"required"`
	Attributes UpdatePostAttributes `json:"attributes"`
}

// UpdatePostRequest defines the payload for PATCH /admin/posts/{id}.
type UpdatePostRequest struct {
	Data UpdatePostData `json:"data"`
}

// Changes checks the envelope against the post id from the path.
func (req *UpdatePostRequest) Changes(id uuid.UUID) (domain.PostChanges, error) {
	if err := checkEnvelope(req.Data.Type, typePosts, req.Data.ID, id.String()); err != nil {
		return domain.PostChanges{}, err
	}
	a := req.Data.Attributes
	return domain.PostChanges{Slug: a.Slug, Title: a.Title, Content: a.Content}, nil
}

// CreateCommentAttributes holds the attributes of a new comment.
type CreateCommentAttributes struct {
	Author  string `json:"author"  validate:"required,max=255"`
	Email   string `json:"email"   validate:"required,email"`
	Website string `json:"website" validate:"required,url"`
	Content string `json:"content" validate:"required"`
}

// CreateCommentData is the resource object of a create comment request.
type CreateCommentData struct {
	Type       string                  `json:"type" validate:"required"`
	ID         string                  `json:"id,omitempty"`
	Attributes CreateCommentAttributes `json:"attributes"`
}

// CreateCommentRequest defines the payload for POST /posts/{post_id}/comments.
type CreateCommentRequest struct {
	Data CreateCommentData `json:"data"`
}

// Params checks the envelope and returns the service parameters.
func (req *CreateCommentRequest) Params() (service.CreateCommentParams, error) {
	if err := checkEnvelope(req.Data.Type, typeComments, req.Data.ID, ""); err != nil {
		return service.CreateCommentParams{}, err
	}
	a := req.Data.Attributes
	return service.CreateCommentParams{
		Author:  a.Author,
		Email:   a.Email,
		Website: a.Website,
		Content: a.Content,
	}, nil
}

// UpdateCommentAttributes holds a partial comment update.
type UpdateCommentAttributes struct {
	Author  *string `json:"author"  validate:"omitempty,max=255"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Website *string `json:"website" validate:"omitempty,url"`
	Content *string `json:"content"`
}

// UpdateCommentData is the resource object of an update comment request.
// The id is optional but must match the path when present.
type UpdateCommentData struct {
	Type       string                  `json:"type" validate:"required"`
	ID         string                  `json:"id,omitempty"`
	Attributes UpdateCommentAttributes `json:"attributes"`
}

// UpdateCommentRequest defines the payload for PATCH|PUT
// /posts/{post_id}/comments/{id}.
type UpdateCommentRequest struct {
	Data UpdateCommentData `json:"data"`
}

// Changes checks the envelope against the comment id from the path.
func (req *UpdateCommentRequest) Changes(id uuid.UUID) (domain.CommentChanges, error) {
	want := ""
	if req.Data.ID != "" {
		want = id.String()
	}
	if err := checkEnvelope(req.Data.Type, typeComments, req.Data.ID, want); err != nil {
		return domain.CommentChanges{}, err
	}
	a := req.Data.Attributes
	return domain.CommentChanges{
		Author:  a.Author,
		Email:   a.Email,
		Website: a.Website,
		Content: a.Content,
	}, nil
}

// CreateTagAttributes holds the attributes of a new tag.
type CreateTagAttributes struct {
	Slug string `json:"slug" validate:"required,max=255"`
	Name string `json:"name" validate:"required,max=255"`
}

// CreateTagData is the resource object of a create tag request.
type CreateTagData struct {
	Type       string              `json:"type" validate:"required"`
	ID         string              `json:"id,omitempty"`
	Attributes CreateTagAttributes `json:"attributes"`
}

// CreateTagRequest defines the payload for POST /admin/posts/{post_id}/tags.
type CreateTagRequest struct {
	Data CreateTagData `json:"data"`
}

// Params checks the envelope and returns the service parameters.
func (req *CreateTagRequest) Params() (service.CreateTagParams, error) {
	if err := checkEnvelope(req.Data.Type, typeTags, req.Data.ID, ""); err != nil {
		return service.CreateTagParams{}, err
	}
	a := req.Data.Attributes
	return service.CreateTagParams{Slug: a.Slug, Name: a.Name}, nil
}

// LoginRequest defines the payload for the admin login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginMeta is the meta member of a successful login response.
type LoginMeta struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MetaDocument is a document carrying only top-level meta, used for login
// and delete responses.
type MetaDocument struct {
	Meta any `json:"meta"`
}

// checkEnvelope compares the payload's type and id with the endpoint. An
// empty wantID accepts any id: clients may propose ids on create, but the
// server always assigns its own.
func checkEnvelope(gotType, wantType, gotID, wantID string) error {
	if gotType != wantType {
		return fmt.Errorf("%w: expected type %q, got %q", domain.ErrTypeMismatch, wantType, gotType)
	}
	if wantID != "" && gotID != wantID {
		return fmt.Errorf("%w: data.id does not match the resource in the path", domain.ErrTypeMismatch)
	}
	return nil
}
