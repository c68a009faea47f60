package api

import (
	"net/http"

	"github.com/phrazzld/bloggy-api/internal/api/shared"
	"github.com/phrazzld/bloggy-api/internal/config"
	"github.com/phrazzld/bloggy-api/internal/domain"
	"github.com/phrazzld/bloggy-api/internal/jsonapi"
	"github.com/phrazzld/bloggy-api/internal/service"
)

// Resource type names.
const (
	typePosts    = "posts"
	typeComments = "comments"
	typeTags     = "tags"
)

// Relationship names declared on posts.
const (
	relTags     = "tags"
	relComments = "comments"
)

// BlogSchema returns the serialization table of the blog's resource types.
func BlogSchema() jsonapi.Schema {
	return jsonapi.Schema{
		typePosts: {
			Attributes: []string{"slug", "title", "content"},
			Relationships: []jsonapi.RelationshipSchema{
				{Name: relTags, Type: typeTags},
				{Name: relComments, Type: typeComments},
			},
		},
		typeComments: {
			Attributes: []string{"author", "email", "website", "content"},
		},
		typeTags: {
			Attributes: []string{"slug", "name"},
		},
	}
}

// BlogMeta returns the document metadata configured for the service.
func BlogMeta(cfg config.MetaConfig) jsonapi.Meta {
	return jsonapi.Meta{
		"name":        cfg.Name,
		"description": cfg.Description,
	}
}

// NewBlogPresenter builds the presenter shared by every handler.
func NewBlogPresenter(cfg config.MetaConfig) (*jsonapi.Presenter, error) {
	return jsonapi.NewPresenter(BlogSchema(), BlogMeta(cfg))
}

type postRecord struct {
	detail *service.PostDetail
}

func (r postRecord) ResourceType() string { return typePosts }
func (r postRecord) ResourceID() string   { return r.detail.Post.ID.String() }

func (r postRecord) Attributes() map[string]any {
	p := r.detail.Post
	return map[string]any{
		"slug":    p.Slug,
		"title":   p.Title,
		"content": p.Content,
	}
}

func (r postRecord) Related(name string) []jsonapi.Record {
	switch name {
	case relTags:
		return tagRecords(r.detail.Tags)
	case relComments:
		return commentRecords(r.detail.Comments)
	default:
		return nil
	}
}

type commentRecord struct {
	comment *domain.Comment
}

func (r commentRecord) ResourceType() string { return typeComments }
func (r commentRecord) ResourceID() string   { return r.comment.ID.String() }

func (r commentRecord) Attributes() map[string]any {
	c := r.comment
	return map[string]any{
		"author":  c.Author,
		"email":   c.Email,
		"website": c.Website,
		"content": c.Content,
	}
}

func (r commentRecord) Related(string) []jsonapi.Record { return nil }

type tagRecord struct {
	tag *domain.Tag
}

func (r tagRecord) ResourceType() string { return typeTags }
func (r tagRecord) ResourceID() string   { return r.tag.ID.String() }

func (r tagRecord) Attributes() map[string]any {
	return map[string]any{
		"slug": r.tag.Slug,
		"name": r.tag.Name,
	}
}

func (r tagRecord) Related(string) []jsonapi.Record { return nil }

func postRecords(details []*service.PostDetail) []jsonapi.Record {
	out := make([]jsonapi.Record, len(details))
	for i, d := range details {
		out[i] = postRecord{detail: d}
	}
	return out
}

func commentRecords(comments []*domain.Comment) []jsonapi.Record {
	out := make([]jsonapi.Record, len(comments))
	for i, c := range comments {
		out[i] = commentRecord{comment: c}
	}
	return out
}

func tagRecords(tags []*domain.Tag) []jsonapi.Record {
	out := make([]jsonapi.Record, len(tags))
	for i, t := range tags {
		out[i] = tagRecord{tag: t}
	}
	return out
}

// writeDocument presents roots against base and writes the document with
// status.
func writeDocument(
	w http.ResponseWriter,
	r *http.Request,
	p *jsonapi.Presenter,
	base string,
	status int,
	roots jsonapi.Roots,
	opts ...jsonapi.PresentOption,
) {
	doc, err := p.Present(base, roots, opts...)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to render document", err)
		return
	}
	shared.RespondWithDocument(w, r, status, doc)
}

// writeMeta writes a document holding only the static metadata.
func writeMeta(w http.ResponseWriter, r *http.Request, p *jsonapi.Presenter) {
	shared.RespondWithDocument(w, r, http.StatusOK, MetaDocument{Meta: p.Meta()})
}

// decodeRequest decodes and validates the body into v. It writes a 400 and
// returns false on failure.
func decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err,
			shared.WithSourcePointer(ValidationPointer(err)))
		return false
	}
	return true
}
