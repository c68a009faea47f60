package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/bloggy-api/internal/api/shared"
	"github.com/phrazzld/bloggy-api/internal/jsonapi"
	"github.com/phrazzld/bloggy-api/internal/platform/logger"
	"github.com/phrazzld/bloggy-api/internal/service"
)

// PostHandler serves post documents. The same handler type backs the public
// and the admin API; only the base URL differs.
type PostHandler struct {
	posts     service.PostService
	presenter *jsonapi.Presenter
	baseURL   BaseURLFunc
	logger    *slog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	posts service.PostService,
	presenter *jsonapi.Presenter,
	baseURL BaseURLFunc,
	logger *slog.Logger,
) *PostHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PostHandler")
	}

	return &PostHandler{
		posts:     posts,
		presenter: presenter,
		baseURL:   baseURL,
		logger:    logger.With(slog.String("component", "post_handler")),
	}
}

// ListPosts handles GET /posts.
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	details, err := h.posts.ListPosts(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list posts")
		return
	}

	writeDocument(w, r, h.presenter, h.baseURL(r), http.StatusOK,
		jsonapi.Many(typePosts, postRecords(details)))
}

// GetPost handles GET /posts/{id}.
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	detail, ok := h.loadPost(w, r, "id")
	if !ok {
		return
	}

	writeDocument(w, r, h.presenter, h.baseURL(r), http.StatusOK, jsonapi.One(postRecord{detail: detail}))
}

// ListPostTags handles GET /posts/{id}/tags, the related link of a post's
// tags relationship.
func (h *PostHandler) ListPostTags(w http.ResponseWriter, r *http.Request) {
	detail, ok := h.loadPost(w, r, "id")
	if !ok {
		return
	}

	base := h.baseURL(r)
	writeDocument(w, r, h.presenter, base, http.StatusOK,
		jsonapi.Many(typeTags, tagRecords(detail.Tags)),
		jsonapi.WithSelfLink(relatedURL(base, detail, relTags)))
}

// ListPostComments handles GET /posts/{id}/comments, the related link of a
// post's comments relationship.
func (h *PostHandler) ListPostComments(w http.ResponseWriter, r *http.Request) {
	detail, ok := h.loadPost(w, r, "id")
	if !ok {
		return
	}

	base := h.baseURL(r)
	writeDocument(w, r, h.presenter, base, http.StatusOK,
		jsonapi.Many(typeComments, commentRecords(detail.Comments)),
		jsonapi.WithSelfLink(relatedURL(base, detail, relComments)))
}

// GetPostRelationship handles GET /posts/{id}/relationships/{name}.
func (h *PostHandler) GetPostRelationship(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	name := chi.URLParam(r, "name")
	if name != relTags && name != relComments {
		log.Debug("unknown relationship requested", slog.String("relationship", name))
		shared.RespondWithError(w, r, http.StatusNotFound, "Relationship not found")
		return
	}

	detail, ok := h.loadPost(w, r, "id")
	if !ok {
		return
	}

	doc, err := h.presenter.PresentRelationship(h.baseURL(r), postRecord{detail: detail}, name)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to render document", err)
		return
	}
	shared.RespondWithDocument(w, r, http.StatusOK, doc)
}

// CreatePost handles POST /admin/posts.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreatePostRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	params, err := req.Params()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	detail, err := h.posts.CreatePost(r.Context(), params)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create post")
		return
	}

	log.Info("post created",
		slog.String("post_id", detail.Post.ID.String()),
		slog.String("admin", adminSubject(r)))
	writeDocument(w, r, h.presenter, h.baseURL(r), http.StatusCreated, jsonapi.One(postRecord{detail: detail}))
}

// UpdatePost handles PATCH /admin/posts/{id}.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdatePostRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	changes, err := req.Changes(id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	detail, err := h.posts.UpdatePost(r.Context(), id, changes)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update post")
		return
	}

	log.Info("post updated",
		slog.String("post_id", id.String()),
		slog.String("admin", adminSubject(r)))
	writeDocument(w, r, h.presenter, h.baseURL(r), http.StatusOK, jsonapi.One(postRecord{detail: detail}))
}

// DeletePost handles DELETE /admin/posts/{id}.
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.posts.DeletePost(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete post")
		return
	}

	log.Info("post deleted",
		slog.String("post_id", id.String()),
		slog.String("admin", adminSubject(r)))
	writeMeta(w, r, h.presenter)
}

// loadPost fetches the post named by the path parameter param. It writes
// the error response and returns false on failure.
func (h *PostHandler) loadPost(w http.ResponseWriter, r *http.Request, param string) (*service.PostDetail, bool) {
	id, err := getPathUUID(r, param)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}

	detail, err := h.posts.GetPost(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get post")
		return nil, false
	}
	return detail, true
}

func relatedURL(base string, detail *service.PostDetail, name string) string {
	return base + "/" + typePosts + "/" + detail.Post.ID.String() + "/" + name
}
