package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/bloggy-api/internal/jsonapi"
	"github.com/phrazzld/bloggy-api/internal/platform/logger"
	"github.com/phrazzld/bloggy-api/internal/service"
)

// CommentHandler handles the comments of a post, mounted under
// /posts/{post_id}/comments.
type CommentHandler struct {
	comments  service.CommentService
	presenter *jsonapi.Presenter
	baseURL   BaseURLFunc
	logger    *slog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	comments service.CommentService,
	presenter *jsonapi.Presenter,
	baseURL BaseURLFunc,
	logger *slog.Logger,
) *CommentHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CommentHandler")
	}

	return &CommentHandler{
		comments:  comments,
		presenter: presenter,
		baseURL:   baseURL,
		logger:    logger.With(slog.String("component", "comment_handler")),
	}
}

// GetComment handles GET /posts/{post_id}/comments/{id}.
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := commentPath(w, r)
	if !ok {
		return
	}

	comment, err := h.comments.GetComment(r.Context(), postID, commentID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get comment")
		return
	}

	base := h.baseURL(r)
	writeDocument(w, r, h.presenter, base, http.StatusOK, jsonapi.One(commentRecord{comment: comment}),
		jsonapi.WithSelfLink(commentURL(base, postID, commentID)))
}

// GetCommentByID handles GET /comments/{id}, the canonical URL every
// comment resource links to.
func (h *CommentHandler) GetCommentByID(w http.ResponseWriter, r *http.Request) {
	commentID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	comment, err := h.comments.FindComment(r.Context(), commentID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get comment")
		return
	}

	base := h.baseURL(r)
	writeDocument(w, r, h.presenter, base, http.StatusOK, jsonapi.One(commentRecord{comment: comment}),
		jsonapi.WithSelfLink(base+"/"+typeComments+"/"+commentID.String()))
}

// CreateComment handles POST /posts/{post_id}/comments.
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	postID, err := getPathUUID(r, "post_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req CreateCommentRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	params, err := req.Params()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	comment, err := h.comments.CreateComment(r.Context(), postID, params)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create comment")
		return
	}

	log.Info("comment created",
		slog.String("post_id", postID.String()),
		slog.String("comment_id", comment.ID.String()))

	base := h.baseURL(r)
	writeDocument(w, r, h.presenter, base, http.StatusCreated, jsonapi.One(commentRecord{comment: comment}),
		jsonapi.WithSelfLink(commentURL(base, postID, comment.ID)))
}

// UpdateComment handles PATCH and PUT /posts/{post_id}/comments/{id}. Both
// verbs apply a partial update.
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	postID, commentID, ok := commentPath(w, r)
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	changes, err := req.Changes(commentID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	comment, err := h.comments.UpdateComment(r.Context(), postID, commentID, changes)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update comment")
		return
	}

	log.Info("comment updated",
		slog.String("post_id", postID.String()),
		slog.String("comment_id", commentID.String()))

	base := h.baseURL(r)
	writeDocument(w, r, h.presenter, base, http.StatusOK, jsonapi.One(commentRecord{comment: comment}),
		jsonapi.WithSelfLink(commentURL(base, postID, commentID)))
}

// DeleteComment handles DELETE /posts/{post_id}/comments/{id}.
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	postID, commentID, ok := commentPath(w, r)
	if !ok {
		return
	}

	if err := h.comments.DeleteComment(r.Context(), postID, commentID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete comment")
		return
	}

	log.Info("comment deleted",
		slog.String("post_id", postID.String()),
		slog.String("comment_id", commentID.String()))
	writeMeta(w, r, h.presenter)
}

func commentPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	postID, err := getPathUUID(r, "post_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return uuid.Nil, uuid.Nil, false
	}
	commentID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return uuid.Nil, uuid.Nil, false
	}
	return postID, commentID, true
}

func commentURL(base string, postID, commentID uuid.UUID) string {
	return base + "/" + typePosts + "/" + postID.String() + "/" + typeComments + "/" + commentID.String()
}
