package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/bloggy-api/internal/jsonapi"
	"github.com/phrazzld/bloggy-api/internal/platform/logger"
	"github.com/phrazzld/bloggy-api/internal/service"
)

// TagHandler handles tag writes of the admin API.
type TagHandler struct {
	tags      service.TagService
	presenter *jsonapi.Presenter
	baseURL   BaseURLFunc
	logger    *slog.Logger
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(
	tags service.TagService,
	presenter *jsonapi.Presenter,
	baseURL BaseURLFunc,
	logger *slog.Logger,
) *TagHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TagHandler")
	}

	return &TagHandler{
		tags:      tags,
		presenter: presenter,
		baseURL:   baseURL,
		logger:    logger.With(slog.String("component", "tag_handler")),
	}
}

// CreateTag handles POST /admin/posts/{post_id}/tags.
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	postID, err := getPathUUID(r, "post_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req CreateTagRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	params, err := req.Params()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tag, err := h.tags.CreateTag(r.Context(), postID, params)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create tag")
		return
	}

	log.Info("tag created",
		slog.String("post_id", postID.String()),
		slog.String("tag_id", tag.ID.String()),
		slog.String("admin", adminSubject(r)))
	writeDocument(w, r, h.presenter, h.baseURL(r), http.StatusCreated, jsonapi.One(tagRecord{tag: tag}))
}

// DeleteTag handles DELETE /admin/posts/{post_id}/tags/{id}.
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	postID, err := getPathUUID(r, "post_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	tagID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.tags.DeleteTag(r.Context(), postID, tagID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete tag")
		return
	}

	log.Info("tag deleted",
		slog.String("post_id", postID.String()),
		slog.String("tag_id", tagID.String()),
		slog.String("admin", adminSubject(r)))
	writeMeta(w, r, h.presenter)
}
