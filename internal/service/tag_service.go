package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/bloggy-api/internal/domain"
	"github.com/phrazzld/bloggy-api/internal/platform/logger"
	"github.com/phrazzld/bloggy-api/internal/store"
)

// CreateTagParams holds the attributes of a new tag.
type CreateTagParams struct {
	Slug string
	Name string
}

// TagService defines the tag use cases, scoped to a post.
type TagService interface {
	ListTags(ctx context.Context, postID uuid.UUID) ([]*domain.Tag, error)
	CreateTag(ctx context.Context, postID uuid.UUID, params CreateTagParams) (*domain.Tag, error)
	DeleteTag(ctx context.Context, postID, tagID uuid.UUID) error
}

type tagServiceImpl struct {
	db     store.TxBeginner
	posts  store.PostStore
	tags   store.TagStore
	logger *slog.Logger
}

var _ TagService = (*tagServiceImpl)(nil)

// NewTagService creates a TagService.
func NewTagService(
	db store.TxBeginner,
	posts store.PostStore,
	tags store.TagStore,
	logger *slog.Logger,
) (TagService, error) {
	if db == nil {
		return nil, nilDependency("tag", "db")
	}
	if posts == nil {
		return nil, nilDependency("tag", "posts")
	}
	if tags == nil {
		return nil, nilDependency("tag", "tags")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &tagServiceImpl{
		db:     db,
		posts:  posts,
		tags:   tags,
		logger: logger.With(slog.String("component", "tag_service")),
	}, nil
}

func (s *tagServiceImpl) fail(ctx context.Context, op string, err error) error {
	logFailure(logger.FromContextOrDefault(ctx, s.logger), op, err)
	return NewServiceError("tag", op, err)
}

// ListTags implements TagService.
func (s *tagServiceImpl) ListTags(ctx context.Context, postID uuid.UUID) ([]*domain.Tag, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, s.fail(ctx, "list", err)
	}

	tags, err := s.tags.ListByPost(ctx, postID)
	if err != nil {
		return nil, s.fail(ctx, "list", err)
	}
	return tags, nil
}

// CreateTag implements TagService.
func (s *tagServiceImpl) CreateTag(
	ctx context.Context,
	postID uuid.UUID,
	params CreateTagParams,
) (*domain.Tag, error) {
	tag, err := domain.NewTag(postID, params.Slug, params.Name)
	if err != nil {
		return nil, s.fail(ctx, "create", err)
	}

	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, s.fail(ctx, "create", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("tag created",
		slog.String("post_id", postID.String()),
		slog.String("tag_id", tag.ID.String()),
		slog.String("slug", tag.Slug))
	return tag, nil
}

// DeleteTag implements TagService. A tag attached to another post is
// reported as store.ErrTagNotFound.
func (s *tagServiceImpl) DeleteTag(ctx context.Context, postID, tagID uuid.UUID) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		tags := s.tags.WithTx(tx)

		tag, err := tags.GetByID(ctx, tagID)
		if err != nil {
			return err
		}
		if tag.PostID != postID {
			return store.ErrTagNotFound
		}
		return tags.Delete(ctx, tagID)
	})
	if err != nil {
		return s.fail(ctx, "delete", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("tag deleted",
		slog.String("post_id", postID.String()),
		slog.String("tag_id", tagID.String()))
	return nil
}
