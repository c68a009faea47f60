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

// CreateCommentParams holds the attributes of a new comment.
type CreateCommentParams struct {
	Author  string
	Email   string
	Website string
	Content string
}

// CommentService defines the comment use cases. Every operation is scoped to
// a post: a comment that belongs to another post is reported as
// store.ErrCommentNotFound.
type CommentService interface {
	ListComments(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)
	GetComment(ctx context.Context, postID, commentID uuid.UUID) (*domain.Comment, error)
	// FindComment looks a comment up by its own id, whatever post it is on.
	FindComment(ctx context.Context, commentID uuid.UUID) (*domain.Comment, error)
	CreateComment(
		ctx context.Context,
		postID uuid.UUID,
		params CreateCommentParams,
	) (*domain.Comment, error)
	UpdateComment(
		ctx context.Context,
		postID, commentID uuid.UUID,
		changes domain.CommentChanges,
	) (*domain.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID uuid.UUID) error
}

type commentServiceImpl struct {
	db       store.TxBeginner
	posts    store.PostStore
	comments store.CommentStore
	logger   *slog.Logger
}

var _ CommentService = (*commentServiceImpl)(nil)

// NewCommentService creates a CommentService.
func NewCommentService(
	db store.TxBeginner,
	posts store.PostStore,
	comments store.CommentStore,
	logger *slog.Logger,
) (CommentService, error) {
	if db == nil {
		return nil, nilDependency("comment", "db")
	}
	if posts == nil {
		return nil, nilDependency("comment", "posts")
	}
	if comments == nil {
		return nil, nilDependency("comment", "comments")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &commentServiceImpl{
		db:       db,
		posts:    posts,
		comments: comments,
		logger:   logger.With(slog.String("component", "comment_service")),
	}, nil
}

func (s *commentServiceImpl) fail(ctx context.Context, op string, err error) error {
	logFailure(logger.FromContextOrDefault(ctx, s.logger), op, err)
	return NewServiceError("comment", op, err)
}

// ListComments implements CommentService.
func (s *commentServiceImpl) ListComments(
	ctx context.Context,
	postID uuid.UUID,
) ([]*domain.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, s.fail(ctx, "list", err)
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, s.fail(ctx, "list", err)
	}
	return comments, nil
}

// GetComment implements CommentService.
func (s *commentServiceImpl) GetComment(
	ctx context.Context,
	postID, commentID uuid.UUID,
) (*domain.Comment, error) {
	comment, err := commentOfPost(ctx, s.comments, postID, commentID)
	if err != nil {
		return nil, s.fail(ctx, "get", err)
	}
	return comment, nil
}

// FindComment implements CommentService.
func (s *commentServiceImpl) FindComment(
	ctx context.Context,
	commentID uuid.UUID,
) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, s.fail(ctx, "find", err)
	}
	return comment, nil
}

// CreateComment implements CommentService. A missing post surfaces as
// store.ErrPostNotFound from the foreign key.
func (s *commentServiceImpl) CreateComment(
	ctx context.Context,
	postID uuid.UUID,
	params CreateCommentParams,
) (*domain.Comment, error) {
	comment, err := domain.NewComment(
		postID,
		params.Author,
		params.Email,
		params.Website,
		params.Content,
	)
	if err != nil {
		return nil, s.fail(ctx, "create", err)
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, s.fail(ctx, "create", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("comment created",
		slog.String("post_id", postID.String()),
		slog.String("comment_id", comment.ID.String()))
	return comment, nil
}

// UpdateComment implements CommentService.
func (s *commentServiceImpl) UpdateComment(
	ctx context.Context,
	postID, commentID uuid.UUID,
	changes domain.CommentChanges,
) (*domain.Comment, error) {
	var updated *domain.Comment

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		comments := s.comments.WithTx(tx)

		comment, err := commentOfPost(ctx, comments, postID, commentID)
		if err != nil {
			return err
		}
		if err := comment.Apply(changes); err != nil {
			return err
		}
		if err := comments.Update(ctx, comment); err != nil {
			return err
		}
		updated = comment
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "update", err)
	}
	return updated, nil
}

// DeleteComment implements CommentService.
func (s *commentServiceImpl) DeleteComment(ctx context.Context, postID, commentID uuid.UUID) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		comments := s.comments.WithTx(tx)

		if _, err := commentOfPost(ctx, comments, postID, commentID); err != nil {
			return err
		}
		return comments.Delete(ctx, commentID)
	})
	if err != nil {
		return s.fail(ctx, "delete", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("comment deleted",
		slog.String("post_id", postID.String()),
		slog.String("comment_id", commentID.String()))
	return nil
}

func commentOfPost(
	ctx context.Context,
	comments store.CommentStore,
	postID, commentID uuid.UUID,
) (*domain.Comment, error) {
	comment, err := comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, store.ErrCommentNotFound
	}
	return comment, nil
}
