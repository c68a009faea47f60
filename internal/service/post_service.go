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

// PostDetail is a post together with its tags and comments, each in creation
// order.
type PostDetail struct {
	Post     *domain.Post
	Tags     []*domain.Tag
	Comments []*domain.Comment
}

// CreatePostParams holds the attributes of a new post.
type CreatePostParams struct {
	Slug    string
	Title   string
	Content string
}

// PostService defines the post use cases.
type PostService interface {
	// ListPosts returns every post with its relations, in creation order.
	ListPosts(ctx context.Context) ([]*PostDetail, error)

	// GetPost returns one post with its relations.
	// Returns an error matching store.ErrPostNotFound if it does not exist.
	GetPost(ctx context.Context, id uuid.UUID) (*PostDetail, error)

	// CreatePost validates and saves a new post.
	CreatePost(ctx context.Context, params CreatePostParams) (*PostDetail, error)

	// UpdatePost applies a partial update. Nil fields in changes are ignored.
	UpdatePost(ctx context.Context, id uuid.UUID, changes domain.PostChanges) (*PostDetail, error)

	// DeletePost removes a post along with its comments and tags.
	DeletePost(ctx context.Context, id uuid.UUID) error
}

type postServiceImpl struct {
	db       store.TxBeginner
	posts    store.PostStore
	tags     store.TagStore
	comments store.CommentStore
	logger   *slog.Logger
}

var _ PostService = (*postServiceImpl)(nil)

// NewPostService creates a PostService. db is used to open transactions for
// updates; the stores are rebound to each transaction with WithTx.
func NewPostService(
	db store.TxBeginner,
	posts store.PostStore,
	tags store.TagStore,
	comments store.CommentStore,
	logger *slog.Logger,
) (PostService, error) {
	if db == nil {
		return nil, nilDependency("post", "db")
	}
	if posts == nil {
		return nil, nilDependency("post", "posts")
	}
	if tags == nil {
		return nil, nilDependency("post", "tags")
	}
	if comments == nil {
		return nil, nilDependency("post", "comments")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &postServiceImpl{
		db:       db,
		posts:    posts,
		tags:     tags,
		comments: comments,
		logger:   logger.With(slog.String("component", "post_service")),
	}, nil
}

func (s *postServiceImpl) fail(ctx context.Context, op string, err error) error {
	logFailure(logger.FromContextOrDefault(ctx, s.logger), op, err)
	return NewServiceError("post", op, err)
}

// ListPosts implements PostService.
func (s *postServiceImpl) ListPosts(ctx context.Context) ([]*PostDetail, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list", err)
	}

	details := make([]*PostDetail, 0, len(posts))
	for _, post := range posts {
		detail, err := loadDetail(ctx, s.tags, s.comments, post)
		if err != nil {
			return nil, s.fail(ctx, "list", err)
		}
		details = append(details, detail)
	}
	return details, nil
}

// GetPost implements PostService.
func (s *postServiceImpl) GetPost(ctx context.Context, id uuid.UUID) (*PostDetail, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get", err)
	}

	detail, err := loadDetail(ctx, s.tags, s.comments, post)
	if err != nil {
		return nil, s.fail(ctx, "get", err)
	}
	return detail, nil
}

// CreatePost implements PostService.
func (s *postServiceImpl) CreatePost(
	ctx context.Context,
	params CreatePostParams,
) (*PostDetail, error) {
	post, err := domain.NewPost(params.Slug, params.Title, params.Content)
	if err != nil {
		return nil, s.fail(ctx, "create", err)
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, s.fail(ctx, "create", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("post created",
		slog.String("post_id", post.ID.String()),
		slog.String("slug", post.Slug))

	return &PostDetail{
		Post:     post,
		Tags:     []*domain.Tag{},
		Comments: []*domain.Comment{},
	}, nil
}

// UpdatePost implements PostService.
func (s *postServiceImpl) UpdatePost(
	ctx context.Context,
	id uuid.UUID,
	changes domain.PostChanges,
) (*PostDetail, error) {
	var detail *PostDetail

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		posts := s.posts.WithTx(tx)

		post, err := posts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := post.Apply(changes); err != nil {
			return err
		}
		if err := posts.Update(ctx, post); err != nil {
			return err
		}

		detail, err = loadDetail(ctx, s.tags.WithTx(tx), s.comments.WithTx(tx), post)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "update", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("post updated",
		slog.String("post_id", id.String()))
	return detail, nil
}

// DeletePost implements PostService.
func (s *postServiceImpl) DeletePost(ctx context.Context, id uuid.UUID) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return s.fail(ctx, "delete", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("post deleted",
		slog.String("post_id", id.String()))
	return nil
}

func loadDetail(
	ctx context.Context,
	tags store.TagStore,
	comments store.CommentStore,
	post *domain.Post,
) (*PostDetail, error) {
	postTags, err := tags.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	postComments, err := comments.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, Tags: postTags, Comments: postComments}, nil
}
