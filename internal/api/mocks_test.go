package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/bloggy-api/internal/config"
	"github.com/phrazzld/bloggy-api/internal/domain"
	"github.com/phrazzld/bloggy-api/internal/jsonapi"
	"github.com/phrazzld/bloggy-api/internal/service"
	"github.com/phrazzld/bloggy-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://blog.test"

var errNotImplemented = errors.New("not implemented")

type mockPostService struct {
	ListPostsFn  func(ctx context.Context) ([]*service.PostDetail, error)
	GetPostFn    func(ctx context.Context, id uuid.UUID) (*service.PostDetail, error)
	CreatePostFn func(ctx context.Context, params service.CreatePostParams) (*service.PostDetail, error)
	UpdatePostFn func(ctx context.Context, id uuid.UUID, changes domain.PostChanges) (*service.PostDetail, error)
	DeletePostFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPostService) ListPosts(ctx context.Context) ([]*service.PostDetail, error) {
	if m.ListPostsFn == nil {
		return nil, errNotImplemented
	}
	return m.ListPostsFn(ctx)
}

func (m *mockPostService) GetPost(ctx context.Context, id uuid.UUID) (*service.PostDetail, error) {
	if m.GetPostFn == nil {
		return nil, errNotImplemented
	}
	return m.GetPostFn(ctx, id)
}

func (m *mockPostService) CreatePost(
	ctx context.Context,
	params service.CreatePostParams,
) (*service.PostDetail, error) {
	if m.CreatePostFn == nil {
		return nil, errNotImplemented
	}
	return m.CreatePostFn(ctx, params)
}

func (m *mockPostService) UpdatePost(
	ctx context.Context,
	id uuid.UUID,
	changes domain.PostChanges,
) (*service.PostDetail, error) {
	if m.UpdatePostFn == nil {
		return nil, errNotImplemented
	}
	return m.UpdatePostFn(ctx, id, changes)
}

func (m *mockPostService) DeletePost(ctx context.Context, id uuid.UUID) error {
	if m.DeletePostFn == nil {
		return errNotImplemented
	}
	return m.DeletePostFn(ctx, id)
}

type mockCommentService struct {
	ListCommentsFn  func(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)
	GetCommentFn    func(ctx context.Context, postID, commentID uuid.UUID) (*domain.Comment, error)
	FindCommentFn   func(ctx context.Context, commentID uuid.UUID) (*domain.Comment, error)
	CreateCommentFn func(ctx context.Context, postID uuid.UUID, params service.CreateCommentParams) (*domain.Comment, error)
	UpdateCommentFn func(
		ctx context.Context,
		postID, commentID uuid.UUID,
		changes domain.CommentChanges,
	) (*domain.Comment, error)
	DeleteCommentFn func(ctx context.Context, postID, commentID uuid.UUID) error
}

func (m *mockCommentService) ListComments(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	if m.ListCommentsFn == nil {
		return nil, errNotImplemented
	}
	return m.ListCommentsFn(ctx, postID)
}

func (m *mockCommentService) GetComment(ctx context.Context, postID, commentID uuid.UUID) (*domain.Comment, error) {
	if m.GetCommentFn == nil {
		return nil, errNotImplemented
	}
	return m.GetCommentFn(ctx, postID, commentID)
}

func (m *mockCommentService) FindComment(ctx context.Context, commentID uuid.UUID) (*domain.Comment, error) {
	if m.FindCommentFn == nil {
		return nil, errNotImplemented
	}
	return m.FindCommentFn(ctx, commentID)
}

func (m *mockCommentService) CreateComment(
	ctx context.Context,
	postID uuid.UUID,
	params service.CreateCommentParams,
) (*domain.Comment, error) {
	if m.CreateCommentFn == nil {
		return nil, errNotImplemented
	}
	return m.CreateCommentFn(ctx, postID, params)
}

func (m *mockCommentService) UpdateComment(
	ctx context.Context,
	postID, commentID uuid.UUID,
	changes domain.CommentChanges,
) (*domain.Comment, error) {
	if m.UpdateCommentFn == nil {
		return nil, errNotImplemented
	}
	return m.UpdateCommentFn(ctx, postID, commentID, changes)
}

func (m *mockCommentService) DeleteComment(ctx context.Context, postID, commentID uuid.UUID) error {
	if m.DeleteCommentFn == nil {
		return errNotImplemented
	}
	return m.DeleteCommentFn(ctx, postID, commentID)
}

type mockTagService struct {
	ListTagsFn  func(ctx context.Context, postID uuid.UUID) ([]*domain.Tag, error)
	CreateTagFn func(ctx context.Context, postID uuid.UUID, params service.CreateTagParams) (*domain.Tag, error)
	DeleteTagFn func(ctx context.Context, postID, tagID uuid.UUID) error
}

func (m *mockTagService) ListTags(ctx context.Context, postID uuid.UUID) ([]*domain.Tag, error) {
	if m.ListTagsFn == nil {
		return nil, errNotImplemented
	}
	return m.ListTagsFn(ctx, postID)
}

func (m *mockTagService) CreateTag(
	ctx context.Context,
	postID uuid.UUID,
	params service.CreateTagParams,
) (*domain.Tag, error) {
	if m.CreateTagFn == nil {
		return nil, errNotImplemented
	}
	return m.CreateTagFn(ctx, postID, params)
}

func (m *mockTagService) DeleteTag(ctx context.Context, postID, tagID uuid.UUID) error {
	if m.DeleteTagFn == nil {
		return errNotImplemented
	}
	return m.DeleteTagFn(ctx, postID, tagID)
}

type mockLoginService struct {
	LoginFn func(ctx context.Context, username, password string) (*auth.Token, error)
}

func (m *mockLoginService) Login(ctx context.Context, username, password string) (*auth.Token, error) {
	return m.LoginFn(ctx, username, password)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPresenter(t *testing.T) *jsonapi.Presenter {
	t.Helper()
	p, err := NewBlogPresenter(config.MetaConfig{Name: "Bloggy", Description: "test blog"})
	require.NoError(t, err)
	return p
}

func fixedTime() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func testPost(slug string) *domain.Post {
	return &domain.Post{
		ID:        uuid.New(),
		Slug:      slug,
		Title:     strings.ToUpper(slug),
		Content:   "content of " + slug,
		CreatedAt: fixedTime(),
		UpdatedAt: fixedTime(),
	}
}

func testComment(postID uuid.UUID, author string) *domain.Comment {
	return &domain.Comment{
		ID:        uuid.New(),
		PostID:    postID,
		Author:    author,
		Email:     author + "@example.com",
		Content:   "hi from " + author,
		CreatedAt: fixedTime(),
		UpdatedAt: fixedTime(),
	}
}

func testTag(postID uuid.UUID, slug string) *domain.Tag {
	return &domain.Tag{
		ID:        uuid.New(),
		PostID:    postID,
		Slug:      slug,
		Name:      strings.ToUpper(slug),
		CreatedAt: fixedTime(),
		UpdatedAt: fixedTime(),
	}
}

func testDetail(slug string) *service.PostDetail {
	post := testPost(slug)
	return &service.PostDetail{
		Post:     post,
		Tags:     []*domain.Tag{},
		Comments: []*domain.Comment{},
	}
}

// serve routes req through a chi router so URL params resolve.
func serve(pattern string, method string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Method(method, pattern, h)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", jsonapi.MediaType)
	return req
}
