package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/bloggy-api/internal/domain"
	"github.com/phrazzld/bloggy-api/internal/store"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostStore mocks store.PostStore. WithTx returns the same mock so
// expectations apply inside and outside transactions.
type MockPostStore struct {
	mock.Mock
}

func (m *MockPostStore) Create(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*domain.Post)
	return post, args.Error(1)
}

func (m *MockPostStore) List(ctx context.Context) ([]*domain.Post, error) {
	args := m.Called(ctx)
	posts, _ := args.Get(0).([]*domain.Post)
	return posts, args.Error(1)
}

func (m *MockPostStore) Update(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostStore) WithTx(*sql.Tx) store.PostStore {
	return m
}

// MockCommentStore mocks store.CommentStore.
type MockCommentStore struct {
	mock.Mock
}

func (m *MockCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	comment, _ := args.Get(0).(*domain.Comment)
	return comment, args.Error(1)
}

func (m *MockCommentStore) ListByPost(
	ctx context.Context,
	postID uuid.UUID,
) ([]*domain.Comment, error) {
	args := m.Called(ctx, postID)
	comments, _ := args.Get(0).([]*domain.Comment)
	return comments, args.Error(1)
}

func (m *MockCommentStore) Update(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentStore) WithTx(*sql.Tx) store.CommentStore {
	return m
}

// MockTagStore mocks store.TagStore.
type MockTagStore struct {
	mock.Mock
}

func (m *MockTagStore) Create(ctx context.Context, tag *domain.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	args := m.Called(ctx, id)
	tag, _ := args.Get(0).(*domain.Tag)
	return tag, args.Error(1)
}

func (m *MockTagStore) ListByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Tag, error) {
	args := m.Called(ctx, postID)
	tags, _ := args.Get(0).([]*domain.Tag)
	return tags, args.Error(1)
}

func (m *MockTagStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTagStore) WithTx(*sql.Tx) store.TagStore {
	return m
}

// newTxDB returns a sqlmock database for services that open transactions.
// Callers register ExpectBegin/ExpectCommit/ExpectRollback as needed.
func newTxDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, sqlMock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, sqlMock
}

func mustPost(t *testing.T, slug string) *domain.Post {
	t.Helper()
	post, err := domain.NewPost(slug, "Title of "+slug, "content")
	require.NoError(t, err)
	return post
}

func mustComment(t *testing.T, postID uuid.UUID, author string) *domain.Comment {
	t.Helper()
	comment, err := domain.NewComment(postID, author, author+"@example.com", "", "Nice post")
	require.NoError(t, err)
	return comment
}

func mustTag(t *testing.T, postID uuid.UUID, slug string) *domain.Tag {
	t.Helper()
	tag, err := domain.NewTag(postID, slug, slug)
	require.NoError(t, err)
	return tag
}
