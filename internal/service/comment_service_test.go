package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/bloggy-api/internal/domain"
	"github.com/phrazzld/bloggy-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type commentFixture struct {
	posts    *MockPostStore
	comments *MockCommentStore
	sql      sqlmock.Sqlmock
	svc      CommentService
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	db, sqlMock := newTxDB(t)
	f := &commentFixture{
		posts:    &MockPostStore{},
		comments: &MockCommentStore{},
		sql:      sqlMock,
	}
	svc, err := NewCommentService(db, f.posts, f.comments, nil)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func TestNewCommentService_NilDependencies(t *testing.T) {
	db, _ := newTxDB(t)

	_, err := NewCommentService(nil, &MockPostStore{}, &MockCommentStore{}, nil)
	assert.ErrorIs(t, err, ErrNilDependency)
	_, err = NewCommentService(db, nil, &MockCommentStore{}, nil)
	assert.ErrorIs(t, err, ErrNilDependency)
	_, err = NewCommentService(db, &MockPostStore{}, nil, nil)
	assert.ErrorIs(t, err, ErrNilDependency)
}

func TestCommentService_ListComments(t *testing.T) {
	ctx := context.Background()

	t.Run("post exists", func(t *testing.T) {
		f := newCommentFixture(t)
		post := mustPost(t, "hello")
		comments := []*domain.Comment{mustComment(t, post.ID, "ann"), mustComment(t, post.ID, "bob")}
		f.posts.On("GetByID", ctx, post.ID).Return(post, nil)
		f.comments.On("ListByPost", ctx, post.ID).Return(comments, nil)

		got, err := f.svc.ListComments(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, comments, got)
	})

	t.Run("post missing", func(t *testing.T) {
		f := newCommentFixture(t)
		id := uuid.New()
		f.posts.On("GetByID", ctx, id).Return(nil, store.ErrPostNotFound)

		_, err := f.svc.ListComments(ctx, id)
		assert.ErrorIs(t, err, store.ErrPostNotFound)
		f.comments.AssertNotCalled(t, "ListByPost", mock.Anything, mock.Anything)
	})
}

func TestCommentService_GetComment(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()

	tests := []struct {
		name    string
		postID  uuid.UUID
		wantErr error
	}{
		{"same post", postID, nil},
		{"other post", uuid.New(), store.ErrCommentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCommentFixture(t)
			comment := mustComment(t, postID, "ann")
			f.comments.On("GetByID", ctx, comment.ID).Return(comment, nil)

			got, err := f.svc.GetComment(ctx, tt.postID, comment.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, comment, got)
		})
	}
}

func TestCommentService_FindComment(t *testing.T) {
	ctx := context.Background()

	t.Run("found on any post", func(t *testing.T) {
		f := newCommentFixture(t)
		comment := mustComment(t, uuid.New(), "ann")
		f.comments.On("GetByID", ctx, comment.ID).Return(comment, nil)

		got, err := f.svc.FindComment(ctx, comment.ID)
		require.NoError(t, err)
		assert.Equal(t, comment, got)
	})

	t.Run("missing", func(t *testing.T) {
		f := newCommentFixture(t)
		id := uuid.New()
		f.comments.On("GetByID", ctx, id).Return(nil, store.ErrCommentNotFound)

		_, err := f.svc.FindComment(ctx, id)
		assert.ErrorIs(t, err, store.ErrCommentNotFound)
	})
}

func TestCommentService_CreateComment(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()

	tests := []struct {
		name     string
		params   CreateCommentParams
		storeErr error
		wantErr  error
		stored   bool
	}{
		{
			name:   "valid",
			params: CreateCommentParams{Author: "ann", Email: "ann@example.com", Content: "Hi"},
			stored: true,
		},
		{
			name:    "missing content",
			params:  CreateCommentParams{Author: "ann"},
			wantErr: domain.ErrEmptyCommentContent,
		},
		{
			name:    "missing author",
			params:  CreateCommentParams{Content: "Hi"},
			wantErr: domain.ErrEmptyCommentAuthor,
		},
		{
			name:     "post gone",
			params:   CreateCommentParams{Author: "ann", Content: "Hi"},
			storeErr: store.ErrPostNotFound,
			wantErr:  store.ErrPostNotFound,
			stored:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCommentFixture(t)
			if tt.stored {
				f.comments.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
					return c.PostID == postID && c.Author == tt.params.Author
				})).Return(tt.storeErr)
			}

			comment, err := f.svc.CreateComment(ctx, postID, tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, comment)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.params.Email, comment.Email)
			}
			if !tt.stored {
				f.comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestCommentService_UpdateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("omitted attributes unchanged", func(t *testing.T) {
		f := newCommentFixture(t)
		post := mustPost(t, "hello")
		comment := mustComment(t, post.ID, "ann")
		content := "Edited"

		f.sql.ExpectBegin()
		f.sql.ExpectCommit()
		f.comments.On("GetByID", mock.Anything, comment.ID).Return(comment, nil)
		f.comments.On("Update", mock.Anything, mock.Anything).Return(nil)

		got, err := f.svc.UpdateComment(ctx, post.ID, comment.ID, domain.CommentChanges{Content: &content})
		require.NoError(t, err)
		assert.Equal(t, "Edited", got.Content)
		assert.Equal(t, "ann", got.Author)
		assert.Equal(t, "ann@example.com", got.Email)
	})

	t.Run("comment of another post", func(t *testing.T) {
		f := newCommentFixture(t)
		comment := mustComment(t, uuid.New(), "ann")

		f.sql.ExpectBegin()
		f.sql.ExpectRollback()
		f.comments.On("GetByID", mock.Anything, comment.ID).Return(comment, nil)

		_, err := f.svc.UpdateComment(ctx, uuid.New(), comment.ID, domain.CommentChanges{})
		assert.ErrorIs(t, err, store.ErrCommentNotFound)
		f.comments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("blank author rejected", func(t *testing.T) {
		f := newCommentFixture(t)
		comment := mustComment(t, uuid.New(), "ann")
		blank := "  "

		f.sql.ExpectBegin()
		f.sql.ExpectRollback()
		f.comments.On("GetByID", mock.Anything, comment.ID).Return(comment, nil)

		_, err := f.svc.UpdateComment(ctx, comment.PostID, comment.ID, domain.CommentChanges{Author: &blank})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, "ann", comment.Author)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes", func(t *testing.T) {
		f := newCommentFixture(t)
		comment := mustComment(t, uuid.New(), "ann")

		f.sql.ExpectBegin()
		f.sql.ExpectCommit()
		f.comments.On("GetByID", mock.Anything, comment.ID).Return(comment, nil)
		f.comments.On("Delete", mock.Anything, comment.ID).Return(nil)

		require.NoError(t, f.svc.DeleteComment(ctx, comment.PostID, comment.ID))
		f.comments.AssertExpectations(t)
	})

	t.Run("missing", func(t *testing.T) {
		f := newCommentFixture(t)
		id := uuid.New()

		f.sql.ExpectBegin()
		f.sql.ExpectRollback()
		f.comments.On("GetByID", mock.Anything, id).Return(nil, store.ErrCommentNotFound)

		err := f.svc.DeleteComment(ctx, uuid.New(), id)
		assert.ErrorIs(t, err, store.ErrNotFound)
		f.comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
