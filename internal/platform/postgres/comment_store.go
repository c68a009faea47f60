package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/bloggy-api/internal/domain"
	"github.com/phrazzld/bloggy-api/internal/platform/logger"
	"github.com/phrazzld/bloggy-api/internal/store"
)

// PostgresCommentStore implements store.CommentStore.
type PostgresCommentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCommentStore creates a CommentStore on db.
func NewPostgresCommentStore(db store.DBTX, logger *slog.Logger) *PostgresCommentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCommentStore{
		db:     db,
		logger: logger.With(slog.String("component", "comment_store")),
	}
}

var _ store.CommentStore = (*PostgresCommentStore)(nil)

const commentColumns = `id, post_id, author, email, website, content, created_at, updated_at`

func scanComment(row interface{ Scan(...any) error }) (*domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(&c.ID, &c.PostID, &c.Author, &c.Email, &c.Website, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create implements store.CommentStore.
func (s *PostgresCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := comment.Validate(); err != nil {
		log.Warn("comment validation failed during create",
			slog.String("error", err.Error()),
			slog.String("comment_id", comment.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (id, post_id, author, email, website, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		comment.ID, comment.PostID, comment.Author, comment.Email, comment.Website,
		comment.Content, comment.CreatedAt, comment.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrPostNotFound) {
			log.Warn("comment references missing post", slog.String("post_id", comment.PostID.String()))
			return mapped
		}
		log.Error("failed to create comment",
			slog.String("error", err.Error()),
			slog.String("comment_id", comment.ID.String()))
		return store.NewStoreError("comment", "create", "insert failed", mapped)
	}

	log.Info("comment created",
		slog.String("comment_id", comment.ID.String()),
		slog.String("post_id", comment.PostID.String()))
	return nil
}

// GetByID implements store.CommentStore.
func (s *PostgresCommentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	c, err := scanComment(s.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCommentNotFound
		}
		log.Error("failed to get comment",
			slog.String("error", err.Error()),
			slog.String("comment_id", id.String()))
		return nil, store.NewStoreError("comment", "get", "query failed", MapError(err))
	}
	return c, nil
}

// ListByPost implements store.CommentStore.
func (s *PostgresCommentStore) ListByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE post_id = $1 ORDER BY created_at, id`, postID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list comments",
			slog.String("error", err.Error()),
			slog.String("post_id", postID.String()))
		return nil, store.NewStoreError("comment", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, wrapScanErr("comment", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("comment", "list", "row iteration failed", err)
	}
	return comments, nil
}

// Update implements store.CommentStore.
func (s *PostgresCommentStore) Update(ctx context.Context, comment *domain.Comment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := comment.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE comments
		SET author = $1, email = $2, website = $3, content = $4, updated_at = $5
		WHERE id = $6`,
		comment.Author, comment.Email, comment.Website, comment.Content, comment.UpdatedAt, comment.ID,
	)
	if err != nil {
		log.Error("failed to update comment",
			slog.String("error", err.Error()),
			slog.String("comment_id", comment.ID.String()))
		return store.NewStoreError("comment", "update", "update failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrCommentNotFound); err != nil {
		return err
	}

	log.Info("comment updated", slog.String("comment_id", comment.ID.String()))
	return nil
}

// Delete implements store.CommentStore.
func (s *PostgresCommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete comment",
			slog.String("error", err.Error()),
			slog.String("comment_id", id.String()))
		return store.NewStoreError("comment", "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrCommentNotFound); err != nil {
		return err
	}

	log.Info("comment deleted", slog.String("comment_id", id.String()))
	return nil
}

// WithTx implements store.CommentStore.
func (s *PostgresCommentStore) WithTx(tx *sql.Tx) store.CommentStore {
	return &PostgresCommentStore{db: tx, logger: s.logger}
}
