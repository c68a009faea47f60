package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/bloggy-api/internal/domain"
	"github.com/phrazzld/bloggy-api/internal/platform/logger"
	"github.com/phrazzld/bloggy-api/internal/store"
)

// PostgresPostStore implements store.PostStore.
type PostgresPostStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPostStore creates a PostStore on db. A nil logger uses the
// slog default.
func NewPostgresPostStore(db store.DBTX, logger *slog.Logger) *PostgresPostStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPostStore{
		db:     db,
		logger: logger.With(slog.String("component", "post_store")),
	}
}

var _ store.PostStore = (*PostgresPostStore)(nil)

const postColumns = `id, slug, title, content, created_at, updated_at`

// Create implements store.PostStore.
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during create",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (id, slug, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		post.ID, post.Slug, post.Title, post.Content, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrSlugExists) {
			log.Debug("post slug already taken", slog.String("slug", post.Slug))
			return mapped
		}
		log.Error("failed to create post",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return store.NewStoreError("post", "create", "insert failed", mapped)
	}

	log.Info("post created", slog.String("post_id", post.ID.String()))
	return nil
}

// GetByID implements store.PostStore.
func (s *PostgresPostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var p domain.Post
	err := s.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1`, id,
	).Scan(&p.ID, &p.Slug, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("post not found", slog.String("post_id", id.String()))
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to get post",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return nil, store.NewStoreError("post", "get", "query failed", MapError(err))
	}

	return &p, nil
}

// List implements store.PostStore.
func (s *PostgresPostStore) List(ctx context.Context) ([]*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts ORDER BY created_at, id`)
	if err != nil {
		log.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, store.NewStoreError("post", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, wrapScanErr("post", err)
		}
		posts = append(posts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("post", "list", "row iteration failed", err)
	}

	log.Debug("listed posts", slog.Int("count", len(posts)))
	return posts, nil
}

// Update implements store.PostStore.
func (s *PostgresPostStore) Update(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE posts
		SET slug = $1, title = $2, content = $3, updated_at = $4
		WHERE id = $5`,
		post.Slug, post.Title, post.Content, post.UpdatedAt, post.ID,
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrSlugExists) {
			return mapped
		}
		log.Error("failed to update post",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return store.NewStoreError("post", "update", "update failed", mapped)
	}

	if err := CheckRowsAffected(result, store.ErrPostNotFound); err != nil {
		return err
	}

	log.Info("post updated", slog.String("post_id", post.ID.String()))
	return nil
}

// Delete implements store.PostStore. Comments and tags go with the post
// through ON DELETE CASCADE.
func (s *PostgresPostStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete post",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return store.NewStoreError("post", "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrPostNotFound); err != nil {
		return err
	}

	log.Info("post deleted", slog.String("post_id", id.String()))
	return nil
}

// WithTx implements store.PostStore.
func (s *PostgresPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return &PostgresPostStore{db: tx, logger: s.logger}
}

func wrapScanErr(entity string, err error) error {
	return store.NewStoreError(entity, "list", "scan failed", fmt.Errorf("scan: %w", err))
}
