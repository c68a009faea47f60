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

// PostgresTagStore implements store.TagStore.
type PostgresTagStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTagStore creates a TagStore on db.
func NewPostgresTagStore(db store.DBTX, logger *slog.Logger) *PostgresTagStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTagStore{
		db:     db,
		logger: logger.With(slog.String("component", "tag_store")),
	}
}

var _ store.TagStore = (*PostgresTagStore)(nil)

const tagColumns = `id, post_id, slug, name, created_at, updated_at`

func scanTag(row interface{ Scan(...any) error }) (*domain.Tag, error) {
	var t domain.Tag
	if err := row.Scan(&t.ID, &t.PostID, &t.Slug, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create implements store.TagStore.
func (s *PostgresTagStore) Create(ctx context.Context, tag *domain.Tag) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tag.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, post_id, slug, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		tag.ID, tag.PostID, tag.Slug, tag.Name, tag.CreatedAt, tag.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrTagSlugExists) || errors.Is(mapped, store.ErrPostNotFound) {
			log.Debug("tag rejected",
				slog.String("post_id", tag.PostID.String()),
				slog.String("slug", tag.Slug))
			return mapped
		}
		log.Error("failed to create tag",
			slog.String("error", err.Error()),
			slog.String("tag_id", tag.ID.String()))
		return store.NewStoreError("tag", "create", "insert failed", mapped)
	}

	log.Info("tag created",
		slog.String("tag_id", tag.ID.String()),
		slog.String("post_id", tag.PostID.String()))
	return nil
}

// GetByID implements store.TagStore.
func (s *PostgresTagStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	t, err := scanTag(s.db.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM tags WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTagNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get tag",
			slog.String("error", err.Error()),
			slog.String("tag_id", id.String()))
		return nil, store.NewStoreError("tag", "get", "query failed", MapError(err))
	}
	return t, nil
}

// ListByPost implements store.TagStore.
func (s *PostgresTagStore) ListByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE post_id = $1 ORDER BY created_at, id`, postID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tags",
			slog.String("error", err.Error()),
			slog.String("post_id", postID.String()))
		return nil, store.NewStoreError("tag", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tags := make([]*domain.Tag, 0)
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, wrapScanErr("tag", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("tag", "list", "row iteration failed", err)
	}
	return tags, nil
}

// Delete implements store.TagStore.
func (s *PostgresTagStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete tag",
			slog.String("error", err.Error()),
			slog.String("tag_id", id.String()))
		return store.NewStoreError("tag", "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrTagNotFound); err != nil {
		return err
	}

	log.Info("tag deleted", slog.String("tag_id", id.String()))
	return nil
}

// WithTx implements store.TagStore.
func (s *PostgresTagStore) WithTx(tx *sql.Tx) store.TagStore {
	return &PostgresTagStore{db: tx, logger: s.logger}
}
