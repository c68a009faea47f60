package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/bloggy-api/internal/api"
	"github.com/phrazzld/bloggy-api/internal/config"
	"github.com/phrazzld/bloggy-api/internal/jsonapi"
	"github.com/phrazzld/bloggy-api/internal/platform/cache"
	"github.com/phrazzld/bloggy-api/internal/platform/postgres"
	"github.com/phrazzld/bloggy-api/internal/service"
	"github.com/phrazzld/bloggy-api/internal/service/auth"
	"github.com/phrazzld/bloggy-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config

	logger *slog.Logger
	db     *sql.DB
	cache  cache.Cache

	postStore    store.PostStore
	commentStore store.CommentStore
	tagStore     store.TagStore

	presenter      *jsonapi.Presenter
	jwtService     auth.JWTService
	loginService   auth.LoginService
	postService    service.PostService
	commentService service.CommentService
	tagService     service.TagService
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database connection that
// must be established before application initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if db == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.loginService, err = auth.NewLoginService(cfg.Auth, auth.NewBcryptVerifier(), app.jwtService, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize login service: %w", err)
	}
	logger.Info("admin authentication initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.postStore = postgres.NewPostgresPostStore(db, logger)
	app.commentStore = postgres.NewPostgresCommentStore(db, logger)
	app.tagStore = postgres.NewPostgresTagStore(db, logger)

	app.postService, err = service.NewPostService(db, app.postStore, app.tagStore, app.commentStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create post service: %w", err)
	}
	app.commentService, err = service.NewCommentService(db, app.postStore, app.commentStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment service: %w", err)
	}
	app.tagService, err = service.NewTagService(db, app.postStore, app.tagStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag service: %w", err)
	}

	app.presenter, err = api.NewBlogPresenter(cfg.Meta)
	if err != nil {
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}

	app.cache, err = cache.New(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create response cache: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server and blocks until ctx is cancelled or
// the server fails. Resources are released before it returns.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if closer, ok := app.cache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			app.logger.Error("error closing cache", slog.String("error", err.Error()))
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
