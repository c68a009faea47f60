package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// startHTTPServer listens on the configured port and serves router until ctx
// is cancelled.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", app.config.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", app.config.Server.Port, err)
	}
	app.logger.Info("Starting server", slog.String("addr", ln.Addr().String()))

	return serveHTTP(ctx, ln, router, app.logger)
}

// serveHTTP serves handler on ln and shuts down gracefully once ctx is done.
// It returns nil after a clean shutdown.
func serveHTTP(ctx context.Context, ln net.Listener, handler http.Handler, logger *slog.Logger) error {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("Server failed", slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
