package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/bloggy-api/internal/config"
)

// ParseLevel maps a configured level name to a slog.Level. The second
// result is false for unknown names, in which case info is returned.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Setup creates the application's JSON logger on stdout and installs it as
// the slog default.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	return SetupWithWriter(cfg, os.Stdout)
}

// SetupWithWriter is Setup with an explicit destination.
func SetupWithWriter(cfg config.ServerConfig, w io.Writer) (*slog.Logger, error) {
	level, ok := ParseLevel(cfg.LogLevel)

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if !ok {
		logger.Warn("invalid log level configured, using default level",
			slog.String("configured_level", cfg.LogLevel),
			slog.String("default_level", "info"))
	}

	return logger, nil
}
