package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/bloggy-api/internal/config"
)

// loadAppConfig loads the application configuration from the config file
// and environment variables.
func loadAppConfig(configFile string) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logAppConfig logs the loaded configuration without secrets.
func logAppConfig(cfg *config.Config, logger *slog.Logger) {
	logger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("cache_driver", cfg.Cache.Driver))

	logger.Debug("auth configuration",
		slog.String("admin_username", cfg.Auth.AdminUsername),
		slog.Bool("jwt_secret_present", cfg.Auth.JWTSecret != ""),
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))
	if cfg.Server.BaseURL == "" {
		logger.Debug("base url derived from request host")
	}
}
