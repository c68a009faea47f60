package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// newServeCmd returns the command that runs the HTTP API until SIGINT or
// SIGTERM.
func newServeCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAppConfig(*configFile)
			if err != nil {
				return err
			}

			logger, err := setupAppLogger(cfg)
			if err != nil {
				return err
			}
			logAppConfig(cfg, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := setupAppDatabase(ctx, cfg.Database, logger)
			if err != nil {
				logger.Error("failed to connect to database", "error", err)
				return err
			}

			app, err := newApplication(ctx, cfg, logger, db)
			if err != nil {
				_ = db.Close()
				logger.Error("failed to initialize application", "error", err)
				return err
			}

			return app.Run(ctx)
		},
	}
}
