package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/bloggy-api/internal/config"
	"github.com/phrazzld/bloggy-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

// newMigrateCmd returns the "migrate" command with one subcommand per goose
// command bloggy supports.
func newMigrateCmd(configFile *string) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Run and inspect the embedded database migrations.",
	}

	descriptions := map[string]string{
		"up":      "Apply all pending migrations",
		"down":    "Roll back the most recent migration",
		"status":  "Show the status of every migration",
		"version": "Print the current schema version",
		"reset":   "Roll back every migration",
	}

	for _, command := range postgres.MigrationCommands {
		command := command
		migrateCmd.AddCommand(&cobra.Command{
			Use:   command,
			Short: descriptions[command],
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrations(cmd.Context(), *configFile, command)
			},
		})
	}

	return migrateCmd
}

// runMigrations executes a goose command against the configured database.
// Only the database section of the configuration is required.
func runMigrations(ctx context.Context, configFile, command string) error {
	if !isMigrationCommand(command) {
		return fmt.Errorf("unknown migration command %q (expected one of %s)",
			command, strings.Join(postgres.MigrationCommands, ", "))
	}

	dbCfg, err := config.LoadDatabase(configFile)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := setupAppDatabase(ctx, *dbCfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database connection", slog.String("error", err.Error()))
		}
	}()

	return postgres.Migrate(ctx, db, command, logger)
}

func isMigrationCommand(command string) bool {
	for _, c := range postgres.MigrationCommands {
		if c == command {
			return true
		}
	}
	return false
}
