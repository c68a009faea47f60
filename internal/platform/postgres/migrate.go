package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

// MigrationTableName is the table goose uses to track applied migrations.
const MigrationTableName = "schema_migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// MigrationCommands lists the commands accepted by Migrate.
var MigrationCommands = []string{"up", "down", "reset", "status", "version"}

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// gooseLogger forwards goose output to slog. Fatalf does not exit; the
// error is returned to the caller instead.
type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Migrate runs a goose command against db using the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "migrations"), slog.String("command", command))

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{logger: log})
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, migrationsDir)
	case "down":
		err = goose.DownContext(ctx, db, migrationsDir)
	case "reset":
		err = goose.ResetContext(ctx, db, migrationsDir)
	case "status":
		err = goose.StatusContext(ctx, db, migrationsDir)
	case "version":
		err = goose.VersionContext(ctx, db, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command: %s (expected one of %v)", command, MigrationCommands)
	}
	if err != nil {
		log.Error("migration command failed", slog.String("error", err.Error()))
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	log.Info("migration command completed")
	return nil
}

// MigrationFiles returns the names of the embedded migration files in order.
func MigrationFiles() ([]string, error) {
	entries, err := migrationsFS.ReadDir(migrationsDir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
