// Package testdb provides utilities specifically for database testing.
// Tests that need a real PostgreSQL server call GetTestDB, which skips the
// test unless DATABASE_URL or BLOGGY_TEST_DB_URL is set.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/bloggy-api/internal/platform/postgres"
	"github.com/phrazzld/bloggy-api/internal/redact"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// IsIntegrationTestEnvironment returns true if a test database URL is set,
// indicating that integration tests can be run.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDatabaseURL returns the database URL for tests.
// It checks DATABASE_URL and BLOGGY_TEST_DB_URL in that order.
func GetTestDatabaseURL() string {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL
	}
	return os.Getenv("BLOGGY_TEST_DB_URL")
}

// GetTestDB opens a connection to the test database and applies every
// migration. The connection is closed when the test finishes.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	if !IsIntegrationTestEnvironment() {
		t.Skip("DATABASE_URL not set - skipping integration test")
	}
	dbURL := GetTestDatabaseURL()

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "Failed to open database connection")
	t.Cleanup(func() { CleanupDB(t, db) })

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "Database ping failed for %s", redact.String(dbURL))

	SetupTestDatabaseSchema(t, db)
	return db
}

// SetupTestDatabaseSchema runs the embedded migrations against db.
func SetupTestDatabaseSchema(t *testing.T, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, postgres.Migrate(ctx, db, "up", logger), "Failed to run migrations")
}

// WithTx executes a test function within a transaction, automatically rolling back
// after the test completes. This ensures test isolation and prevents side effects.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		// sql.ErrTxDone is expected if tx is already committed or rolled back
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// CleanupDB closes db, logging rather than failing on error.
func CleanupDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		t.Logf("Warning: failed to close database connection: %v", err)
	}
}
