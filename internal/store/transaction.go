package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bloggy-api/internal/platform/logger"
)

// TxFn runs inside a transaction. Returning an error rolls it back.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction executes fn within a transaction on db. The transaction
// is committed when fn returns nil and rolled back when it returns an error
// or panics. A panic is re-raised after the rollback.
func RunInTransaction(ctx context.Context, db TxBeginner, fn TxFn) error {
	log := logger.FromContextOrDefault(ctx, slog.Default())

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", slog.String("error", err.Error()))
		return fmt.Errorf("%w: begin: %w", ErrTransactionFailed, err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to roll back transaction after panic",
					slog.String("error", rbErr.Error()),
					slog.Any("panic", p))
			} else {
				log.Error("rolled back transaction after panic", slog.Any("panic", p))
			}
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("failed to roll back transaction",
				slog.String("rollback_error", rbErr.Error()),
				slog.String("original_error", err.Error()))
			return fmt.Errorf("error rolling back transaction: %v (original error: %w)", rbErr, err)
		}
		log.Debug("rolled back transaction due to error", slog.String("error", err.Error()))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", slog.String("error", err.Error()))
		return fmt.Errorf("%w: commit: %w", ErrTransactionFailed, err)
	}

	log.Debug("transaction committed")
	return nil
}
