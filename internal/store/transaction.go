package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/verdanthq/verdant-api/internal/platform/logger"
)

// TxFn runs inside a database transaction. Returning nil commits,
// returning an error rolls back.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction wraps fn in a transaction on db. The enrollment and
// progress services use it to keep multi-store writes atomic, binding
// each store to the shared tx through WithTx.
//
// After a clean rollback the callback's own error comes back unchanged,
// so errors.Is checks against domain and store sentinels keep working.
// A panic inside fn rolls the transaction back and then propagates.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin transaction", slog.String("error", err.Error()))
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("rollback after panic failed",
				slog.String("error", rbErr.Error()),
				slog.Any("panic", p))
		} else {
			log.Error("rolled back after panic", slog.Any("panic", p))
		}
		// ALLOW-PANIC: Propagating caught panic from transaction
		panic(p)
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("rollback failed",
				slog.String("rollback_error", rbErr.Error()),
				slog.String("cause", err.Error()))
			return fmt.Errorf("rollback failed: %v (cause: %w)", rbErr, err)
		}
		log.Debug("transaction rolled back", slog.String("cause", err.Error()))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit transaction", slog.String("error", err.Error()))
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
