package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/platform/logger"
	"github.com/verdanthq/verdant-api/internal/store"
)

// PostgresDailyLogStore implements the store.DailyLogStore interface
// using a PostgreSQL database as the storage backend. Rows are unique per
// (user_id, log_date) and writes go through an upsert.
type PostgresDailyLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDailyLogStore creates a new PostgreSQL implementation of the
// DailyLogStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresDailyLogStore(db store.DBTX, logger *slog.Logger) *PostgresDailyLogStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDailyLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "daily_log_store")),
	}
}

// Ensure PostgresDailyLogStore implements store.DailyLogStore interface
var _ store.DailyLogStore = (*PostgresDailyLogStore)(nil)

// Upsert implements store.DailyLogStore.Upsert
// It inserts the log or updates the completed flag and effort tag of the
// user's existing row for the same date.
// Returns store.ErrInvalidEntity if the user reference does not resolve.
func (s *PostgresDailyLogStore) Upsert(ctx context.Context, log *domain.DailyLog) error {
	// Get the logger from context or use default
	logg := logger.FromContextOrDefault(ctx, s.logger)

	// Validate log data
	if err := log.Validate(); err != nil {
		logg.Warn("daily log validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("daily_log_id", log.ID.String()))
		return err
	}

	query := `
		INSERT INTO daily_logs
			(id, user_id, log_date, completed, effort, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, log_date)
		DO UPDATE SET
			completed = EXCLUDED.completed,
			effort = EXCLUDED.effort,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		log.ID,
		log.UserID,
		log.LogDate,
		log.Completed,
		log.Effort,
		log.CreatedAt,
		log.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			logg.Warn("foreign key violation during daily log upsert",
				slog.String("user_id", log.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, log.UserID)
		}

		logg.Error("failed to upsert daily log",
			slog.String("error", err.Error()),
			slog.String("user_id", log.UserID.String()))
		return err
	}

	logg.Debug("daily log upserted",
		slog.String("user_id", log.UserID.String()),
		slog.Time("log_date", log.LogDate),
		slog.Bool("completed", log.Completed))
	return nil
}

// scanDailyLogs reads daily log rows into domain entities.
func scanDailyLogs(rows *sql.Rows) ([]*domain.DailyLog, error) {
	var logs []*domain.DailyLog
	for rows.Next() {
		var log domain.DailyLog
		var effort string

		err := rows.Scan(
			&log.ID,
			&log.UserID,
			&log.LogDate,
			&log.Completed,
			&effort,
			&log.CreatedAt,
			&log.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		log.Effort = domain.EffortLevel(effort)
		logs = append(logs, &log)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if logs == nil {
		logs = []*domain.DailyLog{}
	}
	return logs, nil
}

// ListByUser implements store.DailyLogStore.ListByUser
// It returns all of the user's logs ordered most recent first, the shape
// the streak aggregator consumes.
func (s *PostgresDailyLogStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.DailyLog, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, log_date, completed, effort, created_at, updated_at
		FROM daily_logs
		WHERE user_id = $1
		ORDER BY log_date DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list daily logs",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	logs, err := scanDailyLogs(rows)
	if err != nil {
		log.Error("failed to scan daily log rows",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	log.Debug("listed daily logs",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(logs)))
	return logs, nil
}

// ListByUserBetween implements store.DailyLogStore.ListByUserBetween
// It returns the user's logs with dates in [from, to], most recent first.
func (s *PostgresDailyLogStore) ListByUserBetween(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]*domain.DailyLog, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, log_date, completed, effort, created_at, updated_at
		FROM daily_logs
		WHERE user_id = $1 AND log_date >= $2 AND log_date <= $3
		ORDER BY log_date DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		log.Error("failed to list daily logs in range",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	logs, err := scanDailyLogs(rows)
	if err != nil {
		log.Error("failed to scan daily log rows",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	return logs, nil
}

// WithTx implements store.DailyLogStore.WithTx
// It returns a new store instance bound to the given transaction.
func (s *PostgresDailyLogStore) WithTx(tx *sql.Tx) store.DailyLogStore {
	return &PostgresDailyLogStore{
		db:     tx,
		logger: s.logger,
	}
}
