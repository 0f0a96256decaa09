package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/verdanthq/verdant-api/internal/domain"
)

// DailyLogStore defines the interface for daily activity log persistence.
// Logs are unique per (user, date); writes go through an upsert so a
// second log for the same date amends the first instead of failing.
type DailyLogStore interface {
	// Upsert saves a daily log, inserting a new row or updating the
	// completed flag and effort tag of the user's existing row for the
	// same date. The log date must already be normalized to start of day.
	// Returns validation errors from the domain DailyLog if data is invalid.
	Upsert(ctx context.Context, log *domain.DailyLog) error

	// ListByUser retrieves all of a user's daily logs ordered most recent
	// first, the shape the streak aggregator consumes.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.DailyLog, error)

	// ListByUserBetween retrieves the user's daily logs with log dates in
	// [from, to], ordered most recent first. Calendar views use it to
	// load one month.
	ListByUserBetween(
		ctx context.Context,
		userID uuid.UUID,
		from, to time.Time,
	) ([]*domain.DailyLog, error)

	// WithTx returns a new DailyLogStore instance that uses the provided
	// transaction. Day completion flows upsert the day's log in the same
	// transaction as the enrollment write.
	WithTx(tx *sql.Tx) DailyLogStore
}
