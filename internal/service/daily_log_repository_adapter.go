package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/store"
)

// NewDailyLogRepositoryAdapter creates a new adapter that allows a
// store.DailyLogStore to be used where a DailyLogRepository is expected.
func NewDailyLogRepositoryAdapter(dailyLogStore store.DailyLogStore) DailyLogRepository {
	return &dailyLogRepositoryAdapter{
		dailyLogStore: dailyLogStore,
	}
}

// dailyLogRepositoryAdapter adapts a store.DailyLogStore to the
// DailyLogRepository interface
type dailyLogRepositoryAdapter struct {
	dailyLogStore store.DailyLogStore
}

// Upsert implements DailyLogRepository.Upsert
func (a *dailyLogRepositoryAdapter) Upsert(ctx context.Context, log *domain.DailyLog) error {
	return a.dailyLogStore.Upsert(ctx, log)
}

// ListByUser implements DailyLogRepository.ListByUser
func (a *dailyLogRepositoryAdapter) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.DailyLog, error) {
	return a.dailyLogStore.ListByUser(ctx, userID)
}

// ListByUserBetween implements DailyLogRepository.ListByUserBetween
func (a *dailyLogRepositoryAdapter) ListByUserBetween(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]*domain.DailyLog, error) {
	return a.dailyLogStore.ListByUserBetween(ctx, userID, from, to)
}

// WithTx implements DailyLogRepository.WithTx
func (a *dailyLogRepositoryAdapter) WithTx(tx *sql.Tx) DailyLogRepository {
	return &dailyLogRepositoryAdapter{
		dailyLogStore: a.dailyLogStore.WithTx(tx),
	}
}
