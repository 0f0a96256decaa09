package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/domain/progress"
)

// MockProgressService implements service.ProgressService for testing
type MockProgressService struct {
	// Custom behavior functions
	LogDayFn   func(ctx context.Context, userID uuid.UUID, date time.Time, completed bool, effort domain.EffortLevel) (*domain.DailyLog, error)
	SummaryFn  func(ctx context.Context, userID uuid.UUID) (progress.Summary, error)
	CalendarFn func(ctx context.Context, userID uuid.UUID, year int, month time.Month) (progress.MonthView, error)

	// Default return values
	Entry         *domain.DailyLog
	StreakSummary progress.Summary
	Month         progress.MonthView
	DefaultError  error
}

// LogDay implements the ProgressService.LogDay method
func (m *MockProgressService) LogDay(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
	completed bool,
	effort domain.EffortLevel,
) (*domain.DailyLog, error) {
	if m.LogDayFn != nil {
		return m.LogDayFn(ctx, userID, date, completed, effort)
	}
	return m.Entry, m.DefaultError
}

// Summary implements the ProgressService.Summary method
func (m *MockProgressService) Summary(ctx context.Context, userID uuid.UUID) (progress.Summary, error) {
	if m.SummaryFn != nil {
		return m.SummaryFn(ctx, userID)
	}
	return m.StreakSummary, m.DefaultError
}

// Calendar implements the ProgressService.Calendar method
func (m *MockProgressService) Calendar(
	ctx context.Context,
	userID uuid.UUID,
	year int,
	month time.Month,
) (progress.MonthView, error) {
	if m.CalendarFn != nil {
		return m.CalendarFn(ctx, userID, year, month)
	}
	return m.Month, m.DefaultError
}
