package progress

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrInvalidMonth = errors.New("month must be between January and December")
)

// Service defines the interface for progress calculation operations
type Service interface {
	// EffectiveDay computes the 1-based program day for a reference time
	EffectiveDay(startDate, ref time.Time, durationDays int) (int, error)

	// Summarize aggregates a most-recent-first activity history into
	// streak figures
	Summarize(history []DayActivity) Summary

	// MonthView lays out one calendar month with per-day render states
	MonthView(
		year int,
		month time.Month,
		completed []time.Time,
		today time.Time,
	) (MonthView, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct{}

// NewDefaultService creates a new progress calculation service
func NewDefaultService() Service {
	return &defaultService{}
}

// EffectiveDay implements the Service interface for day computation
func (s *defaultService) EffectiveDay(
	startDate, ref time.Time,
	durationDays int,
) (int, error) {
	return computeEffectiveDay(startDate, ref, durationDays)
}

// Summarize implements the Service interface for streak aggregation
func (s *defaultService) Summarize(history []DayActivity) Summary {
	return summarize(history)
}

// MonthView implements the Service interface for the calendar layout.
// The month must be a real calendar month; time.Date's normalization of
// out-of-range months would silently produce a different month's layout,
// so the range is checked here instead.
func (s *defaultService) MonthView(
	year int,
	month time.Month,
	completed []time.Time,
	today time.Time,
) (MonthView, error) {
	if month < time.January || month > time.December {
		return MonthView{}, ErrInvalidMonth
	}

	return buildMonthView(year, month, completed, today), nil
}
