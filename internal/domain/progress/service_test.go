package progress

import (
	"testing"
	"time"

	"github.com/verdanthq/verdant-api/internal/domain"
)

func TestNewDefaultService(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service := NewDefaultService()
	if service == nil {
		t.Fatal("Expected non-nil service")
	}
}

func TestServiceEffectiveDay(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service := NewDefaultService()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	day, err := service.EffectiveDay(start, time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC), 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if day != 4 {
		t.Errorf("Expected day 4, got %d", day)
	}

	_, err = service.EffectiveDay(start, start, 0)
	if err != domain.ErrInvalidDuration {
		t.Errorf("Expected error %v, got %v", domain.ErrInvalidDuration, err)
	}
}

func TestServiceSummarize(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service := NewDefaultService()
	anchor := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

	sum := service.Summarize([]DayActivity{
		{Date: anchor, Completed: true},
		{Date: anchor.AddDate(0, 0, -1), Completed: true},
	})

	if sum.CurrentStreak != 2 || sum.LongestStreak != 2 || sum.TotalCompletions != 2 {
		t.Errorf("Expected 2/2/2, got %d/%d/%d",
			sum.CurrentStreak, sum.LongestStreak, sum.TotalCompletions)
	}
}

func TestServiceMonthViewValidation(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service := NewDefaultService()
	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	if _, err := service.MonthView(2024, time.Month(0), nil, today); err != ErrInvalidMonth {
		t.Errorf("Expected error %v, got %v", ErrInvalidMonth, err)
	}

	if _, err := service.MonthView(2024, time.Month(13), nil, today); err != ErrInvalidMonth {
		t.Errorf("Expected error %v, got %v", ErrInvalidMonth, err)
	}

	view, err := service.MonthView(2024, time.May, nil, today)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(view.Cells) != 31 {
		t.Errorf("Expected 31 cells, got %d", len(view.Cells))
	}
}
