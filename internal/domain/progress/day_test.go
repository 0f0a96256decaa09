package progress

import (
	"testing"
	"time"

	"github.com/verdanthq/verdant-api/internal/domain"
)

func TestComputeEffectiveDay(t *testing.T) {
	t.Parallel() // Enable parallel execution
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		start    time.Time
		ref      time.Time
		duration int
		expected int
	}{
		{
			name:     "Start date itself is day 1",
			start:    start,
			ref:      time.Date(2024, 1, 1, 18, 30, 0, 0, time.UTC),
			duration: 10,
			expected: 1,
		},
		{
			name:     "Three elapsed days is day 4",
			start:    start,
			ref:      time.Date(2024, 1, 4, 9, 0, 0, 0, time.UTC),
			duration: 10,
			expected: 4,
		},
		{
			name:     "Past the program end caps at the final day",
			start:    start,
			ref:      time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC),
			duration: 10,
			expected: 10,
		},
		{
			name:     "Future start date clamps to day 1",
			start:    time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			ref:      time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
			duration: 10,
			expected: 1,
		},
		{
			name:     "Final calendar day of the program",
			start:    start,
			ref:      time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC),
			duration: 10,
			expected: 10,
		},
		{
			name:     "Single day program stays on day 1",
			start:    start,
			ref:      time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC),
			duration: 1,
			expected: 1,
		},
		{
			name:     "Midnight boundary advances the day",
			start:    time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC),
			ref:      time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC),
			duration: 10,
			expected: 2,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel() // Enable parallel execution
			day, err := computeEffectiveDay(tc.start, tc.ref, tc.duration)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if day != tc.expected {
				t.Errorf("Expected day %d, got %d", tc.expected, day)
			}
		})
	}
}

func TestComputeEffectiveDayInvalidDuration(t *testing.T) {
	t.Parallel() // Enable parallel execution
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ref := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)

	for _, duration := range []int{0, -1, -10} {
		if _, err := computeEffectiveDay(start, ref, duration); err != domain.ErrInvalidDuration {
			t.Errorf("Expected error %v for duration %d, got %v",
				domain.ErrInvalidDuration, duration, err)
		}
	}
}

// TestComputeEffectiveDayAcrossDSTTransition pins the count to calendar
// dates: a spring-forward transition between the two readings removes an
// hour of wall-clock time, which a naive hour division would turn into a
// missing day.
func TestComputeEffectiveDayAcrossDSTTransition(t *testing.T) {
	t.Parallel() // Enable parallel execution

	est := time.FixedZone("EST", -5*60*60)
	edt := time.FixedZone("EDT", -4*60*60)

	// 2024-03-09 noon EST to 2024-03-11 noon EDT is 47 wall-clock
	// hours but exactly two calendar days.
	start := time.Date(2024, 3, 9, 12, 0, 0, 0, est)
	ref := time.Date(2024, 3, 11, 12, 0, 0, 0, edt)

	day, err := computeEffectiveDay(start, ref, 30)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if day != 3 {
		t.Errorf("Expected day 3, got %d", day)
	}
}

func TestElapsedDays(t *testing.T) {
	t.Parallel() // Enable parallel execution
	start := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	if got := elapsedDays(start, start); got != 0 {
		t.Errorf("Expected 0 elapsed days, got %d", got)
	}

	sameDayLater := time.Date(2024, 1, 10, 23, 0, 0, 0, time.UTC)
	if got := elapsedDays(start, sameDayLater); got != 0 {
		t.Errorf("Expected 0 elapsed days within one date, got %d", got)
	}

	nextDay := time.Date(2024, 1, 11, 0, 30, 0, 0, time.UTC)
	if got := elapsedDays(start, nextDay); got != 1 {
		t.Errorf("Expected 1 elapsed day, got %d", got)
	}

	earlier := time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)
	if got := elapsedDays(start, earlier); got != -3 {
		t.Errorf("Expected -3 elapsed days, got %d", got)
	}
}
