// Package progress implements the pure calculation layer for program
// progress: deriving the effective program day from calendar time,
// aggregating daily activity logs into streak summaries, and laying out
// the monthly calendar view. Nothing in this package performs I/O or
// mutates its inputs; callers supply every date and clock reading
// explicitly so the results are deterministic and testable.
package progress

import (
	"time"

	"github.com/verdanthq/verdant-api/internal/domain"
)

// dayLength is the span between two consecutive normalized dates.
// Normalized dates always live in UTC, which has no daylight-saving
// transitions, so the difference between adjacent calendar days is
// exactly 24 hours.
const dayLength = 24 * time.Hour

// dateOnly strips the clock reading from t, keeping only its calendar
// date as seen in t's own location, and re-anchors that date at midnight
// UTC. Two times on the same local calendar day always map to the same
// normalized value, regardless of daylight-saving shifts between them.
func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// elapsedDays counts the whole calendar days between the start date and
// the reference time. Both are normalized with dateOnly first, so the
// count depends only on calendar dates, never on times of day or DST
// offsets. The result is 0 when both fall on the same date and negative
// when ref precedes start.
func elapsedDays(start, ref time.Time) int {
	return int(dateOnly(ref).Sub(dateOnly(start)) / dayLength)
}

// computeEffectiveDay derives the 1-based program day for a reference
// time.
//
// The effective day is elapsedDays(start, ref) + 1: day 1 on the start
// date itself, incrementing by exactly one per calendar day, capped at
// durationDays so an enrollment that outlives its program settles on the
// final day rather than running past it. A start date in the future
// yields day 1 (the computed value never drops below the first day).
//
// The function is idempotent and side-effect free. It never touches an
// enrollment's cached CurrentDay; callers decide when to persist the
// derived value.
//
// Returns domain.ErrInvalidDuration when durationDays is not positive.
func computeEffectiveDay(start, ref time.Time, durationDays int) (int, error) {
	if durationDays <= 0 {
		return 0, domain.ErrInvalidDuration
	}

	day := elapsedDays(start, ref) + 1
	if day < 1 {
		day = 1
	}
	if day > durationDays {
		day = durationDays
	}

	return day, nil
}
