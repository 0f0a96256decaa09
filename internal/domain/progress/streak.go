package progress

import (
	"time"

	"github.com/verdanthq/verdant-api/internal/domain"
)

// DayActivity is one entry of the daily activity history consumed by the
// streak aggregator: a calendar date, whether any qualifying activity
// happened that day, and the optional effort tag. Histories carry at
// most one entry per date, ordered most recent first.
type DayActivity struct {
	Date      time.Time
	Completed bool
	Effort    domain.EffortLevel
}

// Summary holds the aggregate streak figures derived from an activity
// history.
type Summary struct {
	// CurrentStreak counts consecutive completed days walking backward
	// from the most recent entry. It breaks at the first incomplete day
	// or gap in the calendar.
	CurrentStreak int

	// LongestStreak is the longest consecutive completed run anywhere
	// in the history.
	LongestStreak int

	// TotalCompletions counts every completed entry, consecutive or not.
	TotalCompletions int
}

// summarize computes streak figures from a most-recent-first activity
// history.
//
// A run is a sequence of entries with true flags on adjacent calendar
// dates; both a false flag and a missing date end it. The current streak
// is the run anchored at the first (most recent) entry, which means a
// streak survives days that simply have no entry yet: a user who logged
// activity yesterday but not today still shows their streak until a
// non-completed entry lands.
func summarize(history []DayActivity) Summary {
	var sum Summary

	run := 0
	anchored := true
	var prevDate time.Time

	for i, entry := range history {
		date := dateOnly(entry.Date)

		if entry.Completed {
			sum.TotalCompletions++
		}

		contiguous := i == 0 || prevDate.Sub(date) == dayLength

		switch {
		case !entry.Completed:
			run = 0
		case contiguous:
			run++
		default:
			// A calendar gap starts a fresh run.
			run = 1
		}

		if run > sum.LongestStreak {
			sum.LongestStreak = run
		}

		// The current streak extends only while the walk from the most
		// recent entry is unbroken; the first false flag or gap ends it
		// for good.
		if anchored && contiguous && entry.Completed {
			sum.CurrentStreak = run
		} else {
			anchored = false
		}

		prevDate = date
	}

	return sum
}
