package domain

import (
	"errors"
	"time"
)

// Common validation errors for Program
var (
	ErrEmptyProgramSlug     = errors.New("program identifier cannot be empty")
	ErrEmptyProgramTitle    = errors.New("program title cannot be empty")
	ErrProgramDayOutOfRange = errors.New("program day is outside the program duration")
	ErrDuplicateProgramDay  = errors.New("duplicate program day definition")
)

// ProgramDay lists the content item references for one day of a program.
// Item IDs are opaque catalog identifiers (routines, movements, lessons);
// this package never resolves them.
type ProgramDay struct {
	Day     int      `json:"day"`
	ItemIDs []string `json:"item_ids"`
}

// Program is a catalog-defined multi-day content plan. Programs are
// read-only reference data: they are seeded into the catalog and only
// ever read by the enrollment flow, which needs DurationDays and the
// per-day item references.
type Program struct {
	// ID is the catalog identifier, a stable slug such as
	// "reset-14". Catalog entries are addressed by string IDs.
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	DurationDays int          `json:"duration_days"`
	Days         []ProgramDay `json:"days"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Validate checks if the Program has valid data. Days may be sparse
// (a rest day carries no items), but each defined day must fall inside
// the program duration and appear at most once.
func (p *Program) Validate() error {
	if p.ID == "" {
		return ErrEmptyProgramSlug
	}

	if p.Title == "" {
		return ErrEmptyProgramTitle
	}

	if p.DurationDays <= 0 {
		return ErrInvalidDuration
	}

	seen := make(map[int]bool, len(p.Days))
	for _, d := range p.Days {
		if d.Day < 1 || d.Day > p.DurationDays {
			return ErrProgramDayOutOfRange
		}
		if seen[d.Day] {
			return ErrDuplicateProgramDay
		}
		seen[d.Day] = true

		for _, id := range d.ItemIDs {
			if id == "" {
				return ErrEmptyItemID
			}
		}
	}

	return nil
}

// ItemIDsForDay returns the item references defined for the given day,
// or an empty slice when the day has no content.
func (p *Program) ItemIDsForDay(day int) []string {
	for _, d := range p.Days {
		if d.Day == day {
			ids := make([]string, len(d.ItemIDs))
			copy(ids, d.ItemIDs)
			return ids
		}
	}
	return []string{}
}
