package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
)

// Common validation errors for ProgramEnrollment
var (
	ErrEmptyEnrollmentID      = errors.New("enrollment ID cannot be empty")
	ErrEmptyEnrollmentUserID  = errors.New("enrollment user ID cannot be empty")
	ErrEmptyProgramID         = errors.New("program ID cannot be empty")
	ErrZeroStartDate          = errors.New("start date cannot be zero")
	ErrInvalidCurrentDay      = errors.New("current day must be at least 1")
	ErrEmptyItemID            = errors.New("item ID cannot be empty")
	ErrInvalidCompletionDay   = errors.New("completion day must be at least 1")
	ErrDuplicateCompletionDay = errors.New("duplicate day completion record")
)

// DayCompletionRecord logs which content items a user marked done on one
// program day. At most one record exists per day within an enrollment.
type DayCompletionRecord struct {
	// Day is the 1-based program day this record belongs to.
	Day int `json:"day"`

	// CompletedItemIDs holds the item references marked done for this day.
	// Duplicates are suppressed; insertion order is preserved.
	CompletedItemIDs []string `json:"completed_item_ids"`

	// CompletedAt is the timestamp of the record's first creation. Later
	// item additions do not move it: it captures when tracking for the
	// day began, not when it finished.
	CompletedAt time.Time `json:"completed_at"`
}

// Validate checks if the DayCompletionRecord has valid data.
func (r *DayCompletionRecord) Validate() error {
	if r.Day < 1 {
		return ErrInvalidCompletionDay
	}
	for _, id := range r.CompletedItemIDs {
		if id == "" {
			return ErrEmptyItemID
		}
	}
	return nil
}

// containsItem reports whether the record already holds the given item.
func (r *DayCompletionRecord) containsItem(itemID string) bool {
	for _, id := range r.CompletedItemIDs {
		if id == itemID {
			return true
		}
	}
	return false
}

// ProgramEnrollment tracks one user's progress through one multi-day
// program. It is a plain in-memory state machine: all operations are
// synchronous, perform no I/O, and assume exclusive access per call.
// Callers (the service layer) load it, mutate it, and persist it.
type ProgramEnrollment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProgramID string    `json:"program_id"`

	// StartDate fixes day 1. It is normalized to the start of day in its
	// own location so elapsed-day math is independent of time of day.
	StartDate time.Time `json:"start_date"`

	// CurrentDay caches the last computed effective day. It is 1-based,
	// monotonically non-decreasing, and always re-derivable from
	// StartDate and the wall clock.
	CurrentDay int `json:"current_day"`

	// DayCompletions holds at most one record per distinct day,
	// in insertion order. Records are never removed.
	DayCompletions []DayCompletionRecord `json:"day_completions"`

	// IsActive marks the enrollment the user is currently working
	// through. Exclusivity across a user's enrollments is enforced at
	// the store boundary, not here; this entity only ever turns the
	// flag off, never back on.
	IsActive bool `json:"is_active"`

	// CompletedAt is set exactly once, when the final program day is
	// marked complete, and never cleared afterward. A false IsActive
	// with a nil CompletedAt means the host abandoned the enrollment.
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProgramEnrollment creates an enrollment for the given user and
// program starting on startDate, which is normalized to the start of day
// in its own location. The enrollment begins active on day 1; store-level
// activation is responsible for deactivating the user's other enrollments.
func NewProgramEnrollment(
	userID uuid.UUID,
	programID string,
	startDate time.Time,
) (*ProgramEnrollment, error) {
	created := time.Now().UTC()

	enrollment := &ProgramEnrollment{
		ID:         uuid.New(),
		UserID:     userID,
		ProgramID:  programID,
		StartDate:  now.New(startDate).BeginningOfDay(),
		CurrentDay: 1,
		IsActive:   true,
		CreatedAt:  created,
		UpdatedAt:  created,
	}

	if err := enrollment.Validate(); err != nil {
		return nil, err
	}

	return enrollment, nil
}

// Validate checks if the ProgramEnrollment has valid data.
func (e *ProgramEnrollment) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyEnrollmentID
	}

	if e.UserID == uuid.Nil {
		return ErrEmptyEnrollmentUserID
	}

	if e.ProgramID == "" {
		return ErrEmptyProgramID
	}

	if e.StartDate.IsZero() {
		return ErrZeroStartDate
	}

	if e.CurrentDay < 1 {
		return ErrInvalidCurrentDay
	}

	seen := make(map[int]bool, len(e.DayCompletions))
	for i := range e.DayCompletions {
		if err := e.DayCompletions[i].Validate(); err != nil {
			return err
		}
		if seen[e.DayCompletions[i].Day] {
			return ErrDuplicateCompletionDay
		}
		seen[e.DayCompletions[i].Day] = true
	}

	return nil
}

// touch stamps UpdatedAt. Every mutating operation funnels through it so
// the audit invariant holds as operations are added.
func (e *ProgramEnrollment) touch(at time.Time) {
	e.UpdatedAt = at.UTC()
}

// checkDay validates the duration/day pair guarding all completion
// operations. Caller-supplied day numbers are never clamped.
func checkDay(day, durationDays int) error {
	if durationDays <= 0 {
		return ErrInvalidDuration
	}
	if day < 1 || day > durationDays {
		return ErrOutOfRangeDay
	}
	return nil
}

// dayCompletion returns the record for the given day, or nil.
func (e *ProgramEnrollment) dayCompletion(day int) *DayCompletionRecord {
	for i := range e.DayCompletions {
		if e.DayCompletions[i].Day == day {
			return &e.DayCompletions[i]
		}
	}
	return nil
}

// MarkItemCompleted records that the content item was completed on the
// given program day. Creating the day's record if absent, it appends the
// item with set semantics: marking an already-present item is a no-op.
// The item ID is not checked against the program's catalog entries; that
// is the caller's concern.
func (e *ProgramEnrollment) MarkItemCompleted(
	itemID string,
	day int,
	durationDays int,
	at time.Time,
) error {
	if itemID == "" {
		return ErrEmptyItemID
	}
	if err := checkDay(day, durationDays); err != nil {
		return err
	}

	if rec := e.dayCompletion(day); rec != nil {
		if !rec.containsItem(itemID) {
			rec.CompletedItemIDs = append(rec.CompletedItemIDs, itemID)
		}
	} else {
		e.DayCompletions = append(e.DayCompletions, DayCompletionRecord{
			Day:              day,
			CompletedItemIDs: []string{itemID},
			CompletedAt:      at.UTC(),
		})
	}

	e.touch(at)
	return nil
}

// MarkDayCompleted finalizes a program day. The existence of a day's
// record, even with zero items, is what "completed" means; an empty
// record is created if none exists. Reaching the final day fires the
// one-way terminal transition: CompletedAt is set and IsActive cleared,
// and nothing in this entity ever reverses either. Repeat calls are
// accepted no-ops.
//
// The returned flag reports whether this call finalized the program,
// so callers can trigger completion side effects exactly once.
func (e *ProgramEnrollment) MarkDayCompleted(
	day int,
	durationDays int,
	at time.Time,
) (bool, error) {
	if err := checkDay(day, durationDays); err != nil {
		return false, err
	}

	if e.dayCompletion(day) == nil {
		e.DayCompletions = append(e.DayCompletions, DayCompletionRecord{
			Day:              day,
			CompletedItemIDs: []string{},
			CompletedAt:      at.UTC(),
		})
	}

	finalized := false
	if day >= durationDays && e.CompletedAt == nil {
		completed := at.UTC()
		e.CompletedAt = &completed
		e.IsActive = false
		finalized = true
	}

	e.touch(at)
	return finalized, nil
}

// IsDayCompleted reports whether a completion record exists for the day.
// Presence, not item count, determines completion.
func (e *ProgramEnrollment) IsDayCompleted(day int) bool {
	return e.dayCompletion(day) != nil
}

// CompletedItemIDs returns a copy of the item IDs recorded for the day,
// or an empty slice when no record exists. It never fails.
func (e *ProgramEnrollment) CompletedItemIDs(day int) []string {
	rec := e.dayCompletion(day)
	if rec == nil {
		return []string{}
	}
	ids := make([]string, len(rec.CompletedItemIDs))
	copy(ids, rec.CompletedItemIDs)
	return ids
}

// IsFinalized reports whether the program has been completed. Hosts use
// this to detect the frozen state instead of re-processing a finished
// program.
func (e *ProgramEnrollment) IsFinalized() bool {
	return e.CompletedAt != nil
}

// AdvanceTo moves the cached CurrentDay forward to the given computed
// effective day. The cache never moves backward; callers pass values
// already clamped to the program duration. Reports whether the cache
// moved.
func (e *ProgramEnrollment) AdvanceTo(day int, at time.Time) bool {
	if day <= e.CurrentDay {
		return false
	}
	e.CurrentDay = day
	e.touch(at)
	return true
}

// Deactivate turns the enrollment inactive without completing it. This
// is the host-level abandon path: CompletedAt stays nil, and the entity
// draws no further meaning from the combination.
func (e *ProgramEnrollment) Deactivate(at time.Time) {
	e.IsActive = false
	e.touch(at)
}
