package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
)

// EffortLevel tags a daily log with how hard the day's activity felt.
// The tag is optional; streak math ignores it.
type EffortLevel string

// Possible effort level values. The empty value means untagged.
const (
	EffortNone     EffortLevel = ""
	EffortLight    EffortLevel = "light"
	EffortModerate EffortLevel = "moderate"
	EffortIntense  EffortLevel = "intense"
)

// Common validation errors for DailyLog
var (
	ErrEmptyDailyLogID     = errors.New("daily log ID cannot be empty")
	ErrEmptyDailyLogUserID = errors.New("daily log user ID cannot be empty")
	ErrZeroLogDate         = errors.New("log date cannot be zero")
	ErrInvalidEffortLevel  = errors.New("invalid effort level")
)

// DailyLog records whether a user did any qualifying activity on one
// calendar date. It is the raw material for streak and calendar views
// and is distinct from per-program day completions: a log exists per
// user per date regardless of which program, if any, produced it.
type DailyLog struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	LogDate   time.Time   `json:"log_date"`
	Completed bool        `json:"completed"`
	Effort    EffortLevel `json:"effort,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewDailyLog creates a daily log for the given user and date. The date
// is normalized to the start of day in its own location so there can be
// at most one log per calendar date.
func NewDailyLog(
	userID uuid.UUID,
	logDate time.Time,
	completed bool,
	effort EffortLevel,
) (*DailyLog, error) {
	created := time.Now().UTC()

	log := &DailyLog{
		ID:        uuid.New(),
		UserID:    userID,
		LogDate:   now.New(logDate).BeginningOfDay(),
		Completed: completed,
		Effort:    effort,
		CreatedAt: created,
		UpdatedAt: created,
	}

	if err := log.Validate(); err != nil {
		return nil, err
	}

	return log, nil
}

// Validate checks if the DailyLog has valid data.
func (l *DailyLog) Validate() error {
	if l.ID == uuid.Nil {
		return ErrEmptyDailyLogID
	}

	if l.UserID == uuid.Nil {
		return ErrEmptyDailyLogUserID
	}

	if l.LogDate.IsZero() {
		return ErrZeroLogDate
	}

	if !isValidEffortLevel(l.Effort) {
		return ErrInvalidEffortLevel
	}

	return nil
}

// isValidEffortLevel checks if the given level is a valid EffortLevel.
func isValidEffortLevel(level EffortLevel) bool {
	switch level {
	case EffortNone, EffortLight, EffortModerate, EffortIntense:
		return true
	default:
		return false
	}
}
