package store

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every store implementation. Entity-specific
// variants wrap the generic ones, so errors.Is(err, ErrNotFound) matches
// ErrUserNotFound and its siblings too.
var (
	// ErrNotFound reports that the requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate reports that a write collided with a uniqueness rule.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity reports that an entity failed validation before
	// reaching the database, or referenced a row that does not exist.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUserNotFound reports a missing user row.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrProgramNotFound reports a missing catalog program.
	ErrProgramNotFound = fmt.Errorf("%w: program", ErrNotFound)

	// ErrEnrollmentNotFound reports a missing enrollment. Lookups for a
	// user's active enrollment return it when no active row exists.
	ErrEnrollmentNotFound = fmt.Errorf("%w: enrollment", ErrNotFound)

	// ErrDailyLogNotFound reports a missing daily log row.
	ErrDailyLogNotFound = fmt.Errorf("%w: daily log", ErrNotFound)

	// ErrEmailExists reports a registration against an email that is
	// already taken. Wraps ErrDuplicate.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError reports whether err is ErrNotFound or any of the
// entity-specific variants wrapping it.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError carries the entity and operation a failure belongs to, for
// log lines that need more than the sentinel.
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError builds a StoreError wrapping err.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
