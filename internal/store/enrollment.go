package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/verdanthq/verdant-api/internal/domain"
)

// EnrollmentStore defines the interface for program enrollment persistence.
//
// An enrollment row carries the scalar state (start date, cached current
// day, active flag, completion stamp); its day completion records live in
// a child table keyed by (enrollment_id, day). Loads return the records
// in insertion order; writes to the two levels are separate operations so
// services can compose them inside one transaction.
type EnrollmentStore interface {
	// Create saves a new enrollment to the store. Day completion records
	// on the entity are ignored; a fresh enrollment has none.
	// Returns ErrInvalidEntity if the user or program reference does not
	// resolve, and ErrDuplicate if the user already has an active
	// enrollment.
	Create(ctx context.Context, enrollment *domain.ProgramEnrollment) error

	// GetByID retrieves an enrollment with its day completion records.
	// Returns ErrEnrollmentNotFound if the enrollment does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProgramEnrollment, error)

	// GetByIDForUpdate behaves like GetByID but locks the enrollment row
	// for the remainder of the transaction. Mutating flows use it so
	// concurrent completions of the same enrollment serialize instead of
	// overwriting each other.
	// IMPORTANT: This method MUST be run within a transaction; the lock
	// is released when the transaction ends.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.ProgramEnrollment, error)

	// GetActiveByUser retrieves the user's single active enrollment with
	// its day completion records.
	// Returns ErrEnrollmentNotFound if the user has no active enrollment.
	GetActiveByUser(ctx context.Context, userID uuid.UUID) (*domain.ProgramEnrollment, error)

	// ListActive retrieves every active enrollment across all users,
	// without day completion records. The rollover job uses it to refresh
	// cached current days; nothing in that path needs the records.
	ListActive(ctx context.Context) ([]*domain.ProgramEnrollment, error)

	// Update persists the enrollment's scalar fields (current day, active
	// flag, completion stamp, updated stamp). Day completion records are
	// not touched; use UpsertDayCompletion for those.
	// Returns ErrEnrollmentNotFound if the enrollment does not exist.
	Update(ctx context.Context, enrollment *domain.ProgramEnrollment) error

	// UpsertDayCompletion saves one day completion record for the
	// enrollment, inserting it or replacing the item list of an existing
	// record for the same day. The record's completion stamp is kept from
	// the first insert.
	UpsertDayCompletion(
		ctx context.Context,
		enrollmentID uuid.UUID,
		record domain.DayCompletionRecord,
	) error

	// DeactivateAllForUser clears the active flag on every active
	// enrollment the user has. Enrolling runs it in the same transaction
	// as Create so the one-active-enrollment-per-user rule holds without
	// a window.
	DeactivateAllForUser(ctx context.Context, userID uuid.UUID) error

	// WithTx returns a new EnrollmentStore instance that uses the provided
	// transaction. The transaction should be created and managed by the
	// caller (typically a service).
	WithTx(tx *sql.Tx) EnrollmentStore
}
