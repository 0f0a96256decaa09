package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/verdanthq/verdant-api/internal/domain"
)

// UserStore defines the interface for user account persistence.
//
// Plaintext passwords never reach the database: Create and Update hash
// the Password field when it is set and clear it on the entity, and
// reads populate HashedPassword only.
type UserStore interface {
	// Create validates the user, hashes its password, and inserts the row.
	// Returns ErrEmailExists when the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email. Login resolves accounts
	// through it.
	// Returns ErrUserNotFound if no row matches.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update persists the full user row, so callers load first and
	// modify the loaded entity. A set Password field re-hashes; an empty
	// one keeps the stored hash.
	// Returns ErrUserNotFound if no row matches and ErrEmailExists when
	// the new email collides.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes the user row. Enrollments and daily logs owned by
	// the user go with it through the schema's cascades.
	// Returns ErrUserNotFound if no row matches.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction should be created and managed by the
	// caller (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
