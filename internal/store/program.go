package store

import (
	"context"

	"github.com/verdanthq/verdant-api/internal/domain"
)

// ProgramStore defines the interface for catalog program persistence.
// Programs are read-only reference data seeded by migration, so the
// interface exposes no mutations and no transactional variant.
type ProgramStore interface {
	// GetByID retrieves a program by its catalog identifier.
	// Returns ErrProgramNotFound if no program with that ID exists.
	// The returned program includes its per-day item references.
	GetByID(ctx context.Context, id string) (*domain.Program, error)

	// List retrieves all programs in the catalog, ordered by identifier.
	List(ctx context.Context) ([]*domain.Program, error)
}
