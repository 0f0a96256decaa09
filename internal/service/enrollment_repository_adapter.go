package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/store"
)

// NewEnrollmentRepositoryAdapter creates a new adapter that allows a
// store.EnrollmentStore to be used where an EnrollmentRepository is
// expected.
func NewEnrollmentRepositoryAdapter(
	enrollmentStore store.EnrollmentStore,
	db *sql.DB,
) EnrollmentRepository {
	return &enrollmentRepositoryAdapter{
		enrollmentStore: enrollmentStore,
		db:              db,
	}
}

// enrollmentRepositoryAdapter adapts a store.EnrollmentStore to the
// EnrollmentRepository interface
type enrollmentRepositoryAdapter struct {
	enrollmentStore store.EnrollmentStore
	db              *sql.DB
}

// Create implements EnrollmentRepository.Create
func (a *enrollmentRepositoryAdapter) Create(
	ctx context.Context,
	enrollment *domain.ProgramEnrollment,
) error {
	return a.enrollmentStore.Create(ctx, enrollment)
}

// GetByID implements EnrollmentRepository.GetByID
func (a *enrollmentRepositoryAdapter) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.ProgramEnrollment, error) {
	return a.enrollmentStore.GetByID(ctx, id)
}

// GetByIDForUpdate implements EnrollmentRepository.GetByIDForUpdate
func (a *enrollmentRepositoryAdapter) GetByIDForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*domain.ProgramEnrollment, error) {
	return a.enrollmentStore.GetByIDForUpdate(ctx, id)
}

// GetActiveByUser implements EnrollmentRepository.GetActiveByUser
func (a *enrollmentRepositoryAdapter) GetActiveByUser(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.ProgramEnrollment, error) {
	return a.enrollmentStore.GetActiveByUser(ctx, userID)
}

// Update implements EnrollmentRepository.Update
func (a *enrollmentRepositoryAdapter) Update(
	ctx context.Context,
	enrollment *domain.ProgramEnrollment,
) error {
	return a.enrollmentStore.Update(ctx, enrollment)
}

// UpsertDayCompletion implements EnrollmentRepository.UpsertDayCompletion
func (a *enrollmentRepositoryAdapter) UpsertDayCompletion(
	ctx context.Context,
	enrollmentID uuid.UUID,
	record domain.DayCompletionRecord,
) error {
	return a.enrollmentStore.UpsertDayCompletion(ctx, enrollmentID, record)
}

// DeactivateAllForUser implements EnrollmentRepository.DeactivateAllForUser
func (a *enrollmentRepositoryAdapter) DeactivateAllForUser(
	ctx context.Context,
	userID uuid.UUID,
) error {
	return a.enrollmentStore.DeactivateAllForUser(ctx, userID)
}

// WithTx implements EnrollmentRepository.WithTx
func (a *enrollmentRepositoryAdapter) WithTx(tx *sql.Tx) EnrollmentRepository {
	return &enrollmentRepositoryAdapter{
		enrollmentStore: a.enrollmentStore.WithTx(tx),
		db:              a.db,
	}
}

// DB implements EnrollmentRepository.DB
func (a *enrollmentRepositoryAdapter) DB() *sql.DB {
	return a.db
}
