// Package mocks provides mock implementations for testing task components.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/verdanthq/verdant-api/internal/domain"
)

// EnrollmentReader is a simple implementation of the task.EnrollmentReader interface.
type EnrollmentReader struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.ProgramEnrollment, error)
}

// GetByID retrieves an enrollment by its unique ID.
func (m *EnrollmentReader) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProgramEnrollment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

// UserReader is a simple implementation of the task.UserReader interface.
type UserReader struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// GetByID retrieves a user by its unique ID.
func (m *UserReader) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

// ProgramReader is a simple implementation of the task.ProgramReader interface.
type ProgramReader struct {
	GetByIDFunc func(ctx context.Context, id string) (*domain.Program, error)
}

// GetByID retrieves a program by its catalog ID.
func (m *ProgramReader) GetByID(ctx context.Context, id string) (*domain.Program, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}
