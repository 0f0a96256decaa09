package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/service"
	"github.com/verdanthq/verdant-api/internal/store"
)

// MockEnrollmentService implements service.EnrollmentService for testing
type MockEnrollmentService struct {
	// Custom behavior functions
	EnrollFn       func(ctx context.Context, userID uuid.UUID, programID string) (*service.EnrollmentStatus, error)
	GetActiveFn    func(ctx context.Context, userID uuid.UUID) (*service.EnrollmentStatus, error)
	GetFn          func(ctx context.Context, userID, enrollmentID uuid.UUID) (*service.EnrollmentStatus, error)
	CompleteItemFn func(ctx context.Context, userID, enrollmentID uuid.UUID, itemID string, day int) (*service.EnrollmentStatus, error)
	CompleteDayFn  func(ctx context.Context, userID, enrollmentID uuid.UUID, day int) (*service.EnrollmentStatus, error)
	DayStatusFn    func(ctx context.Context, userID, enrollmentID uuid.UUID, day int) (*service.DayStatus, error)
	AbandonFn      func(ctx context.Context, userID, enrollmentID uuid.UUID) error
	GetProgramFn   func(ctx context.Context, programID string) (*domain.Program, error)
	ListProgramsFn func(ctx context.Context) ([]*domain.Program, error)

	// Default response values
	Status   *service.EnrollmentStatus
	Day      *service.DayStatus
	Program  *domain.Program
	Programs []*domain.Program
	Err      error

	// Call tracking for the mutating operations
	CompleteItemCalls struct {
		mu      sync.Mutex
		Count   int
		ItemIDs []string
		Days    []int
	}

	CompleteDayCalls struct {
		mu    sync.Mutex
		Count int
		Days  []int
	}

	AbandonCalls struct {
		mu            sync.Mutex
		Count         int
		EnrollmentIDs []uuid.UUID
	}
}

// Enroll implements the service.EnrollmentService interface
func (m *MockEnrollmentService) Enroll(
	ctx context.Context,
	userID uuid.UUID,
	programID string,
) (*service.EnrollmentStatus, error) {
	if m.EnrollFn != nil {
		return m.EnrollFn(ctx, userID, programID)
	}
	return m.Status, m.Err
}

// GetActive implements the service.EnrollmentService interface
func (m *MockEnrollmentService) GetActive(
	ctx context.Context,
	userID uuid.UUID,
) (*service.EnrollmentStatus, error) {
	if m.GetActiveFn != nil {
		return m.GetActiveFn(ctx, userID)
	}
	return m.Status, m.Err
}

// Get implements the service.EnrollmentService interface
func (m *MockEnrollmentService) Get(
	ctx context.Context,
	userID, enrollmentID uuid.UUID,
) (*service.EnrollmentStatus, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID, enrollmentID)
	}
	return m.Status, m.Err
}

// CompleteItem implements the service.EnrollmentService interface
func (m *MockEnrollmentService) CompleteItem(
	ctx context.Context,
	userID, enrollmentID uuid.UUID,
	itemID string,
	day int,
) (*service.EnrollmentStatus, error) {
	m.CompleteItemCalls.mu.Lock()
	m.CompleteItemCalls.Count++
	m.CompleteItemCalls.ItemIDs = append(m.CompleteItemCalls.ItemIDs, itemID)
	m.CompleteItemCalls.Days = append(m.CompleteItemCalls.Days, day)
	m.CompleteItemCalls.mu.Unlock()

	if m.CompleteItemFn != nil {
		return m.CompleteItemFn(ctx, userID, enrollmentID, itemID, day)
	}
	return m.Status, m.Err
}

// CompleteDay implements the service.EnrollmentService interface
func (m *MockEnrollmentService) CompleteDay(
	ctx context.Context,
	userID, enrollmentID uuid.UUID,
	day int,
) (*service.EnrollmentStatus, error) {
	m.CompleteDayCalls.mu.Lock()
	m.CompleteDayCalls.Count++
	m.CompleteDayCalls.Days = append(m.CompleteDayCalls.Days, day)
	m.CompleteDayCalls.mu.Unlock()

	if m.CompleteDayFn != nil {
		return m.CompleteDayFn(ctx, userID, enrollmentID, day)
	}
	return m.Status, m.Err
}

// DayStatus implements the service.EnrollmentService interface
func (m *MockEnrollmentService) DayStatus(
	ctx context.Context,
	userID, enrollmentID uuid.UUID,
	day int,
) (*service.DayStatus, error) {
	if m.DayStatusFn != nil {
		return m.DayStatusFn(ctx, userID, enrollmentID, day)
	}
	return m.Day, m.Err
}

// Abandon implements the service.EnrollmentService interface
func (m *MockEnrollmentService) Abandon(ctx context.Context, userID, enrollmentID uuid.UUID) error {
	m.AbandonCalls.mu.Lock()
	m.AbandonCalls.Count++
	m.AbandonCalls.EnrollmentIDs = append(m.AbandonCalls.EnrollmentIDs, enrollmentID)
	m.AbandonCalls.mu.Unlock()

	if m.AbandonFn != nil {
		return m.AbandonFn(ctx, userID, enrollmentID)
	}
	return m.Err
}

// GetProgram implements the service.EnrollmentService interface
func (m *MockEnrollmentService) GetProgram(
	ctx context.Context,
	programID string,
) (*domain.Program, error) {
	if m.GetProgramFn != nil {
		return m.GetProgramFn(ctx, programID)
	}
	return m.Program, m.Err
}

// ListPrograms implements the service.EnrollmentService interface
func (m *MockEnrollmentService) ListPrograms(ctx context.Context) ([]*domain.Program, error) {
	if m.ListProgramsFn != nil {
		return m.ListProgramsFn(ctx)
	}
	return m.Programs, m.Err
}

// Reset resets the call tracking state for the mutating operations
func (m *MockEnrollmentService) Reset() {
	m.CompleteItemCalls.mu.Lock()
	m.CompleteItemCalls.Count = 0
	m.CompleteItemCalls.ItemIDs = nil
	m.CompleteItemCalls.Days = nil
	m.CompleteItemCalls.mu.Unlock()

	m.CompleteDayCalls.mu.Lock()
	m.CompleteDayCalls.Count = 0
	m.CompleteDayCalls.Days = nil
	m.CompleteDayCalls.mu.Unlock()

	m.AbandonCalls.mu.Lock()
	m.AbandonCalls.Count = 0
	m.AbandonCalls.EnrollmentIDs = nil
	m.AbandonCalls.mu.Unlock()
}

// Functional option pattern for configuring mock

// EnrollmentMockOption is a function type that configures a MockEnrollmentService
type EnrollmentMockOption func(*MockEnrollmentService)

// WithEnrollmentStatus sets the default status returned by the enrollment operations
func WithEnrollmentStatus(status *service.EnrollmentStatus) EnrollmentMockOption {
	return func(m *MockEnrollmentService) {
		m.Status = status
	}
}

// WithDayStatus sets the default day projection returned by DayStatus
func WithDayStatus(day *service.DayStatus) EnrollmentMockOption {
	return func(m *MockEnrollmentService) {
		m.Day = day
	}
}

// WithProgram sets the default program returned by GetProgram
func WithProgram(program *domain.Program) EnrollmentMockOption {
	return func(m *MockEnrollmentService) {
		m.Program = program
	}
}

// WithPrograms sets the default catalog returned by ListPrograms
func WithPrograms(programs []*domain.Program) EnrollmentMockOption {
	return func(m *MockEnrollmentService) {
		m.Programs = programs
	}
}

// WithEnrollmentError sets the default error returned by every operation
func WithEnrollmentError(err error) EnrollmentMockOption {
	return func(m *MockEnrollmentService) {
		m.Err = err
	}
}

// NewMockEnrollmentService creates a new MockEnrollmentService with the given options
func NewMockEnrollmentService(opts ...EnrollmentMockOption) *MockEnrollmentService {
	mock := &MockEnrollmentService{}

	for _, opt := range opts {
		opt(mock)
	}

	return mock
}

// Convenience constructors for common test scenarios

// NewMockEnrollmentServiceWithNotFound returns a mock that simulates a missing enrollment
func NewMockEnrollmentServiceWithNotFound() *MockEnrollmentService {
	return NewMockEnrollmentService(
		WithEnrollmentError(store.ErrEnrollmentNotFound),
	)
}

// NewMockEnrollmentServiceWithNotOwned returns a mock that simulates an enrollment owned by another user
func NewMockEnrollmentServiceWithNotOwned() *MockEnrollmentService {
	return NewMockEnrollmentService(
		WithEnrollmentError(service.ErrEnrollmentNotOwned),
	)
}

// NewMockEnrollmentServiceWithNoActiveEnrollment returns a mock that simulates a user with no active enrollment
func NewMockEnrollmentServiceWithNoActiveEnrollment() *MockEnrollmentService {
	return NewMockEnrollmentService(
		WithEnrollmentError(service.ErrNoActiveEnrollment),
	)
}

// NewMockEnrollmentServiceWithProgramNotFound returns a mock that simulates an unknown catalog program
func NewMockEnrollmentServiceWithProgramNotFound() *MockEnrollmentService {
	return NewMockEnrollmentService(
		WithEnrollmentError(store.ErrProgramNotFound),
	)
}
