package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/domain/progress"
	"github.com/verdanthq/verdant-api/internal/events"
	"github.com/verdanthq/verdant-api/internal/store"
)

// MockEnrollmentRepository mocks the EnrollmentRepository interface
type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) Create(
	ctx context.Context,
	enrollment *domain.ProgramEnrollment,
) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.ProgramEnrollment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgramEnrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) GetByIDForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*domain.ProgramEnrollment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgramEnrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) GetActiveByUser(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.ProgramEnrollment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgramEnrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) Update(
	ctx context.Context,
	enrollment *domain.ProgramEnrollment,
) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) UpsertDayCompletion(
	ctx context.Context,
	enrollmentID uuid.UUID,
	record domain.DayCompletionRecord,
) error {
	args := m.Called(ctx, enrollmentID, record)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) DeactivateAllForUser(
	ctx context.Context,
	userID uuid.UUID,
) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) WithTx(tx *sql.Tx) EnrollmentRepository {
	args := m.Called(tx)
	return args.Get(0).(EnrollmentRepository)
}

func (m *MockEnrollmentRepository) DB() *sql.DB {
	args := m.Called()
	return args.Get(0).(*sql.DB)
}

// MockProgramRepository mocks the ProgramRepository interface
type MockProgramRepository struct {
	mock.Mock
}

func (m *MockProgramRepository) GetByID(ctx context.Context, id string) (*domain.Program, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Program), args.Error(1)
}

func (m *MockProgramRepository) List(ctx context.Context) ([]*domain.Program, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Program), args.Error(1)
}

// MockDailyLogRepository mocks the DailyLogRepository interface
type MockDailyLogRepository struct {
	mock.Mock
}

func (m *MockDailyLogRepository) Upsert(ctx context.Context, log *domain.DailyLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockDailyLogRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.DailyLog, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyLog), args.Error(1)
}

func (m *MockDailyLogRepository) ListByUserBetween(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]*domain.DailyLog, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyLog), args.Error(1)
}

func (m *MockDailyLogRepository) WithTx(tx *sql.Tx) DailyLogRepository {
	args := m.Called(tx)
	return args.Get(0).(DailyLogRepository)
}

// MockSummaryCache mocks the SummaryCache interface
type MockSummaryCache struct {
	mock.Mock
}

func (m *MockSummaryCache) GetSummary(
	ctx context.Context,
	userID uuid.UUID,
) (*progress.Summary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*progress.Summary), args.Error(1)
}

func (m *MockSummaryCache) SetSummary(
	ctx context.Context,
	userID uuid.UUID,
	summary progress.Summary,
) error {
	args := m.Called(ctx, userID, summary)
	return args.Error(0)
}

func (m *MockSummaryCache) InvalidateSummary(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockEventEmitter mocks the events.EventEmitter interface
type MockEventEmitter struct {
	mock.Mock
}

func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockUserStore mocks the store.UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	args := m.Called(tx)
	return args.Get(0).(store.UserStore)
}
