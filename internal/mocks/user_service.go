package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/store"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	// Custom behavior functions
	GetUserFn            func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetUserByEmailFn     func(ctx context.Context, email string) (*domain.User, error)
	CreateUserFn         func(ctx context.Context, email, name, password string) (*domain.User, error)
	UpdateUserNameFn     func(ctx context.Context, userID uuid.UUID, newName string) (*domain.User, error)
	UpdateUserEmailFn    func(ctx context.Context, userID uuid.UUID, newEmail string) error
	UpdateUserPasswordFn func(ctx context.Context, userID uuid.UUID, newPassword string) error
	DeleteUserFn         func(ctx context.Context, userID uuid.UUID) error

	// Default response values
	User *domain.User
	Err  error

	// Call tracking for verification
	UpdateUserNameCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times UpdateUserName was called
		Count int

		// Names contains all names passed to UpdateUserName calls
		Names []string

		// UserIDs contains all userIDs passed to UpdateUserName calls
		UserIDs []uuid.UUID
	}

	DeleteUserCalls struct {
		mu      sync.Mutex
		Count   int
		UserIDs []uuid.UUID
	}
}

// GetUser implements the service.UserService interface
func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.User == nil {
		return nil, store.ErrUserNotFound
	}
	return m.User, nil
}

// GetUserByEmail implements the service.UserService interface
func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetUserByEmailFn != nil {
		return m.GetUserByEmailFn(ctx, email)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.User == nil || m.User.Email != email {
		return nil, store.ErrUserNotFound
	}
	return m.User, nil
}

// CreateUser implements the service.UserService interface
func (m *MockUserService) CreateUser(
	ctx context.Context,
	email, name, password string,
) (*domain.User, error) {
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, email, name, password)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.User, nil
}

// UpdateUserName implements the service.UserService interface
func (m *MockUserService) UpdateUserName(
	ctx context.Context,
	userID uuid.UUID,
	newName string,
) (*domain.User, error) {
	m.UpdateUserNameCalls.mu.Lock()
	m.UpdateUserNameCalls.Count++
	m.UpdateUserNameCalls.Names = append(m.UpdateUserNameCalls.Names, newName)
	m.UpdateUserNameCalls.UserIDs = append(m.UpdateUserNameCalls.UserIDs, userID)
	m.UpdateUserNameCalls.mu.Unlock()

	if m.UpdateUserNameFn != nil {
		return m.UpdateUserNameFn(ctx, userID, newName)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.User == nil {
		return nil, store.ErrUserNotFound
	}

	updated := *m.User
	updated.Name = newName
	return &updated, nil
}

// UpdateUserEmail implements the service.UserService interface
func (m *MockUserService) UpdateUserEmail(ctx context.Context, userID uuid.UUID, newEmail string) error {
	if m.UpdateUserEmailFn != nil {
		return m.UpdateUserEmailFn(ctx, userID, newEmail)
	}
	return m.Err
}

// UpdateUserPassword implements the service.UserService interface
func (m *MockUserService) UpdateUserPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	if m.UpdateUserPasswordFn != nil {
		return m.UpdateUserPasswordFn(ctx, userID, newPassword)
	}
	return m.Err
}

// DeleteUser implements the service.UserService interface
func (m *MockUserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	m.DeleteUserCalls.mu.Lock()
	m.DeleteUserCalls.Count++
	m.DeleteUserCalls.UserIDs = append(m.DeleteUserCalls.UserIDs, userID)
	m.DeleteUserCalls.mu.Unlock()

	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, userID)
	}
	return m.Err
}

// Reset resets the call tracking state
func (m *MockUserService) Reset() {
	m.UpdateUserNameCalls.mu.Lock()
	m.UpdateUserNameCalls.Count = 0
	m.UpdateUserNameCalls.Names = nil
	m.UpdateUserNameCalls.UserIDs = nil
	m.UpdateUserNameCalls.mu.Unlock()

	m.DeleteUserCalls.mu.Lock()
	m.DeleteUserCalls.Count = 0
	m.DeleteUserCalls.UserIDs = nil
	m.DeleteUserCalls.mu.Unlock()
}

// NewMockUserServiceWithUser returns a mock primed with an existing user
func NewMockUserServiceWithUser(user *domain.User) *MockUserService {
	return &MockUserService{User: user}
}
