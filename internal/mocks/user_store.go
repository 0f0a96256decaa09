package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/store"
)

// MockUserStore implements store.UserStore over an in-memory map keyed
// by email. Set a Fn field to override one method; the map-backed
// defaults cover the registration flow (duplicate emails rejected,
// lookups by ID scanning the map).
type MockUserStore struct {
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateFn     func(ctx context.Context, user *domain.User) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error

	Users map[string]*domain.User
}

// NewMockUserStore creates a MockUserStore with an empty user map.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{Users: make(map[string]*domain.User)}
}

var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if _, exists := m.Users[user.Email]; exists {
		return store.ErrEmailExists
	}
	m.Users[user.Email] = user
	return nil
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	user, exists := m.Users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	for email, existing := range m.Users {
		if existing.ID != user.ID {
			continue
		}
		if email != user.Email {
			if _, taken := m.Users[user.Email]; taken {
				return store.ErrEmailExists
			}
			delete(m.Users, email)
		}
		m.Users[user.Email] = user
		return nil
	}
	return store.ErrUserNotFound
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	for email, user := range m.Users {
		if user.ID == id {
			delete(m.Users, email)
			return nil
		}
	}
	return store.ErrUserNotFound
}

// WithTx returns the mock itself; there is no transaction to bind.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// MockLoginUserStore serves login tests: it knows exactly one account
// and answers GetByEmail for it. Every other method is a stub.
type MockLoginUserStore struct {
	UserID         uuid.UUID
	UserEmail      string
	HashedPassword string
}

// NewLoginMockUserStore creates a mock holding the one account login
// tests authenticate against.
func NewLoginMockUserStore(userID uuid.UUID, email, hashedPassword string) *MockLoginUserStore {
	return &MockLoginUserStore{
		UserID:         userID,
		UserEmail:      email,
		HashedPassword: hashedPassword,
	}
}

var _ store.UserStore = (*MockLoginUserStore)(nil)

func (m *MockLoginUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email != m.UserEmail {
		return nil, store.ErrUserNotFound
	}
	return &domain.User{
		ID:             m.UserID,
		Email:          m.UserEmail,
		HashedPassword: m.HashedPassword,
	}, nil
}

func (m *MockLoginUserStore) Create(ctx context.Context, user *domain.User) error { return nil }

func (m *MockLoginUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return nil, nil
}

func (m *MockLoginUserStore) Update(ctx context.Context, user *domain.User) error { return nil }

func (m *MockLoginUserStore) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (m *MockLoginUserStore) WithTx(tx *sql.Tx) store.UserStore { return m }
