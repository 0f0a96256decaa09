package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/verdanthq/verdant-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService with canned answers. The
// value fields serve the common cases (a fixed token pair, one error for
// generation and one for validation); a Fn field takes over its method
// entirely when a test needs per-call behavior, such as rejecting only
// the refresh token.
type MockJWTService struct {
	GenerateTokenFn                  func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn                  func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateRefreshTokenFn           func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateRefreshTokenFn           func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateRefreshTokenWithExpiryFn func(ctx context.Context, userID uuid.UUID, expiryTime time.Time) (string, error)

	Token        string
	RefreshToken string
	Err          error
	ValidateErr  error
	Claims       *auth.Claims
}

var _ auth.JWTService = (*MockJWTService)(nil)

func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	return m.Token, m.Err
}

func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}

func (m *MockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateRefreshTokenFn != nil {
		return m.GenerateRefreshTokenFn(ctx, userID)
	}
	return m.RefreshToken, m.Err
}

func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}

func (m *MockJWTService) GenerateRefreshTokenWithExpiry(ctx context.Context, userID uuid.UUID, expiryTime time.Time) (string, error) {
	if m.GenerateRefreshTokenWithExpiryFn != nil {
		return m.GenerateRefreshTokenWithExpiryFn(ctx, userID, expiryTime)
	}
	return m.RefreshToken, m.Err
}
