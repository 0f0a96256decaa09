package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService issues and validates the two token kinds the API uses:
// short-lived access tokens checked by the authentication middleware,
// and longer-lived refresh tokens exchanged at the refresh endpoint.
// Each validator accepts only its own kind; handing it the other kind
// fails with ErrWrongTokenType.
type JWTService interface {
	// GenerateToken signs an access token for the user.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken checks an access token's signature, lifetime, and
	// type, returning its claims when all three hold.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken signs a refresh token for the user with the
	// configured refresh lifetime.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateRefreshToken checks a refresh token, returning its claims
	// when valid. Failures collapse to the refresh sentinel taxonomy.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshTokenWithExpiry signs a refresh token with an
	// explicit expiration time instead of the configured lifetime. Used
	// by expiry-sensitive flows and tests.
	GenerateRefreshTokenWithExpiry(ctx context.Context, userID uuid.UUID, expiryTime time.Time) (string, error)
}

// Claims carries what the API needs from a verified token: the user it
// was issued for, which kind of token it is, and the registered claims
// used for lifetime checks.
type Claims struct {
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenType is "access" or "refresh"; validators reject a mismatch.
	TokenType string `json:"type,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
