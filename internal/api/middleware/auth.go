package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/verdanthq/verdant-api/internal/api/shared"
	"github.com/verdanthq/verdant-api/internal/redact"
	"github.com/verdanthq/verdant-api/internal/service/auth"
)

// AuthMiddleware guards routes behind bearer-token authentication.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware around the JWT service.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// bearerToken pulls the token out of an "Authorization: Bearer <token>"
// header. The second return distinguishes a missing header from a
// malformed one.
func bearerToken(r *http.Request) (token string, present bool, wellFormed bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false, false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", true, false
	}
	return parts[1], true, true
}

// Authenticate validates the request's access token and stores the
// authenticated user ID in the context for the handlers downstream.
// Validation errors arrive wrapped from the JWT service, so matching
// uses errors.Is, and everything logged goes through redact first.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, present, wellFormed := bearerToken(r)
		if !present {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}
		if !wellFormed {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			m.rejectToken(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rejectToken maps a validation failure to its response. Client-caused
// failures answer 401; anything unrecognized is treated as an internal
// fault and answers 500.
func (m *AuthMiddleware) rejectToken(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		slog.Debug("expired token rejected", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
	case errors.Is(err, auth.ErrTokenNotYetValid):
		slog.Debug("premature token rejected", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Token not yet valid")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrWrongTokenType):
		slog.Warn("invalid token rejected", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
	default:
		slog.Error("failed to validate token", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
	}
}

// GetUserID extracts the authenticated user ID from the request context.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	return userID, ok
}
