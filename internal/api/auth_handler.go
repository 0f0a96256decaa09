package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/verdanthq/verdant-api/internal/api/shared"
	"github.com/verdanthq/verdant-api/internal/config"
	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/platform/logger"
	"github.com/verdanthq/verdant-api/internal/redact"
	"github.com/verdanthq/verdant-api/internal/service/auth"
	"github.com/verdanthq/verdant-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	authConfig       *config.AuthConfig
	logger           *slog.Logger
	timeFn           func() time.Time
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
// The auth config supplies the token lifetime reported in responses.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	authConfig *config.AuthConfig,
) *AuthHandler {
	if authConfig == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("authConfig cannot be nil for AuthHandler")
	}

	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		authConfig:       authConfig,
		logger:           slog.Default().With(slog.String("component", "auth_handler")),
		timeFn:           time.Now,
	}
}

// WithTimeFunc overrides the clock used for token expiry timestamps.
func (h *AuthHandler) WithTimeFunc(timeFn func() time.Time) *AuthHandler {
	if timeFn != nil {
		h.timeFn = timeFn
	}
	return h
}

// generateTokenResponse issues a new access and refresh token pair for the
// user and computes the access token expiry from the configured lifetime.
func (h *AuthHandler) generateTokenResponse(
	ctx context.Context,
	userID uuid.UUID,
) (accessToken, refreshToken, expiresAt string, err error) {
	accessToken, err = h.jwtService.GenerateToken(ctx, userID)
	if err != nil {
		return "", "", "", fmt.Errorf("generating access token: %w", err)
	}

	refreshToken, err = h.jwtService.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return "", "", "", fmt.Errorf("generating refresh token: %w", err)
	}

	lifetime := time.Duration(h.authConfig.TokenLifetimeMinutes) * time.Minute
	expiresAt = h.timeFn().UTC().Add(lifetime).Format(time.RFC3339)

	return accessToken, refreshToken, expiresAt, nil
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	user, err := domain.NewUser(req.Email, req.Name, req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid user data", err)
		return
	}

	// The store hashes the password before persisting.
	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		log.Error("failed to create user",
			slog.String("error", redact.Error(err)),
			slog.String("email", req.Email))
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	accessToken, refreshToken, expiresAt, err := h.generateTokenResponse(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to generate authentication tokens", err)
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	})
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Same response as a bad password so the endpoint does not
			// reveal which emails are registered.
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error("failed to get user by email",
			slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to authenticate user", err)
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	accessToken, refreshToken, expiresAt, err := h.generateTokenResponse(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to generate authentication tokens", err)
		return
	}

	log.Debug("user logged in", slog.String("user_id", user.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	})
}

// RefreshToken handles the /auth/refresh endpoint. A valid refresh token
// yields a new token pair; the old refresh token is not tracked, so it
// remains valid until its own expiry.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RefreshTokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to validate refresh token"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	accessToken, refreshToken, expiresAt, err := h.generateTokenResponse(r.Context(), claims.UserID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to generate authentication tokens", err)
		return
	}

	log.Debug("token pair refreshed", slog.String("user_id", claims.UserID.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	})
}
