package api

import (
	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"          validate:"required,email"`
	Name     string `json:"name,omitempty" validate:"omitempty,max=100"`
	Password string `json:"password"       validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	// RefreshToken is the JWT refresh token to be used to obtain a new token pair
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	// AccessToken is the new JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the new JWT token used to obtain future access tokens
	RefreshToken string `json:"refresh_token"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`
}

// EnrollRequest defines the payload for starting a program enrollment.
type EnrollRequest struct {
	ProgramID string `json:"program_id" validate:"required"`
}

// CompleteItemRequest defines the payload for marking a content item
// completed on a program day.
type CompleteItemRequest struct {
	ItemID string `json:"item_id" validate:"required"`
	Day    int    `json:"day"     validate:"required,min=1"`
}

// LogDayRequest defines the payload for recording a daily activity log.
// Completed is a pointer so an explicit false survives required-field
// validation; logging an incomplete day is a valid request.
type LogDayRequest struct {
	Date      string `json:"date"      validate:"required"`
	Completed *bool  `json:"completed" validate:"required"`
	Effort    string `json:"effort"    validate:"omitempty,oneof=light moderate intense"`
}

// UpdateUserRequest defines the payload for the profile update endpoint.
type UpdateUserRequest struct {
	Name string `json:"name" validate:"max=100"`
}
