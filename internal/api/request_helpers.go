package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/verdanthq/verdant-api/internal/api/shared"
	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/platform/logger"
)

// getUserIDFromContext extracts the authenticated user's UUID from the
// request context, where the authentication middleware placed it.
// Returns a zero UUID and false if the user ID is missing or invalid.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// getPathUUID extracts a UUID from the named URL path parameter, handling
// the missing and malformed cases with field-level validation errors.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// getPathDay extracts a program day number from the named URL path
// parameter. Range checking against the program duration belongs to the
// domain; this only rejects values that are not positive integers.
func getPathDay(r *http.Request, paramName string) (int, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	day, err := strconv.Atoi(pathParam)
	if err != nil || day < 1 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrValidation)
	}

	return day, nil
}

// handleUserIDFromContext extracts the authenticated user's UUID from the
// request context, writing a 401 response and returning false when it is
// missing or invalid.
func handleUserIDFromContext(
	w http.ResponseWriter,
	r *http.Request,
	log *slog.Logger,
) (uuid.UUID, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}

	return userID, true
}

// handleUserIDAndPathUUID is a composite helper that extracts both the user
// ID from context and a UUID from the path parameters. It writes an error
// response and returns false if either extraction fails.
func handleUserIDAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (uuid.UUID, uuid.UUID, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	userID, ok := handleUserIDFromContext(w, r, log)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	pathID, err := getPathUUID(r, paramName)
	if err != nil {
		logMsg := "invalid path parameter"
		if paramName != "" {
			logMsg = "invalid " + paramName
		}
		log.Warn(logMsg, slog.String("param_name", paramName), slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, pathID, true
}

// parseAndValidateRequest decodes the JSON body into req and validates it,
// writing a 400 response and returning false on either failure.
func parseAndValidateRequest(
	w http.ResponseWriter,
	r *http.Request,
	req interface{},
	log *slog.Logger,
) bool {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	if err := shared.DecodeJSON(r, req); err != nil {
		log.Debug("failed to decode request body")
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}

	if err := shared.Validate.Struct(req); err != nil {
		HandleValidationError(w, r, err)
		return false
	}

	return true
}
