package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/verdanthq/verdant-api/internal/api/shared"
	"github.com/verdanthq/verdant-api/internal/platform/logger"
	"github.com/verdanthq/verdant-api/internal/redact"
	"github.com/verdanthq/verdant-api/internal/service"
)

// dateLayout is the wire format for calendar dates. Program days are
// calendar concepts, so dates cross the API without a time component.
const dateLayout = "2006-01-02"

// DayCompletionResponse represents one completed program day in an
// enrollment response.
type DayCompletionResponse struct {
	Day              int       `json:"day"`
	CompletedItemIDs []string  `json:"completed_item_ids"`
	CompletedAt      time.Time `json:"completed_at"`
}

// EnrollmentResponse represents the response data for an enrollment,
// flattened with the resolved program fields clients render against.
// CurrentDay carries the effective day computed for this request.
type EnrollmentResponse struct {
	ID             string                  `json:"id"`
	UserID         string                  `json:"user_id"`
	ProgramID      string                  `json:"program_id"`
	ProgramTitle   string                  `json:"program_title"`
	DurationDays   int                     `json:"duration_days"`
	StartDate      string                  `json:"start_date"`
	CurrentDay     int                     `json:"current_day"`
	IsActive       bool                    `json:"is_active"`
	CompletedAt    *time.Time              `json:"completed_at,omitempty"`
	DayCompletions []DayCompletionResponse `json:"day_completions"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// DayStatusResponse represents the completion projection for one program day.
type DayStatusResponse struct {
	Day              int      `json:"day"`
	Completed        bool     `json:"completed"`
	CompletedItemIDs []string `json:"completed_item_ids"`
}

// EnrollmentHandler handles enrollment-related HTTP requests
type EnrollmentHandler struct {
	enrollmentService service.EnrollmentService
	logger            *slog.Logger
}

// NewEnrollmentHandler creates a new EnrollmentHandler
func NewEnrollmentHandler(
	enrollmentService service.EnrollmentService,
	logger *slog.Logger,
) *EnrollmentHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for EnrollmentHandler")
	}

	return &EnrollmentHandler{
		enrollmentService: enrollmentService,
		logger:            logger.With(slog.String("component", "enrollment_handler")),
	}
}

// Enroll handles POST /enrollments requests.
// It starts an active enrollment in the requested program; any previous
// active enrollment the user had is deactivated by the service.
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserIDFromContext(w, r, log)
	if !ok {
		return
	}

	var req EnrollRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	status, err := h.enrollmentService.Enroll(r.Context(), userID, req.ProgramID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to enroll in program"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("enrollment created",
		slog.String("user_id", userID.String()),
		slog.String("enrollment_id", status.Enrollment.ID.String()),
		slog.String("program_id", req.ProgramID))
	shared.RespondWithJSON(w, r, http.StatusCreated, enrollmentToResponse(status))
}

// GetActive handles GET /enrollments/active requests.
// It retrieves the authenticated user's active enrollment with the current
// day recomputed from the calendar.
func (h *EnrollmentHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserIDFromContext(w, r, log)
	if !ok {
		return
	}

	status, err := h.enrollmentService.GetActive(r.Context(), userID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get active enrollment"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("retrieved active enrollment",
		slog.String("user_id", userID.String()),
		slog.String("enrollment_id", status.Enrollment.ID.String()),
		slog.Int("current_day", status.EffectiveDay))
	shared.RespondWithJSON(w, r, http.StatusOK, enrollmentToResponse(status))
}

// Get handles GET /enrollments/{id} requests.
func (h *EnrollmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, enrollmentID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	status, err := h.enrollmentService.Get(r.Context(), userID, enrollmentID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get enrollment"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, enrollmentToResponse(status))
}

// CompleteItem handles POST /enrollments/{id}/items requests.
// It marks a content item completed on a program day; marking the same
// item twice is a no-op.
func (h *EnrollmentHandler) CompleteItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, enrollmentID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req CompleteItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()),
			slog.String("enrollment_id", enrollmentID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	status, err := h.enrollmentService.CompleteItem(r.Context(), userID, enrollmentID, req.ItemID, req.Day)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to complete item"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("item completed",
		slog.String("user_id", userID.String()),
		slog.String("enrollment_id", enrollmentID.String()),
		slog.String("item_id", req.ItemID),
		slog.Int("day", req.Day))
	shared.RespondWithJSON(w, r, http.StatusOK, enrollmentToResponse(status))
}

// CompleteDay handles POST /enrollments/{id}/days/{day}/complete requests.
// Completing the final program day finalizes the enrollment.
func (h *EnrollmentHandler) CompleteDay(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, enrollmentID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	day, err := getPathDay(r, "day")
	if err != nil {
		log.Warn("invalid day parameter", slog.String("enrollment_id", enrollmentID.String()))
		HandleAPIError(w, r, err, "")
		return
	}

	status, err := h.enrollmentService.CompleteDay(r.Context(), userID, enrollmentID, day)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to complete day"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("day completed",
		slog.String("user_id", userID.String()),
		slog.String("enrollment_id", enrollmentID.String()),
		slog.Int("day", day),
		slog.Bool("finalized", status.Enrollment.IsFinalized()))
	shared.RespondWithJSON(w, r, http.StatusOK, enrollmentToResponse(status))
}

// DayStatus handles GET /enrollments/{id}/days/{day} requests.
// Days without a completion record report not-completed with an empty
// item list, never an error.
func (h *EnrollmentHandler) DayStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, enrollmentID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	day, err := getPathDay(r, "day")
	if err != nil {
		log.Warn("invalid day parameter", slog.String("enrollment_id", enrollmentID.String()))
		HandleAPIError(w, r, err, "")
		return
	}

	dayStatus, err := h.enrollmentService.DayStatus(r.Context(), userID, enrollmentID, day)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get day status"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DayStatusResponse{
		Day:              dayStatus.Day,
		Completed:        dayStatus.Completed,
		CompletedItemIDs: dayStatus.CompletedItemIDs,
	})
}

// Abandon handles POST /enrollments/{id}/abandon requests.
// It deactivates the enrollment without completing it.
func (h *EnrollmentHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, enrollmentID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.enrollmentService.Abandon(r.Context(), userID, enrollmentID); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to abandon enrollment"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Info("enrollment abandoned",
		slog.String("user_id", userID.String()),
		slog.String("enrollment_id", enrollmentID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// enrollmentToResponse converts a service.EnrollmentStatus to an
// EnrollmentResponse. CurrentDay carries the effective day, which can be
// ahead of the persisted cached day.
func enrollmentToResponse(status *service.EnrollmentStatus) EnrollmentResponse {
	enrollment := status.Enrollment

	completions := make([]DayCompletionResponse, 0, len(enrollment.DayCompletions))
	for _, record := range enrollment.DayCompletions {
		completions = append(completions, DayCompletionResponse{
			Day:              record.Day,
			CompletedItemIDs: copyItemIDs(record.CompletedItemIDs),
			CompletedAt:      record.CompletedAt,
		})
	}

	return EnrollmentResponse{
		ID:             enrollment.ID.String(),
		UserID:         enrollment.UserID.String(),
		ProgramID:      enrollment.ProgramID,
		ProgramTitle:   status.Program.Title,
		DurationDays:   status.Program.DurationDays,
		StartDate:      enrollment.StartDate.Format(dateLayout),
		CurrentDay:     status.EffectiveDay,
		IsActive:       enrollment.IsActive,
		CompletedAt:    enrollment.CompletedAt,
		DayCompletions: completions,
		CreatedAt:      enrollment.CreatedAt,
		UpdatedAt:      enrollment.UpdatedAt,
	}
}

// copyItemIDs returns a non-nil copy so responses always serialize item
// lists as JSON arrays.
func copyItemIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	return append(out, ids...)
}
