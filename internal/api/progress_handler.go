package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/verdanthq/verdant-api/internal/api/shared"
	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/platform/logger"
	"github.com/verdanthq/verdant-api/internal/service"
)

// DailyLogResponse represents the response data for a daily activity log
type DailyLogResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	LogDate   string    `json:"log_date"`
	Completed bool      `json:"completed"`
	Effort    string    `json:"effort,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SummaryResponse represents the streak summary response data
type SummaryResponse struct {
	CurrentStreak    int `json:"current_streak"`
	LongestStreak    int `json:"longest_streak"`
	TotalCompletions int `json:"total_completions"`
}

// ProgressHandler handles daily log and progress aggregation HTTP requests
type ProgressHandler struct {
	progressService service.ProgressService
	logger          *slog.Logger
	nowFn           func() time.Time
}

// NewProgressHandler creates a new ProgressHandler
func NewProgressHandler(
	progressService service.ProgressService,
	logger *slog.Logger,
) *ProgressHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProgressHandler")
	}

	return &ProgressHandler{
		progressService: progressService,
		logger:          logger.With(slog.String("component", "progress_handler")),
		nowFn:           time.Now,
	}
}

// LogDay handles POST /logs requests.
// It records whether the user completed qualifying activity on a calendar
// date; logging the same date twice amends the first entry.
func (h *ProgressHandler) LogDay(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserIDFromContext(w, r, log)
	if !ok {
		return
	}

	var req LogDayRequest
	if !parseAndValidateRequest(w, r, &req, log) {
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		log.Warn("invalid date format",
			slog.String("user_id", userID.String()),
			slog.String("date", req.Date))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	entry, err := h.progressService.LogDay(
		r.Context(), userID, date, *req.Completed, domain.EffortLevel(req.Effort))
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to log day"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("daily log recorded",
		slog.String("user_id", userID.String()),
		slog.String("log_date", req.Date),
		slog.Bool("completed", *req.Completed))
	shared.RespondWithJSON(w, r, http.StatusOK, dailyLogToResponse(entry))
}

// Summary handles GET /progress/summary requests.
// It aggregates the user's full activity history into streak figures.
func (h *ProgressHandler) Summary(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserIDFromContext(w, r, log)
	if !ok {
		return
	}

	summary, err := h.progressService.Summary(r.Context(), userID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get progress summary"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SummaryResponse{
		CurrentStreak:    summary.CurrentStreak,
		LongestStreak:    summary.LongestStreak,
		TotalCompletions: summary.TotalCompletions,
	})
}

// Calendar handles GET /progress/calendar requests.
// Year and month query parameters default to the current month when absent.
func (h *ProgressHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserIDFromContext(w, r, log)
	if !ok {
		return
	}

	year, month, err := h.calendarMonth(r)
	if err != nil {
		log.Warn("invalid calendar query",
			slog.String("user_id", userID.String()),
			slog.String("year", r.URL.Query().Get("year")),
			slog.String("month", r.URL.Query().Get("month")))
		HandleAPIError(w, r, err, "")
		return
	}

	view, err := h.progressService.Calendar(r.Context(), userID, year, month)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to build calendar"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	// MonthView is already shaped for rendering; serialize it directly.
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// calendarMonth resolves the year/month query parameters, defaulting both
// to the current month. Month range checking stays in the progress
// service; only non-numeric values are rejected here.
func (h *ProgressHandler) calendarMonth(r *http.Request) (int, time.Month, error) {
	now := h.nowFn()
	year := now.Year()
	month := now.Month()

	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, domain.NewValidationError("year", "must be an integer", domain.ErrValidation)
		}
		year = parsed
	}

	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, domain.NewValidationError("month", "must be an integer", domain.ErrValidation)
		}
		month = time.Month(parsed)
	}

	return year, month, nil
}

// dailyLogToResponse converts a domain.DailyLog to a DailyLogResponse
func dailyLogToResponse(entry *domain.DailyLog) DailyLogResponse {
	return DailyLogResponse{
		ID:        entry.ID.String(),
		UserID:    entry.UserID.String(),
		LogDate:   entry.LogDate.Format(dateLayout),
		Completed: entry.Completed,
		Effort:    string(entry.Effort),
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}
