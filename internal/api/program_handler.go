package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/verdanthq/verdant-api/internal/api/shared"
	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/platform/logger"
	"github.com/verdanthq/verdant-api/internal/service"
)

// ProgramDayResponse represents one day of a program's content plan.
type ProgramDayResponse struct {
	Day     int      `json:"day"`
	ItemIDs []string `json:"item_ids"`
}

// ProgramResponse represents the full response data for a catalog program.
type ProgramResponse struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Description  string               `json:"description,omitempty"`
	DurationDays int                  `json:"duration_days"`
	Days         []ProgramDayResponse `json:"days"`
}

// ProgramSummaryResponse represents one catalog entry in the program list.
// Listing omits the per-day content plan; clients fetch it from the
// detail endpoint once a program is chosen.
type ProgramSummaryResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	DurationDays int    `json:"duration_days"`
}

// ProgramHandler handles program catalog HTTP requests.
// The catalog is read-only reference data, so the handler only exposes reads.
type ProgramHandler struct {
	enrollmentService service.EnrollmentService
	logger            *slog.Logger
}

// NewProgramHandler creates a new ProgramHandler
func NewProgramHandler(
	enrollmentService service.EnrollmentService,
	logger *slog.Logger,
) *ProgramHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProgramHandler")
	}

	return &ProgramHandler{
		enrollmentService: enrollmentService,
		logger:            logger.With(slog.String("component", "program_handler")),
	}
}

// ListPrograms handles GET /programs requests
func (h *ProgramHandler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.enrollmentService.ListPrograms(r.Context())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to list programs"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := make([]ProgramSummaryResponse, 0, len(programs))
	for _, program := range programs {
		response = append(response, ProgramSummaryResponse{
			ID:           program.ID,
			Title:        program.Title,
			Description:  program.Description,
			DurationDays: program.DurationDays,
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetProgram handles GET /programs/{programID} requests
func (h *ProgramHandler) GetProgram(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	// Program IDs are catalog slugs, not UUIDs.
	programID := chi.URLParam(r, "programID")
	if programID == "" {
		log.Warn("program ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Program ID is required")
		return
	}

	program, err := h.enrollmentService.GetProgram(r.Context(), programID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get program"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, programToResponse(program))
}

// programToResponse converts a domain.Program to a ProgramResponse
func programToResponse(program *domain.Program) ProgramResponse {
	days := make([]ProgramDayResponse, 0, len(program.Days))
	for _, day := range program.Days {
		days = append(days, ProgramDayResponse{
			Day:     day.Day,
			ItemIDs: copyItemIDs(day.ItemIDs),
		})
	}

	return ProgramResponse{
		ID:           program.ID,
		Title:        program.Title,
		Description:  program.Description,
		DurationDays: program.DurationDays,
		Days:         days,
	}
}
