package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verdanthq/verdant-api/internal/api/shared"
	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/domain/progress"
	"github.com/verdanthq/verdant-api/internal/mocks"
)

func testDailyLog(userID uuid.UUID) *domain.DailyLog {
	now := time.Now().UTC()
	return &domain.DailyLog{
		ID:        uuid.New(),
		UserID:    userID,
		LogDate:   time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
		Completed: true,
		Effort:    domain.EffortModerate,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestLogDay(t *testing.T) {
	userID := uuid.New()
	entry := testDailyLog(userID)
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name                string
		userIDInCtx         uuid.UUID
		requestBody         string
		serviceError        error
		expectedStatus      int
		expectedErrContains string
	}{
		{
			name:           "successful completed log",
			userIDInCtx:    userID,
			requestBody:    `{"date": "2026-03-14", "completed": true, "effort": "moderate"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "explicit incomplete log",
			userIDInCtx:    userID,
			requestBody:    `{"date": "2026-03-14", "completed": false}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:                "missing completed field",
			userIDInCtx:         userID,
			requestBody:         `{"date": "2026-03-14"}`,
			expectedStatus:      http.StatusBadRequest,
			expectedErrContains: "Invalid Completed",
		},
		{
			name:                "missing date",
			userIDInCtx:         userID,
			requestBody:         `{"completed": true}`,
			expectedStatus:      http.StatusBadRequest,
			expectedErrContains: "Invalid Date",
		},
		{
			name:                "malformed date",
			userIDInCtx:         userID,
			requestBody:         `{"date": "03/14/2026", "completed": true}`,
			expectedStatus:      http.StatusBadRequest,
			expectedErrContains: "Invalid date format, expected YYYY-MM-DD",
		},
		{
			name:                "unknown effort level",
			userIDInCtx:         userID,
			requestBody:         `{"date": "2026-03-14", "completed": true, "effort": "heroic"}`,
			expectedStatus:      http.StatusBadRequest,
			expectedErrContains: "Invalid Effort",
		},
		{
			name:                "invalid JSON",
			userIDInCtx:         userID,
			requestBody:         `{"date": `,
			expectedStatus:      http.StatusBadRequest,
			expectedErrContains: "Invalid request format",
		},
		{
			name:           "missing user ID",
			userIDInCtx:    uuid.Nil,
			requestBody:    `{"date": "2026-03-14", "completed": true}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:                "service error",
			userIDInCtx:         userID,
			requestBody:         `{"date": "2026-03-14", "completed": true}`,
			serviceError:        errors.New("database error"),
			expectedStatus:      http.StatusInternalServerError,
			expectedErrContains: "Failed to log day",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &mocks.MockProgressService{
				Entry:        entry,
				DefaultError: tt.serviceError,
			}
			handler := NewProgressHandler(mockService, testLogger)

			req := httptest.NewRequest("POST", "/api/logs", strings.NewReader(tt.requestBody))
			if tt.userIDInCtx != uuid.Nil {
				req = req.WithContext(
					context.WithValue(req.Context(), shared.UserIDContextKey, tt.userIDInCtx))
			}
			rr := httptest.NewRecorder()

			handler.LogDay(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			if tt.expectedErrContains != "" {
				var errResp shared.ErrorResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
				assert.Contains(t, errResp.Error, tt.expectedErrContains)
			}
		})
	}
}

func TestLogDayRecordsParsedDate(t *testing.T) {
	userID := uuid.New()
	entry := testDailyLog(userID)
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var (
		capturedUserID uuid.UUID
		capturedDate   time.Time
		capturedDone   bool
		capturedEffort domain.EffortLevel
	)
	mockService := &mocks.MockProgressService{
		LogDayFn: func(
			_ context.Context,
			uid uuid.UUID,
			date time.Time,
			completed bool,
			effort domain.EffortLevel,
		) (*domain.DailyLog, error) {
			capturedUserID = uid
			capturedDate = date
			capturedDone = completed
			capturedEffort = effort
			return entry, nil
		},
	}
	handler := NewProgressHandler(mockService, testLogger)

	body := `{"date": "2026-03-14", "completed": true, "effort": "intense"}`
	req := httptest.NewRequest("POST", "/api/logs", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))
	rr := httptest.NewRecorder()

	handler.LogDay(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, userID, capturedUserID)
	assert.True(t, capturedDate.Equal(time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)))
	assert.True(t, capturedDone)
	assert.Equal(t, domain.EffortIntense, capturedEffort)

	var response DailyLogResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	assert.Equal(t, entry.ID.String(), response.ID)
	assert.Equal(t, userID.String(), response.UserID)
	assert.Equal(t, "2026-03-14", response.LogDate)
	assert.True(t, response.Completed)
	assert.Equal(t, "moderate", response.Effort)
}

func TestProgressSummary(t *testing.T) {
	userID := uuid.New()
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name                string
		userIDInCtx         uuid.UUID
		summary             progress.Summary
		serviceError        error
		expectedStatus      int
		expectedErrContains string
	}{
		{
			name:        "successful summary",
			userIDInCtx: userID,
			summary: progress.Summary{
				CurrentStreak:    5,
				LongestStreak:    9,
				TotalCompletions: 42,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "empty history",
			userIDInCtx:    userID,
			summary:        progress.Summary{},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing user ID",
			userIDInCtx:    uuid.Nil,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:                "service error",
			userIDInCtx:         userID,
			serviceError:        errors.New("database error"),
			expectedStatus:      http.StatusInternalServerError,
			expectedErrContains: "Failed to get progress summary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &mocks.MockProgressService{
				StreakSummary: tt.summary,
				DefaultError:  tt.serviceError,
			}
			handler := NewProgressHandler(mockService, testLogger)

			req := httptest.NewRequest("GET", "/api/progress/summary", nil)
			if tt.userIDInCtx != uuid.Nil {
				req = req.WithContext(
					context.WithValue(req.Context(), shared.UserIDContextKey, tt.userIDInCtx))
			}
			rr := httptest.NewRecorder()

			handler.Summary(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			if tt.expectedStatus == http.StatusOK {
				var response SummaryResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
				assert.Equal(t, tt.summary.CurrentStreak, response.CurrentStreak)
				assert.Equal(t, tt.summary.LongestStreak, response.LongestStreak)
				assert.Equal(t, tt.summary.TotalCompletions, response.TotalCompletions)
			}

			if tt.expectedErrContains != "" {
				var errResp shared.ErrorResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
				assert.Contains(t, errResp.Error, tt.expectedErrContains)
			}
		})
	}
}

func TestProgressCalendar(t *testing.T) {
	userID := uuid.New()
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// March 2026 starts on a Sunday.
	view := progress.MonthView{
		Year:          2026,
		Month:         time.March,
		LeadingBlanks: 0,
		Cells: []progress.DayCell{
			{Day: 1, State: progress.DayStateCompleted},
			{Day: 2, State: progress.DayStatePlain},
			{Day: 3, State: progress.DayStateToday},
		},
	}

	t.Run("explicit year and month", func(t *testing.T) {
		var capturedYear int
		var capturedMonth time.Month
		mockService := &mocks.MockProgressService{
			CalendarFn: func(
				_ context.Context,
				_ uuid.UUID,
				year int,
				month time.Month,
			) (progress.MonthView, error) {
				capturedYear = year
				capturedMonth = month
				return view, nil
			},
		}
		handler := NewProgressHandler(mockService, testLogger)

		req := httptest.NewRequest("GET", "/api/progress/calendar?year=2026&month=3", nil)
		req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))
		rr := httptest.NewRecorder()

		handler.Calendar(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 2026, capturedYear)
		assert.Equal(t, time.March, capturedMonth)

		var response progress.MonthView
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
		assert.Equal(t, 2026, response.Year)
		assert.Equal(t, time.March, response.Month)
		assert.Equal(t, 0, response.LeadingBlanks)
		require.Len(t, response.Cells, 3)
		assert.Equal(t, progress.DayStateCompleted, response.Cells[0].State)
		assert.Equal(t, progress.DayStateToday, response.Cells[2].State)
	})

	t.Run("defaults to current month", func(t *testing.T) {
		var capturedYear int
		var capturedMonth time.Month
		mockService := &mocks.MockProgressService{
			CalendarFn: func(
				_ context.Context,
				_ uuid.UUID,
				year int,
				month time.Month,
			) (progress.MonthView, error) {
				capturedYear = year
				capturedMonth = month
				return view, nil
			},
		}
		handler := NewProgressHandler(mockService, testLogger)
		handler.nowFn = func() time.Time {
			return time.Date(2026, time.July, 20, 9, 30, 0, 0, time.UTC)
		}

		req := httptest.NewRequest("GET", "/api/progress/calendar", nil)
		req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))
		rr := httptest.NewRecorder()

		handler.Calendar(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 2026, capturedYear)
		assert.Equal(t, time.July, capturedMonth)
	})

	t.Run("non-numeric month", func(t *testing.T) {
		mockService := &mocks.MockProgressService{}
		handler := NewProgressHandler(mockService, testLogger)

		req := httptest.NewRequest("GET", "/api/progress/calendar?month=march", nil)
		req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))
		rr := httptest.NewRecorder()

		handler.Calendar(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Contains(t, errResp.Error, "Invalid month")
	})

	t.Run("non-numeric year", func(t *testing.T) {
		mockService := &mocks.MockProgressService{}
		handler := NewProgressHandler(mockService, testLogger)

		req := httptest.NewRequest("GET", "/api/progress/calendar?year=twenty", nil)
		req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))
		rr := httptest.NewRecorder()

		handler.Calendar(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Contains(t, errResp.Error, "Invalid year")
	})

	t.Run("month out of range", func(t *testing.T) {
		mockService := &mocks.MockProgressService{
			DefaultError: progress.ErrInvalidMonth,
		}
		handler := NewProgressHandler(mockService, testLogger)

		req := httptest.NewRequest("GET", "/api/progress/calendar?year=2026&month=13", nil)
		req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))
		rr := httptest.NewRecorder()

		handler.Calendar(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Contains(t, errResp.Error, "Invalid month")
	})

	t.Run("missing user ID", func(t *testing.T) {
		mockService := &mocks.MockProgressService{}
		handler := NewProgressHandler(mockService, testLogger)

		req := httptest.NewRequest("GET", "/api/progress/calendar", nil)
		rr := httptest.NewRecorder()

		handler.Calendar(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockService := &mocks.MockProgressService{
			DefaultError: errors.New("database error"),
		}
		handler := NewProgressHandler(mockService, testLogger)

		req := httptest.NewRequest("GET", "/api/progress/calendar?year=2026&month=3", nil)
		req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))
		rr := httptest.NewRecorder()

		handler.Calendar(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Contains(t, errResp.Error, "Failed to build calendar")
	})
}
