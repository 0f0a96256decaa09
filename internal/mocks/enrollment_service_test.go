package mocks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/service"
	"github.com/verdanthq/verdant-api/internal/store"
)

func TestMockEnrollmentService(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	enrollmentID := uuid.New()
	now := time.Now().UTC()

	sampleProgram := &domain.Program{
		ID:           "reset-14",
		Title:        "14-Day Reset",
		DurationDays: 14,
		Days: []domain.ProgramDay{
			{Day: 1, ItemIDs: []string{"stretch-basics", "breath-intro"}},
			{Day: 2, ItemIDs: []string{"mobility-flow"}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	sampleStatus := &service.EnrollmentStatus{
		Enrollment: &domain.ProgramEnrollment{
			ID:         enrollmentID,
			UserID:     userID,
			ProgramID:  sampleProgram.ID,
			StartDate:  now.AddDate(0, 0, -3),
			CurrentDay: 4,
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		Program:      sampleProgram,
		EffectiveDay: 4,
	}

	sampleDay := &service.DayStatus{
		Day:              2,
		Completed:        true,
		CompletedItemIDs: []string{"mobility-flow"},
	}

	customErr := errors.New("custom error")

	t.Run("Default Values", func(t *testing.T) {
		mock := NewMockEnrollmentService(
			WithEnrollmentStatus(sampleStatus),
			WithDayStatus(sampleDay),
			WithEnrollmentError(nil),
		)

		status, err := mock.Enroll(ctx, userID, sampleProgram.ID)
		assert.NoError(t, err)
		assert.Equal(t, sampleStatus, status)

		status, err = mock.CompleteItem(ctx, userID, enrollmentID, "mobility-flow", 2)
		assert.NoError(t, err)
		assert.Equal(t, sampleStatus, status)
		assert.Equal(t, 1, mock.CompleteItemCalls.Count)
		assert.Equal(t, "mobility-flow", mock.CompleteItemCalls.ItemIDs[0])
		assert.Equal(t, 2, mock.CompleteItemCalls.Days[0])

		day, err := mock.DayStatus(ctx, userID, enrollmentID, 2)
		assert.NoError(t, err)
		assert.Equal(t, sampleDay, day)
	})

	t.Run("Custom Functions", func(t *testing.T) {
		mock := NewMockEnrollmentService(
			WithEnrollmentStatus(sampleStatus),
		)
		mock.CompleteItemFn = func(
			ctx context.Context,
			userID, enrollmentID uuid.UUID,
			itemID string,
			day int,
		) (*service.EnrollmentStatus, error) {
			if day > sampleProgram.DurationDays {
				return nil, customErr
			}
			return sampleStatus, nil
		}

		status, err := mock.CompleteItem(ctx, userID, enrollmentID, "mobility-flow", 2)
		assert.NoError(t, err)
		assert.Equal(t, sampleStatus, status)

		status, err = mock.CompleteItem(ctx, userID, enrollmentID, "mobility-flow", 99)
		assert.Error(t, err)
		assert.Equal(t, customErr, err)
		assert.Nil(t, status)

		// Tracking records the call even when the custom function fails it.
		assert.Equal(t, 2, mock.CompleteItemCalls.Count)
	})

	t.Run("Reset", func(t *testing.T) {
		mock := NewMockEnrollmentService()

		_, _ = mock.CompleteItem(ctx, userID, enrollmentID, "stretch-basics", 1)
		_, _ = mock.CompleteDay(ctx, userID, enrollmentID, 1)
		_ = mock.Abandon(ctx, userID, enrollmentID)

		assert.Equal(t, 1, mock.CompleteItemCalls.Count)
		assert.Equal(t, 1, mock.CompleteDayCalls.Count)
		assert.Equal(t, 1, mock.AbandonCalls.Count)

		mock.Reset()

		assert.Equal(t, 0, mock.CompleteItemCalls.Count)
		assert.Equal(t, 0, mock.CompleteDayCalls.Count)
		assert.Equal(t, 0, mock.AbandonCalls.Count)
		assert.Empty(t, mock.CompleteItemCalls.ItemIDs)
		assert.Empty(t, mock.AbandonCalls.EnrollmentIDs)
	})

	t.Run("Convenience Constructors", func(t *testing.T) {
		notFoundMock := NewMockEnrollmentServiceWithNotFound()
		_, err := notFoundMock.Get(ctx, userID, enrollmentID)
		assert.Equal(t, store.ErrEnrollmentNotFound, err)

		notOwnedMock := NewMockEnrollmentServiceWithNotOwned()
		_, err = notOwnedMock.Get(ctx, userID, enrollmentID)
		assert.Equal(t, service.ErrEnrollmentNotOwned, err)

		noActiveMock := NewMockEnrollmentServiceWithNoActiveEnrollment()
		_, err = noActiveMock.GetActive(ctx, userID)
		assert.Equal(t, service.ErrNoActiveEnrollment, err)

		programMock := NewMockEnrollmentServiceWithProgramNotFound()
		_, err = programMock.GetProgram(ctx, "missing-program")
		assert.Equal(t, store.ErrProgramNotFound, err)
	})
}
