package task

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/task/mocks"
)

// createMailerMock creates a mailer mock for testing
func createMailerMock(
	sendFunc func(ctx context.Context, to, name, programTitle string, durationDays int) error,
) *mocks.Mailer {
	return &mocks.Mailer{
		SendCompletionNoticeFunc: sendFunc,
	}
}

// finalizedEnrollment builds an enrollment that finished its program
func finalizedEnrollment(id, userID uuid.UUID, programID string) *domain.ProgramEnrollment {
	completedAt := time.Date(2024, 6, 21, 8, 30, 0, 0, time.UTC)
	return &domain.ProgramEnrollment{
		ID:          id,
		UserID:      userID,
		ProgramID:   programID,
		StartDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CurrentDay:  21,
		IsActive:    false,
		CompletedAt: &completedAt,
	}
}

func TestNewCompletionNoticeTask(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	validEnrollmentID := uuid.New()

	t.Run("creates task with valid parameters", func(t *testing.T) {
		enrollments := &mocks.EnrollmentReader{}
		users := &mocks.UserReader{}
		programs := &mocks.ProgramReader{}
		mailer := createMailerMock(nil)

		task, err := NewCompletionNoticeTask(validEnrollmentID, enrollments, users, programs, mailer, logger)

		require.NoError(t, err)
		assert.NotNil(t, task)
		assert.Equal(t, validEnrollmentID, task.enrollmentID)
		assert.Equal(t, TaskStatus(statusPending), task.Status())
		assert.Equal(t, TaskTypeCompletionNotice, task.Type())
		assert.NotEqual(t, uuid.Nil, task.ID())
	})

	t.Run("fails with nil enrollment reader", func(t *testing.T) {
		users := &mocks.UserReader{}
		programs := &mocks.ProgramReader{}
		mailer := createMailerMock(nil)

		task, err := NewCompletionNoticeTask(validEnrollmentID, nil, users, programs, mailer, logger)

		assert.Error(t, err)
		assert.Equal(t, ErrNilEnrollmentReader, err)
		assert.Nil(t, task)
	})

	t.Run("fails with nil user reader", func(t *testing.T) {
		enrollments := &mocks.EnrollmentReader{}
		programs := &mocks.ProgramReader{}
		mailer := createMailerMock(nil)

		task, err := NewCompletionNoticeTask(validEnrollmentID, enrollments, nil, programs, mailer, logger)

		assert.Error(t, err)
		assert.Equal(t, ErrNilUserReader, err)
		assert.Nil(t, task)
	})

	t.Run("fails with nil program reader", func(t *testing.T) {
		enrollments := &mocks.EnrollmentReader{}
		users := &mocks.UserReader{}
		mailer := createMailerMock(nil)

		task, err := NewCompletionNoticeTask(validEnrollmentID, enrollments, users, nil, mailer, logger)

		assert.Error(t, err)
		assert.Equal(t, ErrNilProgramReader, err)
		assert.Nil(t, task)
	})

	t.Run("fails with nil mailer", func(t *testing.T) {
		enrollments := &mocks.EnrollmentReader{}
		users := &mocks.UserReader{}
		programs := &mocks.ProgramReader{}

		task, err := NewCompletionNoticeTask(validEnrollmentID, enrollments, users, programs, nil, logger)

		assert.Error(t, err)
		assert.Equal(t, ErrNilMailer, err)
		assert.Nil(t, task)
	})

	t.Run("fails with nil logger", func(t *testing.T) {
		enrollments := &mocks.EnrollmentReader{}
		users := &mocks.UserReader{}
		programs := &mocks.ProgramReader{}
		mailer := createMailerMock(nil)

		task, err := NewCompletionNoticeTask(validEnrollmentID, enrollments, users, programs, mailer, nil)

		assert.Error(t, err)
		assert.Equal(t, ErrNilLogger, err)
		assert.Nil(t, task)
	})

	t.Run("fails with nil enrollment ID", func(t *testing.T) {
		enrollments := &mocks.EnrollmentReader{}
		users := &mocks.UserReader{}
		programs := &mocks.ProgramReader{}
		mailer := createMailerMock(nil)

		task, err := NewCompletionNoticeTask(uuid.Nil, enrollments, users, programs, mailer, logger)

		assert.Error(t, err)
		assert.Equal(t, ErrEmptyEnrollmentID, err)
		assert.Nil(t, task)
	})
}

func TestCompletionNoticeTaskPayload(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	validEnrollmentID := uuid.New()
	enrollments := &mocks.EnrollmentReader{}
	users := &mocks.UserReader{}
	programs := &mocks.ProgramReader{}
	mailer := createMailerMock(nil)

	task, err := NewCompletionNoticeTask(validEnrollmentID, enrollments, users, programs, mailer, logger)
	require.NoError(t, err)

	// Test payload serialization
	payload := task.Payload()
	assert.NotEmpty(t, payload)

	// Verify payload contents
	var data completionNoticePayload
	err = json.Unmarshal(payload, &data)
	require.NoError(t, err)
	assert.Equal(t, validEnrollmentID, data.EnrollmentID)
}

func TestCompletionNoticeTask_Execute(t *testing.T) {
	t.Run("successfully delivers notice", func(t *testing.T) {
		// Setup mocks and data
		enrollmentID := uuid.New()
		userID := uuid.New()
		enrollment := finalizedEnrollment(enrollmentID, userID, "reset-21")
		user := &domain.User{
			ID:    userID,
			Email: "ada@example.com",
			Name:  "Ada",
		}
		program := &domain.Program{
			ID:           "reset-21",
			Title:        "21-Day Reset",
			DurationDays: 21,
		}

		enrollments := &mocks.EnrollmentReader{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ProgramEnrollment, error) {
				return enrollment, nil
			},
		}
		users := &mocks.UserReader{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				return user, nil
			},
		}
		programs := &mocks.ProgramReader{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Program, error) {
				return program, nil
			},
		}

		var sentTo, sentName, sentTitle string
		var sentDuration int
		mailer := createMailerMock(func(ctx context.Context, to, name, programTitle string, durationDays int) error {
			sentTo = to
			sentName = name
			sentTitle = programTitle
			sentDuration = durationDays
			return nil
		})

		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

		// Create and execute task
		task, err := NewCompletionNoticeTask(enrollmentID, enrollments, users, programs, mailer, logger)
		require.NoError(t, err)

		err = task.Execute(context.Background())

		// Assertions
		assert.NoError(t, err)
		assert.Equal(t, TaskStatus(statusCompleted), task.Status())
		assert.Equal(t, "ada@example.com", sentTo)
		assert.Equal(t, "Ada", sentName)
		assert.Equal(t, "21-Day Reset", sentTitle)
		assert.Equal(t, 21, sentDuration)
	})

	t.Run("skips enrollment that lost its completion stamp", func(t *testing.T) {
		// Enrollment restarted between the event and the task run
		enrollmentID := uuid.New()
		enrollment := finalizedEnrollment(enrollmentID, uuid.New(), "reset-21")
		enrollment.CompletedAt = nil

		enrollments := &mocks.EnrollmentReader{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ProgramEnrollment, error) {
				return enrollment, nil
			},
		}
		users := &mocks.UserReader{}
		programs := &mocks.ProgramReader{}
		mailer := createMailerMock(func(ctx context.Context, to, name, programTitle string, durationDays int) error {
			t.Error("mailer should not be called for an incomplete enrollment")
			return nil
		})

		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

		task, err := NewCompletionNoticeTask(enrollmentID, enrollments, users, programs, mailer, logger)
		require.NoError(t, err)

		err = task.Execute(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, TaskStatus(statusCompleted), task.Status())
	})

	t.Run("handles enrollment not found error", func(t *testing.T) {
		enrollmentID := uuid.New()
		notFoundErr := errors.New("enrollment not found")

		enrollments := &mocks.EnrollmentReader{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ProgramEnrollment, error) {
				return nil, notFoundErr
			},
		}
		users := &mocks.UserReader{}
		programs := &mocks.ProgramReader{}
		mailer := createMailerMock(nil)
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

		task, err := NewCompletionNoticeTask(enrollmentID, enrollments, users, programs, mailer, logger)
		require.NoError(t, err)

		err = task.Execute(context.Background())

		assert.Error(t, err)
		assert.ErrorContains(t, err, "enrollment not found")
		assert.Equal(t, TaskStatus(statusFailed), task.Status())
	})

	t.Run("handles user lookup error", func(t *testing.T) {
		enrollmentID := uuid.New()
		enrollment := finalizedEnrollment(enrollmentID, uuid.New(), "reset-21")
		lookupErr := errors.New("user lookup error")

		enrollments := &mocks.EnrollmentReader{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ProgramEnrollment, error) {
				return enrollment, nil
			},
		}
		users := &mocks.UserReader{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				return nil, lookupErr
			},
		}
		programs := &mocks.ProgramReader{}
		mailer := createMailerMock(nil)
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

		task, err := NewCompletionNoticeTask(enrollmentID, enrollments, users, programs, mailer, logger)
		require.NoError(t, err)

		err = task.Execute(context.Background())

		assert.Error(t, err)
		assert.ErrorContains(t, err, "user lookup error")
		assert.Equal(t, TaskStatus(statusFailed), task.Status())
	})

	t.Run("handles program lookup error", func(t *testing.T) {
		enrollmentID := uuid.New()
		userID := uuid.New()
		enrollment := finalizedEnrollment(enrollmentID, userID, "reset-21")
		lookupErr := errors.New("program lookup error")

		enrollments := &mocks.EnrollmentReader{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ProgramEnrollment, error) {
				return enrollment, nil
			},
		}
		users := &mocks.UserReader{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				return &domain.User{ID: userID, Email: "ada@example.com"}, nil
			},
		}
		programs := &mocks.ProgramReader{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Program, error) {
				return nil, lookupErr
			},
		}
		mailer := createMailerMock(nil)
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

		task, err := NewCompletionNoticeTask(enrollmentID, enrollments, users, programs, mailer, logger)
		require.NoError(t, err)

		err = task.Execute(context.Background())

		assert.Error(t, err)
		assert.ErrorContains(t, err, "program lookup error")
		assert.Equal(t, TaskStatus(statusFailed), task.Status())
	})

	t.Run("handles mailer failure", func(t *testing.T) {
		enrollmentID := uuid.New()
		userID := uuid.New()
		enrollment := finalizedEnrollment(enrollmentID, userID, "reset-21")
		sendErr := errors.New("sendgrid unavailable")

		enrollments := &mocks.EnrollmentReader{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ProgramEnrollment, error) {
				return enrollment, nil
			},
		}
		users := &mocks.UserReader{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				return &domain.User{ID: userID, Email: "ada@example.com"}, nil
			},
		}
		programs := &mocks.ProgramReader{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Program, error) {
				return &domain.Program{ID: "reset-21", Title: "21-Day Reset", DurationDays: 21}, nil
			},
		}
		mailer := createMailerMock(func(ctx context.Context, to, name, programTitle string, durationDays int) error {
			return sendErr
		})
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

		task, err := NewCompletionNoticeTask(enrollmentID, enrollments, users, programs, mailer, logger)
		require.NoError(t, err)

		err = task.Execute(context.Background())

		assert.Error(t, err)
		assert.ErrorContains(t, err, "sendgrid unavailable")
		assert.Equal(t, TaskStatus(statusFailed), task.Status())
	})

	t.Run("fails when context is already cancelled", func(t *testing.T) {
		enrollmentID := uuid.New()

		enrollments := &mocks.EnrollmentReader{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ProgramEnrollment, error) {
				t.Error("lookup should not run with a cancelled context")
				return nil, nil
			},
		}
		users := &mocks.UserReader{}
		programs := &mocks.ProgramReader{}
		mailer := createMailerMock(nil)
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

		task, err := NewCompletionNoticeTask(enrollmentID, enrollments, users, programs, mailer, logger)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err = task.Execute(ctx)

		assert.Error(t, err)
		assert.ErrorContains(t, err, "cancelled by context")
		assert.Equal(t, TaskStatus(statusFailed), task.Status())
	})
}

func TestCompletionNoticeTaskFactory(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	enrollments := &mocks.EnrollmentReader{}
	users := &mocks.UserReader{}
	programs := &mocks.ProgramReader{}
	mailer := createMailerMock(nil)

	factory := NewCompletionNoticeTaskFactory(enrollments, users, programs, mailer, logger)

	t.Run("creates task for enrollment", func(t *testing.T) {
		enrollmentID := uuid.New()
		task, err := factory.CreateTask(enrollmentID)

		require.NoError(t, err)
		assert.Equal(t, TaskTypeCompletionNotice, task.Type())
		assert.NotEqual(t, uuid.Nil, task.ID())
	})

	t.Run("rejects nil enrollment ID", func(t *testing.T) {
		task, err := factory.CreateTask(uuid.Nil)

		assert.Error(t, err)
		assert.Equal(t, ErrEmptyEnrollmentID, err)
		assert.Nil(t, task)
	})

	t.Run("resolves persisted row back into a task", func(t *testing.T) {
		rowID := uuid.New()
		enrollmentID := uuid.New()
		payload, err := json.Marshal(completionNoticePayload{EnrollmentID: enrollmentID})
		require.NoError(t, err)

		task, err := factory.ResolveTask(rowID, TaskTypeCompletionNotice, payload)

		require.NoError(t, err)
		assert.Equal(t, rowID, task.ID(), "resolved task must keep the row's ID")
		assert.Equal(t, TaskTypeCompletionNotice, task.Type())

		var decoded completionNoticePayload
		require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
		assert.Equal(t, enrollmentID, decoded.EnrollmentID)
	})

	t.Run("rejects unknown task type", func(t *testing.T) {
		task, err := factory.ResolveTask(uuid.New(), "mystery_type", []byte(`{}`))

		assert.Error(t, err)
		assert.ErrorContains(t, err, "unknown task type")
		assert.Nil(t, task)
	})

	t.Run("rejects malformed payload", func(t *testing.T) {
		task, err := factory.ResolveTask(uuid.New(), TaskTypeCompletionNotice, []byte(`{broken`))

		assert.Error(t, err)
		assert.Nil(t, task)
	})
}
