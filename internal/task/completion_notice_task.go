package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/verdanthq/verdant-api/internal/domain"
)

// Status constants for CompletionNoticeTask
// These match the TaskStatus values defined in task.go
const (
	statusPending    = "pending"
	statusProcessing = "processing"
	statusCompleted  = "completed"
	statusFailed     = "failed"
)

// Common errors
var (
	ErrNilEnrollmentReader = errors.New("enrollment reader cannot be nil")
	ErrNilUserReader       = errors.New("user reader cannot be nil")
	ErrNilProgramReader    = errors.New("program reader cannot be nil")
	ErrNilMailer           = errors.New("mailer cannot be nil")
	ErrNilLogger           = errors.New("logger cannot be nil")
	ErrEmptyEnrollmentID   = errors.New("enrollment ID cannot be empty")
)

// EnrollmentReader loads the enrollment the notice is about.
// The postgres enrollment store satisfies this directly.
type EnrollmentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProgramEnrollment, error)
}

// UserReader loads the recipient's account record.
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// ProgramReader loads program metadata for the notice body.
type ProgramReader interface {
	GetByID(ctx context.Context, id string) (*domain.Program, error)
}

// Mailer delivers completion notices to users.
type Mailer interface {
	SendCompletionNotice(ctx context.Context, to, name, programTitle string, durationDays int) error
}

// completionNoticePayload represents the serialized data stored in the task
type completionNoticePayload struct {
	EnrollmentID uuid.UUID `json:"enrollment_id"`
}

// CompletionNoticeTask implements the Task interface for emailing a user
// who has completed every day of a program
type CompletionNoticeTask struct {
	id           uuid.UUID
	enrollmentID uuid.UUID
	enrollments  EnrollmentReader
	users        UserReader
	programs     ProgramReader
	mailer       Mailer
	logger       *slog.Logger
	status       string
}

// NewCompletionNoticeTask creates a new completion notice task
func NewCompletionNoticeTask(
	enrollmentID uuid.UUID,
	enrollments EnrollmentReader,
	users UserReader,
	programs ProgramReader,
	mailer Mailer,
	logger *slog.Logger,
) (*CompletionNoticeTask, error) {
	return newCompletionNoticeTask(uuid.New(), enrollmentID, enrollments, users, programs, mailer, logger)
}

// newCompletionNoticeTask is the shared constructor. Recovery reuses it with
// the persisted row's ID so status updates keep targeting the same record.
func newCompletionNoticeTask(
	id uuid.UUID,
	enrollmentID uuid.UUID,
	enrollments EnrollmentReader,
	users UserReader,
	programs ProgramReader,
	mailer Mailer,
	logger *slog.Logger,
) (*CompletionNoticeTask, error) {
	// Validate dependencies
	if enrollments == nil {
		return nil, ErrNilEnrollmentReader
	}
	if users == nil {
		return nil, ErrNilUserReader
	}
	if programs == nil {
		return nil, ErrNilProgramReader
	}
	if mailer == nil {
		return nil, ErrNilMailer
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	// Validate enrollment ID
	if enrollmentID == uuid.Nil {
		return nil, ErrEmptyEnrollmentID
	}

	return &CompletionNoticeTask{
		id:           id,
		enrollmentID: enrollmentID,
		enrollments:  enrollments,
		users:        users,
		programs:     programs,
		mailer:       mailer,
		logger:       logger.With("task_type", TaskTypeCompletionNotice, "enrollment_id", enrollmentID),
		status:       statusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *CompletionNoticeTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *CompletionNoticeTask) Type() string {
	return TaskTypeCompletionNotice
}

// Payload returns the task data as a byte slice
func (t *CompletionNoticeTask) Payload() []byte {
	payload := completionNoticePayload{
		EnrollmentID: t.enrollmentID,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		// If marshal fails, return an empty payload with error logged
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}

	return data
}

// Status returns the current task status
// We convert the string to TaskStatus to fulfill the Task interface
func (t *CompletionNoticeTask) Status() TaskStatus {
	return TaskStatus(t.status)
}

// Execute loads the enrollment, its user, and its program, then delivers the
// completion email. The enrollment must still be finalized at execution time;
// a row that lost its completion stamp (for example, restarted by support)
// skips the send without failing the task.
func (t *CompletionNoticeTask) Execute(ctx context.Context) error {
	// Update task status to processing
	t.status = statusProcessing
	t.logger.Info("starting completion notice task")

	// Check for context cancellation
	if err := ctx.Err(); err != nil {
		t.status = statusFailed
		t.logger.Error("task cancelled by context", "error", err)
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	// 1. Retrieve the enrollment
	enrollment, err := t.enrollments.GetByID(ctx, t.enrollmentID)
	if err != nil {
		t.status = statusFailed
		t.logger.Error("failed to retrieve enrollment", "error", err)
		return fmt.Errorf("failed to retrieve enrollment: %w", err)
	}

	if enrollment.CompletedAt == nil {
		// Nothing to announce; treat as done rather than retrying forever
		t.status = statusCompleted
		t.logger.Warn("enrollment is no longer marked completed, skipping notice")
		return nil
	}

	t.logger.Info("retrieved enrollment",
		"user_id", enrollment.UserID,
		"program_id", enrollment.ProgramID)

	// 2. Retrieve the recipient
	user, err := t.users.GetByID(ctx, enrollment.UserID)
	if err != nil {
		t.status = statusFailed
		t.logger.Error("failed to retrieve user", "error", err)
		return fmt.Errorf("failed to retrieve user: %w", err)
	}

	// 3. Retrieve the program for the notice body
	program, err := t.programs.GetByID(ctx, enrollment.ProgramID)
	if err != nil {
		t.status = statusFailed
		t.logger.Error("failed to retrieve program", "error", err)
		return fmt.Errorf("failed to retrieve program: %w", err)
	}

	// 4. Deliver the notice
	t.logger.Info("sending completion notice", "program_title", program.Title)
	err = t.mailer.SendCompletionNotice(ctx, user.Email, user.Name, program.Title, program.DurationDays)
	if err != nil {
		t.status = statusFailed
		t.logger.Error("failed to send completion notice", "error", err)
		return fmt.Errorf("failed to send completion notice: %w", err)
	}

	// Update task status to completed
	t.status = statusCompleted
	t.logger.Info("completion notice task completed successfully")
	return nil
}
