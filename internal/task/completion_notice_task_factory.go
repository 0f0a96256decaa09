package task

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// CompletionNoticeTaskFactory creates CompletionNoticeTask instances bound
// to the readers and mailer they need. It doubles as the TaskResolver for
// rows recovered from the database.
type CompletionNoticeTaskFactory struct {
	enrollments EnrollmentReader
	users       UserReader
	programs    ProgramReader
	mailer      Mailer
	logger      *slog.Logger
}

// NewCompletionNoticeTaskFactory creates a new factory for CompletionNoticeTasks
func NewCompletionNoticeTaskFactory(
	enrollments EnrollmentReader,
	users UserReader,
	programs ProgramReader,
	mailer Mailer,
	logger *slog.Logger,
) *CompletionNoticeTaskFactory {
	return &CompletionNoticeTaskFactory{
		enrollments: enrollments,
		users:       users,
		programs:    programs,
		mailer:      mailer,
		logger:      logger.With("component", "completion_notice_task_factory"),
	}
}

// CreateTask creates a new CompletionNoticeTask for the specified enrollment
func (f *CompletionNoticeTaskFactory) CreateTask(enrollmentID uuid.UUID) (Task, error) {
	task, err := NewCompletionNoticeTask(
		enrollmentID,
		f.enrollments,
		f.users,
		f.programs,
		f.mailer,
		f.logger,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ResolveTask rebuilds a recovered task from its persisted row, preserving
// the row's ID
func (f *CompletionNoticeTaskFactory) ResolveTask(id uuid.UUID, taskType string, payload []byte) (Task, error) {
	if taskType != TaskTypeCompletionNotice {
		return nil, fmt.Errorf("unknown task type: %s", taskType)
	}

	var p completionNoticePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal completion notice payload: %w", err)
	}

	task, err := newCompletionNoticeTask(
		id,
		p.EnrollmentID,
		f.enrollments,
		f.users,
		f.programs,
		f.mailer,
		f.logger,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Ensure CompletionNoticeTaskFactory implements TaskResolver
var _ TaskResolver = (*CompletionNoticeTaskFactory)(nil)
