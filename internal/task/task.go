package task

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the persisted lifecycle state of a task row.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

const (
	// TaskTypeCompletionNotice delivers a program-completed email to the
	// enrolled user after the final day is marked done.
	TaskTypeCompletionNotice = "completion_notice"
)

// Task is one unit of background work. Implementations carry their own
// dependencies; the runner only identifies, persists, and executes them.
type Task interface {
	ID() uuid.UUID

	// Type names the task kind; it maps a persisted row back to a
	// factory through the TaskResolver.
	Type() string

	// Payload is the task's data as it is stored, opaque to the runner.
	Payload() []byte

	Status() TaskStatus

	// Execute runs the work. The runner records failure or success from
	// the returned error; a panic inside Execute is treated as failure.
	Execute(ctx context.Context) error
}

// TaskQueueReader is the consume side of the queue, held by workers.
type TaskQueueReader interface {
	GetChannel() <-chan Task
}

// TaskQueueWriter is the submit side of the queue, held by services.
type TaskQueueWriter interface {
	// Enqueue adds a task for processing; it fails when the queue is
	// full or closed rather than blocking.
	Enqueue(task Task) error

	// Close stops further submission.
	Close()
}

// TaskResolver rebuilds executable tasks from persisted rows. Rows loaded
// from the database carry only an ID, a type, and a payload; the resolver
// binds them back to the services they need so they can run again after a
// restart.
type TaskResolver interface {
	// ResolveTask returns a runnable task for the given row. Implementations
	// must preserve the row's ID so status updates target the same record.
	ResolveTask(id uuid.UUID, taskType string, payload []byte) (Task, error)
}

// TaskStore persists task rows and their status transitions.
type TaskStore interface {
	SaveTask(ctx context.Context, task Task) error

	// UpdateTaskStatus records a transition; errorMsg is kept only for
	// failures and may be empty otherwise.
	UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error

	// GetPendingTasks returns every row still waiting to run.
	GetPendingTasks(ctx context.Context) ([]Task, error)

	// GetProcessingTasks returns rows stuck in processing. A non-zero
	// olderThan limits the result to rows in that state at least that long.
	GetProcessingTasks(ctx context.Context, olderThan time.Duration) ([]Task, error)

	// WithTx returns a store bound to tx so task writes can join a
	// service-owned transaction.
	WithTx(tx *sql.Tx) TaskStore
}
