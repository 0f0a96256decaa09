package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/verdanthq/verdant-api/internal/platform/logger"
	"github.com/verdanthq/verdant-api/internal/store"
	"github.com/verdanthq/verdant-api/internal/task"
)

// PostgresTaskStore persists queued background tasks. The runner writes
// rows through it on submission, flips their status as they move through
// the queue, and reads pending and stuck rows back on recovery.
type PostgresTaskStore struct {
	db store.DBTX
}

// NewPostgresTaskStore creates a new PostgresTaskStore.
func NewPostgresTaskStore(db store.DBTX) *PostgresTaskStore {
	return &PostgresTaskStore{db: db}
}

var _ task.TaskStore = (*PostgresTaskStore)(nil)

// SaveTask inserts the task row with both timestamps set to now.
func (s *PostgresTaskStore) SaveTask(ctx context.Context, t task.Task) error {
	log := logger.FromContext(ctx)

	query := `
		INSERT INTO tasks (id, type, payload, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, query, t.ID(), t.Type(), t.Payload(), t.Status(), now, now)
	if err != nil {
		log.Error("failed to save task",
			"task_id", t.ID(),
			"task_type", t.Type(),
			"error", err)
		return fmt.Errorf("failed to save task to database: %w", err)
	}

	return nil
}

// UpdateTaskStatus records a status transition and its error message, if
// any. A missing row is a no-op: the runner may report completion for a
// task whose row an operator already cleaned up, and failing the report
// would wedge the worker.
func (s *PostgresTaskStore) UpdateTaskStatus(
	ctx context.Context,
	taskID uuid.UUID,
	status task.TaskStatus,
	errorMsg string,
) error {
	log := logger.FromContext(ctx)

	query := `
		UPDATE tasks
		SET status = $1, error_message = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query, status, errorMsg, time.Now().UTC(), taskID)
	if err != nil {
		log.Error("failed to update task status",
			"task_id", taskID,
			"status", status,
			"error", err)
		return fmt.Errorf("failed to update task status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected", "task_id", taskID, "error", err)
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		log.Warn("no task found with ID to update status", "task_id", taskID)
	}

	return nil
}

// GetPendingTasks retrieves every task still waiting to run, oldest
// first.
func (s *PostgresTaskStore) GetPendingTasks(ctx context.Context) ([]task.Task, error) {
	return s.getTasksByStatus(ctx, task.TaskStatusPending, 0)
}

// GetProcessingTasks retrieves tasks that have sat in processing longer
// than olderThan. Recovery treats them as orphaned by a crashed worker.
func (s *PostgresTaskStore) GetProcessingTasks(ctx context.Context, olderThan time.Duration) ([]task.Task, error) {
	return s.getTasksByStatus(ctx, task.TaskStatusProcessing, olderThan)
}

func (s *PostgresTaskStore) getTasksByStatus(
	ctx context.Context,
	status task.TaskStatus,
	olderThan time.Duration,
) ([]task.Task, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, type, payload, status, error_message, created_at, updated_at
		FROM tasks
		WHERE status = $1
	`
	args := []interface{}{status}

	if olderThan > 0 {
		query += ` AND updated_at < $2`
		args = append(args, time.Now().UTC().Add(-olderThan))
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks by status", "status", status, "error", err)
		return nil, fmt.Errorf("failed to query tasks by status: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []task.Task
	for rows.Next() {
		var (
			row          databaseTask
			errorMessage sql.NullString
		)
		if err := rows.Scan(&row.id, &row.taskType, &row.payload, &row.status, &errorMessage, &row.createdAt, &row.updatedAt); err != nil {
			log.Error("failed to scan task row", "status", status, "error", err)
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		row.errorMessage = errorMessage.String

		// Rows come back as databaseTask values; the runner's resolver turns
		// them into executable tasks before requeueing.
		t := row
		tasks = append(tasks, &t)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", "status", status, "error", err)
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// WithTx returns a new store instance that uses the provided transaction.
// This lets a task row be written atomically with the state change that
// triggered it.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) task.TaskStore {
	return &PostgresTaskStore{db: tx}
}

// databaseTask is the persisted form of a task: identity, type, payload,
// and status, but no behavior.
type databaseTask struct {
	id           uuid.UUID
	taskType     string
	payload      []byte
	status       task.TaskStatus
	errorMessage string
	createdAt    time.Time
	updatedAt    time.Time
}

func (t *databaseTask) ID() uuid.UUID { return t.id }

func (t *databaseTask) Type() string { return t.taskType }

func (t *databaseTask) Payload() []byte { return t.payload }

func (t *databaseTask) Status() task.TaskStatus { return t.status }

// Execute refuses to run; a database row holds no behavior. The runner must
// resolve the row into a concrete task first.
func (t *databaseTask) Execute(ctx context.Context) error {
	return errors.New("no execution function defined for recovered task")
}
