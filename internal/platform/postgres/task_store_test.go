package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verdanthq/verdant-api/internal/task"
)

var taskColumns = []string{"id", "type", "payload", "status", "error_message", "created_at", "updated_at"}

func TestPostgresTaskStore_SaveTask(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	taskStore := NewPostgresTaskStore(db)
	taskID := uuid.New()
	saved := &databaseTask{
		id:       taskID,
		taskType: "completion_notice",
		payload:  []byte(`{"enrollment_id":"abc"}`),
		status:   task.TaskStatusPending,
	}

	mock.ExpectExec("INSERT INTO tasks").
		WithArgs(taskID, "completion_notice", []byte(`{"enrollment_id":"abc"}`),
			task.TaskStatusPending, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = taskStore.SaveTask(context.Background(), saved)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_UpdateTaskStatus(t *testing.T) {
	taskID := uuid.New()

	t.Run("updates status and error message", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		taskStore := NewPostgresTaskStore(db)

		mock.ExpectExec("UPDATE tasks").
			WithArgs(task.TaskStatusFailed, "smtp unreachable", sqlmock.AnyArg(), taskID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = taskStore.UpdateTaskStatus(context.Background(), taskID, task.TaskStatusFailed, "smtp unreachable")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing task is a no-op", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		taskStore := NewPostgresTaskStore(db)

		mock.ExpectExec("UPDATE tasks").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = taskStore.UpdateTaskStatus(context.Background(), taskID, task.TaskStatusCompleted, "")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresTaskStore_GetPendingTasks(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	taskStore := NewPostgresTaskStore(db)
	firstID := uuid.New()
	secondID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("FROM tasks").
		WithArgs(task.TaskStatusPending).
		WillReturnRows(sqlmock.NewRows(taskColumns).
			AddRow(firstID.String(), "completion_notice", []byte(`{}`), "pending", nil, now, now).
			AddRow(secondID.String(), "completion_notice", []byte(`{}`), "pending", "previous failure", now, now))

	tasks, err := taskStore.GetPendingTasks(context.Background())
	require.NoError(t, err)

	require.Len(t, tasks, 2)
	assert.Equal(t, firstID, tasks[0].ID())
	assert.Equal(t, "completion_notice", tasks[0].Type())
	assert.Equal(t, task.TaskStatusPending, tasks[0].Status())
	assert.Equal(t, secondID, tasks[1].ID())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_GetProcessingTasks(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	taskStore := NewPostgresTaskStore(db)
	taskID := uuid.New()
	now := time.Now().UTC()

	// The age filter adds an updated_at cutoff computed from time.Now
	mock.ExpectQuery("AND updated_at <").
		WithArgs(task.TaskStatusProcessing, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(taskColumns).
			AddRow(taskID.String(), "completion_notice", []byte(`{}`), "processing", nil,
				now.Add(-time.Hour), now.Add(-time.Hour)))

	tasks, err := taskStore.GetProcessingTasks(context.Background(), 30*time.Minute)
	require.NoError(t, err)

	require.Len(t, tasks, 1)
	assert.Equal(t, taskID, tasks[0].ID())
	assert.Equal(t, task.TaskStatusProcessing, tasks[0].Status())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseTaskRefusesExecution(t *testing.T) {
	recovered := &databaseTask{id: uuid.New(), taskType: "completion_notice"}

	err := recovered.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no execution function")
}

func TestPostgresTaskStore_WithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	taskStore := NewPostgresTaskStore(db)
	taskID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO tasks").
		WithArgs(taskID, "completion_notice", []byte(`{}`),
			task.TaskStatusPending, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	txStore := taskStore.WithTx(tx)
	saved := &databaseTask{
		id:       taskID,
		taskType: "completion_notice",
		payload:  []byte(`{}`),
		status:   task.TaskStatusPending,
	}
	require.NoError(t, txStore.SaveTask(context.Background(), saved))

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
