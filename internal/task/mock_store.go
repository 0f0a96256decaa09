package task

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockTaskStore is an in-memory TaskStore for runner and queue tests.
// Tests reach into tasks and taskStatusTimes directly to arrange
// recovery scenarios, and can override SaveFn to inject write failures.
type MockTaskStore struct {
	mutex           sync.RWMutex
	tasks           map[uuid.UUID]Task
	taskStatusTimes map[uuid.UUID]time.Time
	SaveFn          func(ctx context.Context, task Task) error
}

func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		tasks:           make(map[uuid.UUID]Task),
		taskStatusTimes: make(map[uuid.UUID]time.Time),
	}
}

// SaveTask stores the task, normalizing it to a *MockTask so later
// status updates can mutate it in place.
func (s *MockTaskStore) SaveTask(ctx context.Context, task Task) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, task)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	mock, ok := task.(*MockTask)
	if !ok {
		mock = NewMockTask(task.ID(), task.Type(), task.Payload())
		mock.TaskStatus = task.Status()
	}
	s.tasks[task.ID()] = mock
	s.taskStatusTimes[task.ID()] = time.Now()
	return nil
}

// UpdateTaskStatus records the transition and its time. Unknown IDs are
// ignored; the runner updates rows it did not necessarily enqueue.
func (s *MockTaskStore) UpdateTaskStatus(
	ctx context.Context,
	taskID uuid.UUID,
	status TaskStatus,
	errorMsg string,
) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stored, ok := s.tasks[taskID]
	if !ok {
		return nil
	}
	stored.(*MockTask).TaskStatus = status
	s.taskStatusTimes[taskID] = time.Now()
	return nil
}

func (s *MockTaskStore) GetPendingTasks(ctx context.Context) ([]Task, error) {
	return s.tasksInStatus(TaskStatusPending, 0), nil
}

func (s *MockTaskStore) GetProcessingTasks(ctx context.Context, olderThan time.Duration) ([]Task, error) {
	return s.tasksInStatus(TaskStatusProcessing, olderThan), nil
}

func (s *MockTaskStore) tasksInStatus(status TaskStatus, olderThan time.Duration) []Task {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	cutoff := time.Now().Add(-olderThan)
	var matched []Task
	for id, stored := range s.tasks {
		if stored.Status() != status {
			continue
		}
		if olderThan > 0 {
			at, ok := s.taskStatusTimes[id]
			if !ok || at.After(cutoff) {
				continue
			}
		}
		matched = append(matched, stored)
	}
	return matched
}

// WithTx returns the store itself; the mock has no transactions.
func (s *MockTaskStore) WithTx(tx *sql.Tx) TaskStore {
	return s
}
