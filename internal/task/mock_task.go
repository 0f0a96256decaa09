package task

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MockTask is a Task whose Execute behavior tests can swap per case.
// The zero ExecuteFn succeeds immediately.
type MockTask struct {
	TaskID      uuid.UUID
	TaskType    string
	TaskPayload []byte
	TaskStatus  TaskStatus
	ExecuteFn   func(ctx context.Context) error
}

func NewMockTask(id uuid.UUID, taskType string, payload []byte) *MockTask {
	return &MockTask{
		TaskID:      id,
		TaskType:    taskType,
		TaskPayload: payload,
		TaskStatus:  TaskStatusPending,
	}
}

func (t *MockTask) ID() uuid.UUID      { return t.TaskID }
func (t *MockTask) Type() string       { return t.TaskType }
func (t *MockTask) Payload() []byte    { return t.TaskPayload }
func (t *MockTask) Status() TaskStatus { return t.TaskStatus }

func (t *MockTask) Execute(ctx context.Context) error {
	if t.ExecuteFn == nil {
		return nil
	}
	return t.ExecuteFn(ctx)
}

// MockPayload is the payload shape mock tasks carry; Message doubles as
// a label when a test needs to tell queued tasks apart.
type MockPayload struct {
	Message string    `json:"message"`
	Created time.Time `json:"created"`
}

// CreateMockTaskWithPayload builds a pending MockTask with a fresh ID
// and a serialized MockPayload around message.
func CreateMockTaskWithPayload(message string) *MockTask {
	data, _ := json.Marshal(MockPayload{
		Message: message,
		Created: time.Now().UTC(),
	})
	return NewMockTask(uuid.New(), "mock_task", data)
}
