package task

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	// ErrQueueClosed reports an enqueue after Close.
	ErrQueueClosed = errors.New("task queue is closed")

	// ErrQueueFull reports an enqueue that found no buffer space. The
	// caller's row stays pending in the store and recovery picks it up.
	ErrQueueFull = errors.New("task queue is full")
)

// TaskQueue is the buffered channel between task submission and the
// worker pool. It satisfies both TaskQueueReader and TaskQueueWriter.
type TaskQueue struct {
	tasks  chan Task
	logger *slog.Logger
	mu     sync.Mutex
	closed bool
}

// NewTaskQueue creates a queue buffering up to size tasks.
func NewTaskQueue(size int, logger *slog.Logger) *TaskQueue {
	return &TaskQueue{
		tasks:  make(chan Task, size),
		logger: logger,
	}
}

// Enqueue offers task to the buffer without blocking. A full buffer is
// an error, not a wait: submission happens on request paths that must
// not stall behind slow workers.
func (q *TaskQueue) Enqueue(task Task) error {
	// The lock also covers the send below so Close cannot close the channel
	// between the closed check and the send.
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.tasks <- task:
		q.logger.Debug("task enqueued",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"queue_len", len(q.tasks),
			"queue_cap", cap(q.tasks))
		return nil
	default:
		return fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(q.tasks))
	}
}

// Close stops submission. Buffered tasks remain readable until drained;
// workers observe the close once the buffer empties.
func (q *TaskQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.tasks)
		q.logger.Info("task queue closed")
	}
}

// GetChannel exposes the consume side for the worker pool.
func (q *TaskQueue) GetChannel() <-chan Task {
	return q.tasks
}
