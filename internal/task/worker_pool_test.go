package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// mockTaskQueue implements TaskQueueReader for testing
type mockTaskQueue struct {
	ch chan Task
}

func newMockTaskQueue() *mockTaskQueue {
	return &mockTaskQueue{
		ch: make(chan Task, 10),
	}
}

func (m *mockTaskQueue) GetChannel() <-chan Task {
	return m.ch
}

func TestNewWorkerPool(t *testing.T) {
	logger := setupTestLogger()
	taskQueue := newMockTaskQueue()
	config := WorkerPoolConfig{
		WorkerCount: 5,
	}

	pool := NewWorkerPool(taskQueue, config, func(task Task) {}, logger)

	assert.NotNil(t, pool)
	assert.Equal(t, 5, pool.workerCount)
	assert.Equal(t, taskQueue, pool.taskQueue)
	assert.NotNil(t, pool.ctx)
	assert.NotNil(t, pool.cancel)
	assert.NotNil(t, pool.logger)
	assert.NotNil(t, pool.process)

	// Test with invalid worker count (should default to 1)
	invalidConfig := WorkerPoolConfig{
		WorkerCount: 0,
	}

	pool = NewWorkerPool(taskQueue, invalidConfig, func(task Task) {}, logger)
	assert.Equal(t, 1, pool.workerCount)

	// Test with negative worker count (should default to 1)
	invalidConfig.WorkerCount = -5
	pool = NewWorkerPool(taskQueue, invalidConfig, func(task Task) {}, logger)
	assert.Equal(t, 1, pool.workerCount)
}

func TestWorkerPool_Start_Stop(t *testing.T) {
	logger := setupTestLogger()
	taskQueue := newMockTaskQueue()
	config := WorkerPoolConfig{
		WorkerCount: 2,
	}

	pool := NewWorkerPool(taskQueue, config, func(task Task) {}, logger)

	// Start the worker pool
	pool.Start()

	// Give workers a moment to initialize
	time.Sleep(50 * time.Millisecond)

	// Stop the worker pool
	pool.Stop()

	// This test mainly checks that Start and Stop don't panic or deadlock
	// when no tasks flow through the pool
}

func TestWorkerPool_DispatchesTasks(t *testing.T) {
	logger := setupTestLogger()
	taskQueue := newMockTaskQueue()
	config := WorkerPoolConfig{
		WorkerCount: 1,
	}

	// Channel to track which tasks reached the process function
	processed := make(chan Task, 2)

	pool := NewWorkerPool(taskQueue, config, func(task Task) {
		processed <- task
	}, logger)
	pool.Start()

	// Add tasks to the queue
	task1 := newMockTask()
	task2 := newMockTask()
	taskQueue.ch <- task1
	taskQueue.ch <- task2

	// Both tasks should come through the process function in order
	for _, want := range []*MockTask{task1, task2} {
		select {
		case got := <-processed:
			assert.Equal(t, want.ID(), got.ID())
		case <-time.After(500 * time.Millisecond):
			t.Fatal("Timed out waiting for task to be processed")
		}
	}

	// Clean up
	pool.Stop()
}

func TestWorkerPool_Shutdown_DuringTask(t *testing.T) {
	logger := setupTestLogger()
	taskQueue := newMockTaskQueue()
	config := WorkerPoolConfig{
		WorkerCount: 1,
	}

	// Create a channel to signal when the task starts execution
	taskStarted := make(chan struct{})
	// Create a channel to signal when we can allow the task to finish
	allowFinish := make(chan struct{})

	// The process function blocks until released, standing in for a slow
	// in-flight task
	pool := NewWorkerPool(taskQueue, config, func(task Task) {
		close(taskStarted)
		<-allowFinish
	}, logger)
	pool.Start()

	// Add the task to the queue
	taskQueue.ch <- newMockTask()

	// Wait for the task to start executing
	select {
	case <-taskStarted:
		// Task has started executing
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Timed out waiting for task to start")
	}

	// Start a goroutine to stop the worker pool
	stopDone := make(chan struct{})
	go func() {
		pool.Stop()
		close(stopDone)
	}()

	// Stop must wait for the in-flight task rather than abandoning it
	select {
	case <-stopDone:
		t.Fatal("Stop returned while a task was still executing")
	case <-time.After(100 * time.Millisecond):
		// Still blocked, as expected
	}

	// Release the task; now Stop should complete
	close(allowFinish)

	select {
	case <-stopDone:
		// This is expected, Stop completed after the task
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Timed out waiting for worker pool to stop")
	}
}

func TestWorkerPool_StopsOnChannelClose(t *testing.T) {
	logger := setupTestLogger()
	taskQueue := newMockTaskQueue()
	config := WorkerPoolConfig{
		WorkerCount: 2,
	}

	pool := NewWorkerPool(taskQueue, config, func(task Task) {}, logger)
	pool.Start()

	// Closing the queue channel should wind down all workers
	close(taskQueue.ch)

	stopDone := make(chan struct{})
	go func() {
		pool.Stop()
		close(stopDone)
	}()

	select {
	case <-stopDone:
		// Workers exited on channel close
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Timed out waiting for workers to exit after channel close")
	}
}
