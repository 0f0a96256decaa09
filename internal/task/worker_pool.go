package task

import (
	"context"
	"log/slog"
	"sync"
)

// WorkerPool manages a pool of worker goroutines that process tasks
// from a task queue. It handles graceful shutdown and worker lifecycle.
type WorkerPool struct {
	// taskQueue provides read access to the tasks to be processed
	taskQueue TaskQueueReader

	// workerCount is the number of concurrent workers to start
	workerCount int

	// wg tracks active worker goroutines for clean shutdown
	wg sync.WaitGroup

	// ctx is used for cancellation and shutdown signaling
	ctx context.Context

	// cancel is the function to call to cancel the context
	cancel context.CancelFunc

	// process is invoked once per dequeued task
	process func(task Task)

	// logger for structured logging
	logger *slog.Logger
}

// WorkerPoolConfig holds configuration options for the worker pool
type WorkerPoolConfig struct {
	// WorkerCount determines how many concurrent worker goroutines to start
	// If zero or negative, defaults to 1
	WorkerCount int
}

// DefaultWorkerPoolConfig returns a WorkerPoolConfig with reasonable defaults
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		WorkerCount: 2,
	}
}

// NewWorkerPool creates a new worker pool with the specified configuration.
// The process function is called for every task pulled off the queue; it must
// handle its own status bookkeeping and error reporting. A task already
// handed to process runs to completion even when Stop is called.
func NewWorkerPool(
	taskQueue TaskQueueReader,
	config WorkerPoolConfig,
	process func(task Task),
	logger *slog.Logger,
) *WorkerPool {
	// Apply defaults for invalid config values
	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
	}

	// Create a cancelable context for shutdown coordination
	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		taskQueue:   taskQueue,
		workerCount: workerCount,
		wg:          sync.WaitGroup{},
		ctx:         ctx,
		cancel:      cancel,
		process:     process,
		logger:      logger,
	}
}

// Start launches the worker goroutines. It returns immediately; workers run
// until Stop is called or the queue channel is closed.
func (p *WorkerPool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	p.logger.Debug("worker pool started", "worker_count", p.workerCount)
}

// Stop signals all workers to exit and blocks until they have finished.
// Tasks still buffered in the queue are left for database recovery on the
// next start.
func (p *WorkerPool) Stop() {
	p.cancel()
	p.wg.Wait()

	p.logger.Debug("worker pool stopped")
}

// worker consumes tasks from the queue until shutdown
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	p.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-p.ctx.Done():
			// Context cancelled, stop worker
			p.logger.Debug("stopping worker", "worker_id", id)
			return

		case task, ok := <-p.taskQueue.GetChannel():
			if !ok {
				// Channel closed, stop worker
				p.logger.Debug("task channel closed, stopping worker", "worker_id", id)
				return
			}

			p.process(task)
		}
	}
}
