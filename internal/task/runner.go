package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int

	// StuckTaskAge defines how long a task can be in processing state
	// before it's considered stuck and reset
	StuckTaskAge time.Duration

	// StuckTaskCheckInterval defines how often to check for stuck tasks
	// If zero, defaults to 5 minutes
	StuckTaskCheckInterval time.Duration
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount:            2,
		QueueSize:              100,
		StuckTaskAge:           30 * time.Minute,
		StuckTaskCheckInterval: 5 * time.Minute,
	}
}

// TaskRunner manages background task processing. It persists submitted tasks,
// feeds them through an in-memory queue to a worker pool, and recovers rows
// left pending or processing by a previous run.
type TaskRunner struct {
	store      TaskStore
	queue      *TaskQueue
	pool       *WorkerPool
	resolver   TaskResolver
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     TaskRunnerConfig
	logger     *slog.Logger
	errHandler func(task Task, err error)
}

// NewTaskRunner creates a new TaskRunner
func NewTaskRunner(store TaskStore, config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	// Apply default check interval if not specified
	if config.StuckTaskCheckInterval == 0 {
		config.StuckTaskCheckInterval = 5 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())

	r := &TaskRunner{
		store:      store,
		ctx:        ctx,
		cancelFunc: cancel,
		wg:         sync.WaitGroup{},
		config:     config,
		logger:     logger,
		errHandler: func(task Task, err error) {
			// Default error handler just logs the error
			logger.Error("task execution failed",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
		},
	}

	r.queue = NewTaskQueue(config.QueueSize, logger)
	r.pool = NewWorkerPool(r.queue, WorkerPoolConfig{WorkerCount: config.WorkerCount}, r.processTask, logger)

	return r
}

// SetErrorHandler allows setting a custom error handler function
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.errHandler = handler
}

// SetResolver installs the resolver used to rebuild recovered tasks.
// Without one, rows loaded from the database are requeued as-is and fail
// at execution time.
func (r *TaskRunner) SetResolver(resolver TaskResolver) {
	r.resolver = resolver
}

// Submit adds a new task to the queue
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	// Save task to database first
	if err := r.store.SaveTask(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	// Then add to in-memory queue. On a full queue the row stays pending and
	// is picked up by recovery on the next start.
	if err := r.queue.Enqueue(task); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	return nil
}

// Start initializes the worker pool and begins processing tasks
func (r *TaskRunner) Start() error {
	// Recover unfinished tasks from previous runs
	if err := r.Recover(); err != nil {
		return fmt.Errorf("failed to recover tasks: %w", err)
	}

	// Start worker goroutines
	r.pool.Start()

	// Start goroutine to check for stuck tasks periodically
	r.wg.Add(1)
	go r.stuckTaskMonitor()

	return nil
}

// Stop gracefully shuts down the task runner
func (r *TaskRunner) Stop() {
	r.cancelFunc()
	r.pool.Stop()
	r.wg.Wait()
	r.queue.Close()
}

// Recover loads any unfinished tasks from the database
func (r *TaskRunner) Recover() error {
	ctx := context.Background()

	// Get tasks that were in "pending" state
	pendingTasks, err := r.store.GetPendingTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending tasks: %w", err)
	}

	// Get tasks that were in "processing" state (potentially interrupted by a crash)
	processingTasks, err := r.store.GetProcessingTasks(
		ctx,
		0,
	) // Get all processing tasks regardless of age
	if err != nil {
		return fmt.Errorf("failed to get processing tasks: %w", err)
	}

	// Log recovery statistics
	r.logger.Info("recovering unfinished tasks",
		"pending_count", len(pendingTasks),
		"processing_count", len(processingTasks))

	// Requeue pending tasks
	for _, task := range pendingTasks {
		r.requeue(ctx, task)
	}

	// Reset processing tasks back to pending state and requeue them
	for _, task := range processingTasks {
		// Update status in database to pending
		if err := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusPending, "Reset after recovery"); err != nil {
			r.logger.Error("failed to reset processing task status",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
			continue
		}

		r.requeue(ctx, task)
	}

	return nil
}

// requeue resolves a recovered task and puts it back on the in-memory queue.
// Resolution failures mark the row failed so it does not loop through
// recovery forever.
func (r *TaskRunner) requeue(ctx context.Context, task Task) {
	resolved, err := r.resolveTask(task)
	if err != nil {
		r.logger.Error("failed to resolve recovered task",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"error", err)
		if updateErr := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusFailed, err.Error()); updateErr != nil {
			r.logger.Error("failed to mark unresolvable task as failed",
				"task_id", task.ID(),
				"error", updateErr)
		}
		return
	}

	if err := r.queue.Enqueue(resolved); err != nil {
		// Queue is full or closed; the row stays pending for the next recovery
		r.logger.Error("failed to requeue task",
			"task_id", resolved.ID(),
			"task_type", resolved.Type(),
			"error", err)
	}
}

// resolveTask rebuilds a recovered task through the configured resolver.
// Tasks submitted in-process are already executable and pass through
// untouched, as does everything when no resolver is installed.
func (r *TaskRunner) resolveTask(task Task) (Task, error) {
	if r.resolver == nil {
		return task, nil
	}

	resolved, err := r.resolver.ResolveTask(task.ID(), task.Type(), task.Payload())
	if err != nil {
		return nil, err
	}

	return resolved, nil
}

// processTask handles execution of a single task
func (r *TaskRunner) processTask(task Task) {
	// Use a fresh context so a task already executing runs to completion
	// during shutdown instead of aborting mid-delivery
	ctx := context.Background()
	logger := r.logger.With(
		"task_id", task.ID(),
		"task_type", task.Type(),
	)

	// Update task status to processing
	if err := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusProcessing, ""); err != nil {
		logger.Error("failed to update task status to processing", "error", err)
		return
	}

	logger.Info("processing task")

	// Execute task
	err := r.executeTask(ctx, task)

	if err != nil {
		// Task failed
		logger.Error("task execution failed", "error", err)
		if updateErr := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusFailed, err.Error()); updateErr != nil {
			logger.Error("failed to update task status to failed", "error", updateErr)
		}

		// Call error handler
		r.errHandler(task, err)
	} else {
		// Task completed successfully
		logger.Info("task completed successfully")
		if updateErr := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusCompleted, ""); updateErr != nil {
			logger.Error("failed to update task status to completed", "error", updateErr)
		}
	}
}

// executeTask runs the task and converts a panic into an error so one bad
// task cannot take down a worker
func (r *TaskRunner) executeTask(ctx context.Context, task Task) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic during task execution: %v", p)
		}
	}()

	return task.Execute(ctx)
}

// stuckTaskMonitor periodically checks for tasks that have been in "processing"
// state for too long and resets them
func (r *TaskRunner) stuckTaskMonitor() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.StuckTaskCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			// Context cancelled, stop monitor
			return

		case <-ticker.C:
			ctx := context.Background()

			// Find tasks that have been in "processing" state for too long
			stuckTasks, err := r.store.GetProcessingTasks(ctx, r.config.StuckTaskAge)
			if err != nil {
				r.logger.Error("failed to check for stuck tasks", "error", err)
				continue
			}

			if len(stuckTasks) == 0 {
				continue
			}

			r.logger.Info("found stuck tasks", "count", len(stuckTasks))

			// Reset each stuck task and requeue it
			for _, task := range stuckTasks {
				if err := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusPending,
					"Reset after being stuck in processing state"); err != nil {
					r.logger.Error("failed to reset stuck task status",
						"task_id", task.ID(),
						"task_type", task.Type(),
						"error", err)
					continue
				}

				r.requeue(ctx, task)
			}
		}
	}
}
