package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/verdanthq/verdant-api/internal/config"
	"github.com/verdanthq/verdant-api/internal/domain/progress"
	"github.com/verdanthq/verdant-api/internal/events"
	"github.com/verdanthq/verdant-api/internal/platform/mailer"
	"github.com/verdanthq/verdant-api/internal/platform/postgres"
	"github.com/verdanthq/verdant-api/internal/platform/redis"
	"github.com/verdanthq/verdant-api/internal/scheduler"
	"github.com/verdanthq/verdant-api/internal/service"
	"github.com/verdanthq/verdant-api/internal/service/auth"
	"github.com/verdanthq/verdant-api/internal/store"
	"github.com/verdanthq/verdant-api/internal/task"
	"golang.org/x/crypto/bcrypt"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore       store.UserStore
	enrollmentStore store.EnrollmentStore
	programStore    store.ProgramStore
	dailyLogStore   store.DailyLogStore
	taskStore       task.TaskStore

	// Service interfaces
	jwtService        auth.JWTService
	passwordVerifier  auth.PasswordVerifier
	progressEngine    progress.Service
	enrollmentService service.EnrollmentService
	progressService   service.ProgressService
	userService       service.UserService

	// Outbound delivery and caching
	mailer       task.Mailer
	summaryCache *redis.RedisSummaryCache

	// Event system
	eventEmitter events.EventEmitter

	// Background processing
	taskRunner *task.TaskRunner
	scheduler  *scheduler.RolloverScheduler
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database connection that
// must be established before application initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password verifier
	app.passwordVerifier = auth.NewBcryptVerifier()

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, bcrypt.DefaultCost)
	app.taskStore = postgres.NewPostgresTaskStore(db)
	app.enrollmentStore = postgres.NewPostgresEnrollmentStore(db, logger)
	app.programStore = postgres.NewPostgresProgramStore(db, logger)
	app.dailyLogStore = postgres.NewPostgresDailyLogStore(db, logger)

	// Initialize outbound mail delivery
	app.mailer, err = mailer.New(logger, cfg.Mailer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}

	// Initialize the progress summary cache when configured. An empty Redis
	// address disables caching and reads fall through to the database.
	var summaryCache service.SummaryCache
	if cfg.Cache.RedisAddr != "" {
		app.summaryCache, err = redis.NewRedisSummaryCache(logger, cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize summary cache: %w", err)
		}
		summaryCache = app.summaryCache
		logger.Info("Progress summary cache initialized", "redis_addr", cfg.Cache.RedisAddr)
	} else {
		logger.Info("Progress summary cache disabled")
	}

	// Create the task runner. It is started below, once the completion
	// notice factory is installed as the resolver, so recovery can rebuild
	// rows persisted by a previous run.
	app.taskRunner = setupTaskRunner(app)

	// Initialize event emitter
	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	// Initialize the progress calculation engine
	app.progressEngine = progress.NewDefaultService()

	// Create required adapters
	enrollmentRepoAdapter := service.NewEnrollmentRepositoryAdapter(app.enrollmentStore, app.db)
	dailyLogRepoAdapter := service.NewDailyLogRepositoryAdapter(app.dailyLogStore)

	// Initialize enrollment service
	app.enrollmentService, err = service.NewEnrollmentService(
		enrollmentRepoAdapter,
		app.programStore,
		dailyLogRepoAdapter,
		app.progressEngine,
		app.eventEmitter,
		summaryCache,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create enrollment service: %w", err)
	}

	// Initialize progress service
	app.progressService, err = service.NewProgressService(
		dailyLogRepoAdapter,
		app.progressEngine,
		summaryCache,
		app.db,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create progress service: %w", err)
	}

	// Initialize user service
	app.userService = service.NewUserService(app.userStore, app.db, logger)

	// Create task factory for completion notice processing
	noticeTaskFactory := task.NewCompletionNoticeTaskFactory(
		app.enrollmentStore,
		app.userStore,
		app.programStore,
		app.mailer,
		logger,
	)

	// Install the factory as the recovery resolver, then start the runner
	app.taskRunner.SetResolver(noticeTaskFactory)
	if err := app.taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}

	// Create and register task factory event handler
	taskFactoryHandler := task.NewTaskFactoryEventHandler(
		noticeTaskFactory,
		app.taskRunner,
		logger,
	)

	// Register the event handler with the event emitter
	if emitter, ok := app.eventEmitter.(*events.InMemoryEventEmitter); ok {
		emitter.RegisterHandler(taskFactoryHandler)
	} else {
		return nil, fmt.Errorf("unexpected event emitter type, cannot register task handler")
	}

	// Initialize the nightly rollover scheduler
	app.scheduler, err = scheduler.NewRolloverScheduler(
		app.enrollmentStore,
		app.programStore,
		app.progressEngine,
		cfg.Scheduler,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rollover scheduler: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	// Catch up on rollovers missed while the process was down, then hand
	// scheduling to cron. A failed sweep is retried at the next tick, so it
	// does not abort startup.
	if advanced, err := app.scheduler.RunRollover(ctx); err != nil {
		app.logger.Error("Startup rollover sweep failed", "error", err)
	} else if advanced > 0 {
		app.logger.Info("Startup rollover sweep advanced enrollments", "count", advanced)
	}

	if err := app.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start rollover scheduler: %w", err)
	}

	// Set up router using the application dependencies
	router := app.setupRouter()

	// Start the HTTP server
	err := app.startHTTPServer(ctx, router)
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// setupTaskRunner builds the background task processor from the configured
// queue and worker pool sizes. The caller starts it once a resolver is set.
func setupTaskRunner(app *application) *task.TaskRunner {
	return task.NewTaskRunner(app.taskStore, task.TaskRunnerConfig{
		QueueSize:              app.config.Task.QueueSize,
		WorkerCount:            app.config.Task.WorkerCount,
		StuckTaskAge:           time.Duration(app.config.Task.StuckTaskAgeMinutes) * time.Minute,
		StuckTaskCheckInterval: time.Duration(app.config.Task.StuckTaskCheckIntervalMinutes) * time.Minute,
	}, app.logger)
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Stop the rollover scheduler, waiting briefly for an in-flight sweep
	if app.scheduler != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.scheduler.Stop(stopCtx); err != nil {
			app.logger.Error("Error stopping rollover scheduler", "error", err)
		}
	}

	// Stop task runner
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	// Close the summary cache connection
	if app.summaryCache != nil {
		if err := app.summaryCache.Close(); err != nil {
			app.logger.Error("Error closing summary cache", "error", err)
		}
	}

	// Close database connection
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
