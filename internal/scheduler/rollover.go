package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/verdanthq/verdant-api/internal/config"
	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/domain/progress"
)

// Common errors
var (
	ErrNilEnrollmentSource = errors.New("enrollment source cannot be nil")
	ErrNilProgramReader    = errors.New("program reader cannot be nil")
	ErrNilProgressService  = errors.New("progress service cannot be nil")
	ErrNilLogger           = errors.New("logger cannot be nil")
	ErrEmptyRolloverSpec   = errors.New("rollover cron spec cannot be empty")
)

// EnrollmentSource lists the enrollments to roll forward and persists the
// advanced rows. The postgres enrollment store satisfies this directly.
type EnrollmentSource interface {
	ListActive(ctx context.Context) ([]*domain.ProgramEnrollment, error)
	Update(ctx context.Context, enrollment *domain.ProgramEnrollment) error
}

// ProgramReader loads program metadata for the duration cap.
type ProgramReader interface {
	GetByID(ctx context.Context, id string) (*domain.Program, error)
}

// RolloverScheduler advances the cached current day of every active
// enrollment on a cron schedule.
type RolloverScheduler struct {
	enrollments EnrollmentSource
	programs    ProgramReader
	progressSvc progress.Service
	logger      *slog.Logger
	spec        string
	cron        *cron.Cron
	nowFn       func() time.Time
}

// NewRolloverScheduler creates a scheduler for the given dependencies.
// The cron spec is validated here so a bad configuration fails at boot
// instead of at the first scheduled run.
func NewRolloverScheduler(
	enrollments EnrollmentSource,
	programs ProgramReader,
	progressSvc progress.Service,
	cfg config.SchedulerConfig,
	logger *slog.Logger,
) (*RolloverScheduler, error) {
	if enrollments == nil {
		return nil, ErrNilEnrollmentSource
	}
	if programs == nil {
		return nil, ErrNilProgramReader
	}
	if progressSvc == nil {
		return nil, ErrNilProgressService
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if cfg.RolloverSpec == "" {
		return nil, ErrEmptyRolloverSpec
	}
	if _, err := cron.ParseStandard(cfg.RolloverSpec); err != nil {
		return nil, fmt.Errorf("invalid rollover cron spec %q: %w", cfg.RolloverSpec, err)
	}

	return &RolloverScheduler{
		enrollments: enrollments,
		programs:    programs,
		progressSvc: progressSvc,
		logger:      logger.With(slog.String("component", "rollover_scheduler")),
		spec:        cfg.RolloverSpec,
		cron:        cron.New(),
		nowFn:       time.Now,
	}, nil
}

// WithNowFunc replaces the scheduler clock. Tests use it to fix the
// calendar; production wiring leaves the default.
func (s *RolloverScheduler) WithNowFunc(nowFn func() time.Time) *RolloverScheduler {
	s.nowFn = nowFn
	return s
}

// Start registers the rollover job and launches the cron loop. Scheduled
// runs use a background context; Stop waits for an in-flight run.
func (s *RolloverScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if _, err := s.RunRollover(context.Background()); err != nil {
			s.logger.Error("scheduled rollover failed",
				slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule rollover job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("rollover scheduler started", slog.String("spec", s.spec))
	return nil
}

// Stop halts scheduling and waits for an in-flight sweep to finish or the
// context to expire.
func (s *RolloverScheduler) Stop(ctx context.Context) error {
	finished := s.cron.Stop()

	select {
	case <-finished.Done():
		s.logger.Info("rollover scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("rollover scheduler shutdown interrupted: %w", ctx.Err())
	}
}

// RunRollover sweeps every active enrollment once, advancing stale cached
// days to the current effective day. Per-enrollment failures are logged
// and skipped so one bad row cannot stall the rest of the sweep. Returns
// the number of enrollments advanced.
//
// cmd/server also runs this once at startup so rows are fresh immediately
// after a deploy, not only after the next scheduled tick.
func (s *RolloverScheduler) RunRollover(ctx context.Context) (int, error) {
	start := time.Now()

	enrollments, err := s.enrollments.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active enrollments: %w", err)
	}

	advanced := 0
	for _, enrollment := range enrollments {
		program, err := s.programs.GetByID(ctx, enrollment.ProgramID)
		if err != nil {
			s.logger.Warn("skipping enrollment with unresolvable program",
				slog.String("enrollment_id", enrollment.ID.String()),
				slog.String("program_id", enrollment.ProgramID),
				slog.String("error", err.Error()))
			continue
		}

		day, err := s.progressSvc.EffectiveDay(enrollment.StartDate, s.nowFn(), program.DurationDays)
		if err != nil {
			s.logger.Warn("skipping enrollment with uncomputable day",
				slog.String("enrollment_id", enrollment.ID.String()),
				slog.String("program_id", enrollment.ProgramID),
				slog.String("error", err.Error()))
			continue
		}

		if !enrollment.AdvanceTo(day, s.nowFn()) {
			continue
		}

		if err := s.enrollments.Update(ctx, enrollment); err != nil {
			s.logger.Error("failed to persist advanced enrollment",
				slog.String("enrollment_id", enrollment.ID.String()),
				slog.String("error", err.Error()))
			continue
		}

		advanced++
	}

	s.logger.Info("rollover sweep finished",
		slog.Int("active_enrollments", len(enrollments)),
		slog.Int("advanced", advanced),
		slog.Duration("elapsed", time.Since(start)))

	return advanced, nil
}
