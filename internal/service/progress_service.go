package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/domain/progress"
	"github.com/verdanthq/verdant-api/internal/platform/logger"
	"github.com/verdanthq/verdant-api/internal/store"
)

// DailyLogRepository defines the repository interface for daily activity
// logs in the service layer
type DailyLogRepository interface {
	// Upsert saves a daily log, amending the user's existing row for the
	// same date if one exists
	Upsert(ctx context.Context, log *domain.DailyLog) error

	// ListByUser retrieves all of a user's daily logs, most recent first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.DailyLog, error)

	// ListByUserBetween retrieves the user's daily logs with log dates in
	// [from, to], most recent first
	ListByUserBetween(
		ctx context.Context,
		userID uuid.UUID,
		from, to time.Time,
	) ([]*domain.DailyLog, error)

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) DailyLogRepository
}

// SummaryCache caches computed streak summaries per user. A Get miss is
// (nil, nil); cache failures are reported as errors the services log and
// otherwise ignore, since the store remains the source of truth.
type SummaryCache interface {
	// GetSummary returns the cached summary for the user, or nil on a miss
	GetSummary(ctx context.Context, userID uuid.UUID) (*progress.Summary, error)

	// SetSummary stores the summary for the user
	SetSummary(ctx context.Context, userID uuid.UUID, summary progress.Summary) error

	// InvalidateSummary drops the user's cached summary
	InvalidateSummary(ctx context.Context, userID uuid.UUID) error
}

// ProgressService provides daily activity logging and the aggregate
// views derived from it: streak summaries and the monthly calendar.
type ProgressService interface {
	// LogDay records whether the user completed qualifying activity on a
	// calendar date. Logging the same date twice amends the first entry.
	LogDay(
		ctx context.Context,
		userID uuid.UUID,
		date time.Time,
		completed bool,
		effort domain.EffortLevel,
	) (*domain.DailyLog, error)

	// Summary aggregates the user's full activity history into streak
	// figures.
	Summary(ctx context.Context, userID uuid.UUID) (progress.Summary, error)

	// Calendar lays out one month of the user's activity for rendering.
	Calendar(
		ctx context.Context,
		userID uuid.UUID,
		year int,
		month time.Month,
	) (progress.MonthView, error)
}

// progressServiceImpl implements the ProgressService interface
type progressServiceImpl struct {
	dailyLogRepo DailyLogRepository
	progressSvc  progress.Service
	cache        SummaryCache
	db           *sql.DB
	logger       *slog.Logger
	nowFn        func() time.Time
}

// NewProgressService creates a new ProgressService.
// The cache may be nil when caching is disabled; every other dependency
// is required.
func NewProgressService(
	dailyLogRepo DailyLogRepository,
	progressSvc progress.Service,
	cache SummaryCache,
	db *sql.DB,
	logger *slog.Logger,
) (ProgressService, error) {
	// Validate dependencies
	if dailyLogRepo == nil {
		return nil, NewServiceError("create_service", "dailyLogRepo cannot be nil", nil)
	}
	if progressSvc == nil {
		return nil, NewServiceError("create_service", "progressSvc cannot be nil", nil)
	}
	if db == nil {
		return nil, NewServiceError("create_service", "db cannot be nil", nil)
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &progressServiceImpl{
		dailyLogRepo: dailyLogRepo,
		progressSvc:  progressSvc,
		cache:        cache,
		db:           db,
		logger:       logger.With(slog.String("component", "progress_service")),
		nowFn:        time.Now,
	}, nil
}

// WithNowFunc replaces the service clock. Tests use it to fix the
// calendar; production wiring leaves the default.
func (s *progressServiceImpl) WithNowFunc(nowFn func() time.Time) *progressServiceImpl {
	s.nowFn = nowFn
	return s
}

// LogDay implements ProgressService.LogDay
func (s *progressServiceImpl) LogDay(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
	completed bool,
	effort domain.EffortLevel,
) (*domain.DailyLog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	entry, err := domain.NewDailyLog(userID, date, completed, effort)
	if err != nil {
		log.Warn("rejected invalid daily log",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.dailyLogRepo.WithTx(tx).Upsert(ctx, entry)
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			return nil, err
		}
		log.Error("failed to save daily log",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Time("log_date", entry.LogDate))
		return nil, NewServiceError("log_day", "failed to save daily log", err)
	}

	s.invalidateSummary(ctx, userID)

	log.Debug("daily log saved",
		slog.String("user_id", userID.String()),
		slog.Time("log_date", entry.LogDate),
		slog.Bool("completed", completed),
		slog.String("effort", string(effort)))

	return entry, nil
}

// Summary implements ProgressService.Summary
func (s *progressServiceImpl) Summary(
	ctx context.Context,
	userID uuid.UUID,
) (progress.Summary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.cache != nil {
		cached, err := s.cache.GetSummary(ctx, userID)
		if err != nil {
			log.Warn("summary cache read failed",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		} else if cached != nil {
			log.Debug("summary served from cache",
				slog.String("user_id", userID.String()))
			return *cached, nil
		}
	}

	logs, err := s.dailyLogRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to load activity history",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return progress.Summary{}, NewServiceError("summary", "failed to load activity history", err)
	}

	summary := s.progressSvc.Summarize(toActivities(logs))

	if s.cache != nil {
		if err := s.cache.SetSummary(ctx, userID, summary); err != nil {
			log.Warn("summary cache write failed",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
	}

	log.Debug("summary computed",
		slog.String("user_id", userID.String()),
		slog.Int("current_streak", summary.CurrentStreak),
		slog.Int("longest_streak", summary.LongestStreak),
		slog.Int("total_completions", summary.TotalCompletions))

	return summary, nil
}

// Calendar implements ProgressService.Calendar
func (s *progressServiceImpl) Calendar(
	ctx context.Context,
	userID uuid.UUID,
	year int,
	month time.Month,
) (progress.MonthView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Checked before the range query: time.Date would silently normalize
	// an out-of-range month into a different month's bounds.
	if month < time.January || month > time.December {
		return progress.MonthView{}, progress.ErrInvalidMonth
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := now.New(monthStart).EndOfMonth()

	logs, err := s.dailyLogRepo.ListByUserBetween(ctx, userID, monthStart, monthEnd)
	if err != nil {
		log.Error("failed to load month activity",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int("year", year),
			slog.String("month", month.String()))
		return progress.MonthView{}, NewServiceError("calendar", "failed to load month activity", err)
	}

	completed := make([]time.Time, 0, len(logs))
	for _, entry := range logs {
		if entry.Completed {
			completed = append(completed, entry.LogDate)
		}
	}

	view, err := s.progressSvc.MonthView(year, month, completed, s.nowFn())
	if err != nil {
		return progress.MonthView{}, err
	}

	return view, nil
}

// invalidateSummary drops the user's cached summary after a mutation.
// Failures are logged and ignored; the entry expires on its own.
func (s *progressServiceImpl) invalidateSummary(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}

	if err := s.cache.InvalidateSummary(ctx, userID); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("summary cache invalidation failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
	}
}

// toActivities converts stored logs into the aggregator's input shape,
// preserving the most-recent-first ordering the store returns.
func toActivities(logs []*domain.DailyLog) []progress.DayActivity {
	activities := make([]progress.DayActivity, len(logs))
	for i, entry := range logs {
		activities[i] = progress.DayActivity{
			Date:      entry.LogDate,
			Completed: entry.Completed,
			Effort:    entry.Effort,
		}
	}
	return activities
}
