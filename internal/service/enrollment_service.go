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
	"github.com/verdanthq/verdant-api/internal/events"
	"github.com/verdanthq/verdant-api/internal/platform/logger"
	"github.com/verdanthq/verdant-api/internal/store"
	"github.com/verdanthq/verdant-api/internal/task"
)

// EnrollmentRepository defines the repository interface for the service layer
type EnrollmentRepository interface {
	// Create saves a new enrollment to the store
	Create(ctx context.Context, enrollment *domain.ProgramEnrollment) error

	// GetByID retrieves an enrollment with its day completion records
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProgramEnrollment, error)

	// GetByIDForUpdate retrieves an enrollment and locks its row for the
	// remainder of the transaction. Must be called on a transactional
	// repository obtained via WithTx.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.ProgramEnrollment, error)

	// GetActiveByUser retrieves the user's single active enrollment
	GetActiveByUser(ctx context.Context, userID uuid.UUID) (*domain.ProgramEnrollment, error)

	// Update persists the enrollment's scalar fields
	Update(ctx context.Context, enrollment *domain.ProgramEnrollment) error

	// UpsertDayCompletion saves one day completion record for the enrollment
	UpsertDayCompletion(
		ctx context.Context,
		enrollmentID uuid.UUID,
		record domain.DayCompletionRecord,
	) error

	// DeactivateAllForUser clears the active flag on every enrollment the
	// user has, making room for a new active one
	DeactivateAllForUser(ctx context.Context, userID uuid.UUID) error

	// WithTx returns a new repository instance that uses the provided transaction
	// This is used for transactional operations
	WithTx(tx *sql.Tx) EnrollmentRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// ProgramRepository defines the read-only catalog interface for the
// service layer. store.ProgramStore satisfies it directly.
type ProgramRepository interface {
	// GetByID retrieves a program by its catalog identifier
	GetByID(ctx context.Context, id string) (*domain.Program, error)

	// List retrieves all programs in the catalog
	List(ctx context.Context) ([]*domain.Program, error)
}

// EnrollmentStatus pairs an enrollment with its resolved program and the
// effective day computed for the current clock reading. The cached
// CurrentDay on the enrollment may briefly trail EffectiveDay; the
// service moves it forward when it can.
type EnrollmentStatus struct {
	Enrollment   *domain.ProgramEnrollment `json:"enrollment"`
	Program      *domain.Program           `json:"program"`
	EffectiveDay int                       `json:"effective_day"`
}

// DayStatus is the read-only completion projection for one program day.
type DayStatus struct {
	Day              int      `json:"day"`
	Completed        bool     `json:"completed"`
	CompletedItemIDs []string `json:"completed_item_ids"`
}

// EnrollmentService provides program enrollment and progress operations.
// It is the host of the enrollment entity: it serializes entity mutations
// through row-locking transactions and enforces the one-active-enrollment
// rule at the store boundary.
type EnrollmentService interface {
	// Enroll creates an active enrollment in the given program, starting
	// today. Any other active enrollment the user has is deactivated in
	// the same transaction.
	Enroll(ctx context.Context, userID uuid.UUID, programID string) (*EnrollmentStatus, error)

	// GetActive retrieves the user's active enrollment with the effective
	// day recomputed from the calendar. Forward movement of the cached
	// current day is persisted.
	GetActive(ctx context.Context, userID uuid.UUID) (*EnrollmentStatus, error)

	// Get retrieves one of the user's enrollments by ID, with its day
	// completion records.
	Get(ctx context.Context, userID, enrollmentID uuid.UUID) (*EnrollmentStatus, error)

	// CompleteItem records a content item as completed on a program day.
	// Marking the same item twice is a no-op.
	CompleteItem(
		ctx context.Context,
		userID, enrollmentID uuid.UUID,
		itemID string,
		day int,
	) (*EnrollmentStatus, error)

	// CompleteDay marks a program day as completed. Completing the final
	// day finalizes the program: the enrollment is stamped, deactivated,
	// today's daily log is upserted, and a completion notice is queued.
	CompleteDay(
		ctx context.Context,
		userID, enrollmentID uuid.UUID,
		day int,
	) (*EnrollmentStatus, error)

	// DayStatus reports whether a day is completed and which items were
	// marked done. Days without a record report empty, never an error.
	DayStatus(ctx context.Context, userID, enrollmentID uuid.UUID, day int) (*DayStatus, error)

	// Abandon deactivates an enrollment without completing it.
	Abandon(ctx context.Context, userID, enrollmentID uuid.UUID) error

	// GetProgram retrieves a catalog program by ID.
	GetProgram(ctx context.Context, programID string) (*domain.Program, error)

	// ListPrograms retrieves the program catalog.
	ListPrograms(ctx context.Context) ([]*domain.Program, error)
}

// enrollmentServiceImpl implements the EnrollmentService interface
type enrollmentServiceImpl struct {
	enrollmentRepo EnrollmentRepository
	programRepo    ProgramRepository
	dailyLogRepo   DailyLogRepository
	progressSvc    progress.Service
	eventEmitter   events.EventEmitter
	cache          SummaryCache
	logger         *slog.Logger
	nowFn          func() time.Time
}

// NewEnrollmentService creates a new EnrollmentService.
// The cache may be nil when caching is disabled; every other dependency
// is required.
func NewEnrollmentService(
	enrollmentRepo EnrollmentRepository,
	programRepo ProgramRepository,
	dailyLogRepo DailyLogRepository,
	progressSvc progress.Service,
	eventEmitter events.EventEmitter,
	cache SummaryCache,
	logger *slog.Logger,
) (EnrollmentService, error) {
	// Validate dependencies
	if enrollmentRepo == nil {
		return nil, NewServiceError("create_service", "enrollmentRepo cannot be nil", nil)
	}
	if programRepo == nil {
		return nil, NewServiceError("create_service", "programRepo cannot be nil", nil)
	}
	if dailyLogRepo == nil {
		return nil, NewServiceError("create_service", "dailyLogRepo cannot be nil", nil)
	}
	if progressSvc == nil {
		return nil, NewServiceError("create_service", "progressSvc cannot be nil", nil)
	}
	if eventEmitter == nil {
		return nil, NewServiceError("create_service", "eventEmitter cannot be nil", nil)
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &enrollmentServiceImpl{
		enrollmentRepo: enrollmentRepo,
		programRepo:    programRepo,
		dailyLogRepo:   dailyLogRepo,
		progressSvc:    progressSvc,
		eventEmitter:   eventEmitter,
		cache:          cache,
		logger:         logger.With(slog.String("component", "enrollment_service")),
		nowFn:          time.Now,
	}, nil
}

// WithNowFunc replaces the service clock. Tests use it to fix the
// calendar; production wiring leaves the default.
func (s *enrollmentServiceImpl) WithNowFunc(nowFn func() time.Time) *enrollmentServiceImpl {
	s.nowFn = nowFn
	return s
}

// resolveProgram loads the enrollment's catalog program, which carries
// the duration every completion operation validates against.
func (s *enrollmentServiceImpl) resolveProgram(
	ctx context.Context,
	operation, programID string,
) (*domain.Program, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, store.ErrProgramNotFound) {
			return nil, store.ErrProgramNotFound
		}
		return nil, NewServiceError(operation, "failed to resolve program", err)
	}
	return program, nil
}

// Enroll implements EnrollmentService.Enroll
func (s *enrollmentServiceImpl) Enroll(
	ctx context.Context,
	userID uuid.UUID,
	programID string,
) (*EnrollmentStatus, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Resolve the program first; enrollment in an unknown program is
	// rejected before anything is written.
	program, err := s.resolveProgram(ctx, "enroll", programID)
	if err != nil {
		log.Warn("enrollment rejected: program not resolvable",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("program_id", programID))
		return nil, err
	}

	enrollment, err := domain.NewProgramEnrollment(userID, programID, s.nowFn())
	if err != nil {
		log.Error("failed to create enrollment object",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("program_id", programID))
		return nil, NewServiceError("enroll", "failed to create enrollment object", err)
	}

	// Deactivate-then-create in one transaction so the one-active-
	// enrollment-per-user rule holds without a window.
	err = store.RunInTransaction(
		ctx,
		s.enrollmentRepo.DB(),
		func(ctx context.Context, tx *sql.Tx) error {
			txRepo := s.enrollmentRepo.WithTx(tx)

			if err := txRepo.DeactivateAllForUser(ctx, userID); err != nil {
				return NewServiceError("enroll", "failed to deactivate previous enrollments", err)
			}

			if err := txRepo.Create(ctx, enrollment); err != nil {
				return NewServiceError("enroll", "failed to save enrollment", err)
			}

			return nil
		},
	)
	if err != nil {
		log.Error("failed to enroll user in transaction",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("program_id", programID))
		return nil, err
	}

	log.Info("user enrolled in program",
		slog.String("user_id", userID.String()),
		slog.String("program_id", programID),
		slog.String("enrollment_id", enrollment.ID.String()),
		slog.Int("duration_days", program.DurationDays))

	return &EnrollmentStatus{
		Enrollment:   enrollment,
		Program:      program,
		EffectiveDay: enrollment.CurrentDay,
	}, nil
}

// GetActive implements EnrollmentService.GetActive
func (s *enrollmentServiceImpl) GetActive(
	ctx context.Context,
	userID uuid.UUID,
) (*EnrollmentStatus, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	enrollment, err := s.enrollmentRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrEnrollmentNotFound) {
			log.Debug("user has no active enrollment",
				slog.String("user_id", userID.String()))
			return nil, ErrNoActiveEnrollment
		}
		log.Error("failed to retrieve active enrollment",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("get_active", "failed to retrieve active enrollment", err)
	}

	program, err := s.resolveProgram(ctx, "get_active", enrollment.ProgramID)
	if err != nil {
		return nil, err
	}

	day, err := s.progressSvc.EffectiveDay(enrollment.StartDate, s.nowFn(), program.DurationDays)
	if err != nil {
		log.Error("failed to compute effective day",
			slog.String("error", err.Error()),
			slog.String("enrollment_id", enrollment.ID.String()),
			slog.String("program_id", program.ID))
		return nil, NewServiceError("get_active", "failed to compute effective day", err)
	}

	// Persist forward movement of the cached current day. The row lock
	// keeps a concurrent finalization from being overwritten by this
	// refresh.
	if day > enrollment.CurrentDay {
		err = store.RunInTransaction(
			ctx,
			s.enrollmentRepo.DB(),
			func(ctx context.Context, tx *sql.Tx) error {
				txRepo := s.enrollmentRepo.WithTx(tx)

				locked, err := txRepo.GetByIDForUpdate(ctx, enrollment.ID)
				if err != nil {
					return err
				}

				if locked.AdvanceTo(day, s.nowFn()) {
					if err := txRepo.Update(ctx, locked); err != nil {
						return err
					}
				}

				enrollment = locked
				return nil
			},
		)
		if err != nil {
			log.Error("failed to advance current day",
				slog.String("error", err.Error()),
				slog.String("enrollment_id", enrollment.ID.String()),
				slog.Int("effective_day", day))
			return nil, NewServiceError("get_active", "failed to advance current day", err)
		}

		log.Debug("advanced enrollment current day",
			slog.String("enrollment_id", enrollment.ID.String()),
			slog.Int("current_day", enrollment.CurrentDay))
	}

	return &EnrollmentStatus{
		Enrollment:   enrollment,
		Program:      program,
		EffectiveDay: day,
	}, nil
}

// Get implements EnrollmentService.Get
func (s *enrollmentServiceImpl) Get(
	ctx context.Context,
	userID, enrollmentID uuid.UUID,
) (*EnrollmentStatus, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	enrollment, err := s.loadOwned(ctx, s.enrollmentRepo, userID, enrollmentID)
	if err != nil {
		return nil, err
	}

	program, err := s.resolveProgram(ctx, "get_enrollment", enrollment.ProgramID)
	if err != nil {
		return nil, err
	}

	day, err := s.progressSvc.EffectiveDay(enrollment.StartDate, s.nowFn(), program.DurationDays)
	if err != nil {
		return nil, NewServiceError("get_enrollment", "failed to compute effective day", err)
	}

	log.Debug("retrieved enrollment",
		slog.String("enrollment_id", enrollmentID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("effective_day", day))

	return &EnrollmentStatus{
		Enrollment:   enrollment,
		Program:      program,
		EffectiveDay: day,
	}, nil
}

// loadOwned retrieves an enrollment and verifies the requester owns it.
// Run against a transactional repository it is the lock-and-check head
// of every mutating flow.
func (s *enrollmentServiceImpl) loadOwned(
	ctx context.Context,
	repo EnrollmentRepository,
	userID, enrollmentID uuid.UUID,
) (*domain.ProgramEnrollment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	enrollment, err := repo.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, store.ErrEnrollmentNotFound) {
			return nil, store.ErrEnrollmentNotFound
		}
		return nil, NewServiceError("get_enrollment", "failed to retrieve enrollment", err)
	}

	if enrollment.UserID != userID {
		log.Warn("user does not own enrollment",
			slog.String("user_id", userID.String()),
			slog.String("enrollment_id", enrollmentID.String()),
			slog.String("owner_id", enrollment.UserID.String()))
		return nil, ErrEnrollmentNotOwned
	}

	return enrollment, nil
}

// lockOwned is loadOwned against the row lock; mutating flows use it so
// concurrent mutations of the same enrollment serialize.
func (s *enrollmentServiceImpl) lockOwned(
	ctx context.Context,
	txRepo EnrollmentRepository,
	userID, enrollmentID uuid.UUID,
) (*domain.ProgramEnrollment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	enrollment, err := txRepo.GetByIDForUpdate(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, store.ErrEnrollmentNotFound) {
			return nil, store.ErrEnrollmentNotFound
		}
		return nil, err
	}

	if enrollment.UserID != userID {
		log.Warn("user does not own enrollment",
			slog.String("user_id", userID.String()),
			slog.String("enrollment_id", enrollmentID.String()),
			slog.String("owner_id", enrollment.UserID.String()))
		return nil, ErrEnrollmentNotOwned
	}

	return enrollment, nil
}

// passthrough reports whether the error should reach the caller as-is
// instead of being wrapped: sentinels the API layer maps to specific
// status codes, and domain guard errors.
func passthrough(err error) bool {
	return errors.Is(err, store.ErrEnrollmentNotFound) ||
		errors.Is(err, store.ErrProgramNotFound) ||
		errors.Is(err, ErrEnrollmentNotOwned) ||
		errors.Is(err, ErrNoActiveEnrollment) ||
		errors.Is(err, domain.ErrInvalidDuration) ||
		errors.Is(err, domain.ErrOutOfRangeDay) ||
		errors.Is(err, domain.ErrEmptyItemID)
}

// CompleteItem implements EnrollmentService.CompleteItem
func (s *enrollmentServiceImpl) CompleteItem(
	ctx context.Context,
	userID, enrollmentID uuid.UUID,
	itemID string,
	day int,
) (*EnrollmentStatus, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		enrollment *domain.ProgramEnrollment
		program    *domain.Program
	)

	err := store.RunInTransaction(
		ctx,
		s.enrollmentRepo.DB(),
		func(ctx context.Context, tx *sql.Tx) error {
			txRepo := s.enrollmentRepo.WithTx(tx)

			var err error
			enrollment, err = s.lockOwned(ctx, txRepo, userID, enrollmentID)
			if err != nil {
				return err
			}

			program, err = s.resolveProgram(ctx, "complete_item", enrollment.ProgramID)
			if err != nil {
				return err
			}

			if err := enrollment.MarkItemCompleted(itemID, day, program.DurationDays, s.nowFn()); err != nil {
				return err
			}

			record := enrollment.DayCompletions[recordIndex(enrollment, day)]
			if err := txRepo.UpsertDayCompletion(ctx, enrollment.ID, record); err != nil {
				return err
			}

			return txRepo.Update(ctx, enrollment)
		},
	)
	if err != nil {
		if passthrough(err) {
			return nil, err
		}
		log.Error("failed to complete item",
			slog.String("error", err.Error()),
			slog.String("enrollment_id", enrollmentID.String()),
			slog.String("item_id", itemID),
			slog.Int("day", day))
		return nil, NewServiceError("complete_item", "failed to complete item", err)
	}

	log.Debug("item completed",
		slog.String("enrollment_id", enrollmentID.String()),
		slog.String("item_id", itemID),
		slog.Int("day", day))

	return &EnrollmentStatus{
		Enrollment:   enrollment,
		Program:      program,
		EffectiveDay: enrollment.CurrentDay,
	}, nil
}

// CompleteDay implements EnrollmentService.CompleteDay
func (s *enrollmentServiceImpl) CompleteDay(
	ctx context.Context,
	userID, enrollmentID uuid.UUID,
	day int,
) (*EnrollmentStatus, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		enrollment *domain.ProgramEnrollment
		program    *domain.Program
		finalized  bool
	)

	err := store.RunInTransaction(
		ctx,
		s.enrollmentRepo.DB(),
		func(ctx context.Context, tx *sql.Tx) error {
			txRepo := s.enrollmentRepo.WithTx(tx)

			var err error
			enrollment, err = s.lockOwned(ctx, txRepo, userID, enrollmentID)
			if err != nil {
				return err
			}

			program, err = s.resolveProgram(ctx, "complete_day", enrollment.ProgramID)
			if err != nil {
				return err
			}

			finalized, err = enrollment.MarkDayCompleted(day, program.DurationDays, s.nowFn())
			if err != nil {
				return err
			}

			record := enrollment.DayCompletions[recordIndex(enrollment, day)]
			if err := txRepo.UpsertDayCompletion(ctx, enrollment.ID, record); err != nil {
				return err
			}

			if err := txRepo.Update(ctx, enrollment); err != nil {
				return err
			}

			if finalized {
				// Finishing the program counts as activity for the streak.
				// The log write shares the transaction so the completion
				// and its streak credit land together.
				if err := s.upsertCompletionLog(ctx, s.dailyLogRepo.WithTx(tx), userID); err != nil {
					return err
				}
			}

			return nil
		},
	)
	if err != nil {
		if passthrough(err) {
			return nil, err
		}
		log.Error("failed to complete day",
			slog.String("error", err.Error()),
			slog.String("enrollment_id", enrollmentID.String()),
			slog.Int("day", day))
		return nil, NewServiceError("complete_day", "failed to complete day", err)
	}

	log.Info("day completed",
		slog.String("enrollment_id", enrollmentID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("day", day),
		slog.Bool("finalized", finalized))

	// The notice is queued after the commit: a failed delivery must never
	// roll back a completed program, and a rolled-back completion must
	// never send mail. The daily log written above also dates the cached
	// streak summary.
	if finalized {
		s.emitCompletionNotice(ctx, enrollment.ID, userID)

		if s.cache != nil {
			if err := s.cache.InvalidateSummary(ctx, userID); err != nil {
				log.Warn("summary cache invalidation failed",
					slog.String("error", err.Error()),
					slog.String("user_id", userID.String()))
			}
		}
	}

	return &EnrollmentStatus{
		Enrollment:   enrollment,
		Program:      program,
		EffectiveDay: enrollment.CurrentDay,
	}, nil
}

// recordIndex returns the index of the day's completion record.
// Callers run it only after a successful mark operation, which
// guarantees the record exists.
func recordIndex(enrollment *domain.ProgramEnrollment, day int) int {
	for i := range enrollment.DayCompletions {
		if enrollment.DayCompletions[i].Day == day {
			return i
		}
	}
	return -1
}

// upsertCompletionLog marks today's daily log completed, preserving any
// effort tag the user already recorded for the day.
func (s *enrollmentServiceImpl) upsertCompletionLog(
	ctx context.Context,
	txLogRepo DailyLogRepository,
	userID uuid.UUID,
) error {
	// Stored log dates sit at start of day; the lookup bound must too.
	today := now.New(s.nowFn()).BeginningOfDay()

	effort := domain.EffortNone
	existing, err := txLogRepo.ListByUserBetween(ctx, userID, today, today)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		effort = existing[0].Effort
	}

	entry, err := domain.NewDailyLog(userID, today, true, effort)
	if err != nil {
		return err
	}

	return txLogRepo.Upsert(ctx, entry)
}

// emitCompletionNotice queues the program-completed notification. Event
// emission failures are logged and swallowed: the completion is already
// committed and must stand regardless of notification delivery.
func (s *enrollmentServiceImpl) emitCompletionNotice(
	ctx context.Context,
	enrollmentID, userID uuid.UUID,
) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	payload := struct {
		EnrollmentID uuid.UUID `json:"enrollment_id"`
	}{
		EnrollmentID: enrollmentID,
	}

	event, err := events.NewTaskRequestEvent(task.TaskTypeCompletionNotice, payload)
	if err != nil {
		log.Error("failed to create completion notice event",
			slog.String("error", err.Error()),
			slog.String("enrollment_id", enrollmentID.String()),
			slog.String("user_id", userID.String()))
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		log.Error("failed to emit completion notice event",
			slog.String("error", err.Error()),
			slog.String("enrollment_id", enrollmentID.String()),
			slog.String("user_id", userID.String()),
			slog.String("event_id", event.ID.String()))
		return
	}

	log.Info("completion notice event emitted",
		slog.String("enrollment_id", enrollmentID.String()),
		slog.String("user_id", userID.String()),
		slog.String("event_id", event.ID.String()))
}

// DayStatus implements EnrollmentService.DayStatus
func (s *enrollmentServiceImpl) DayStatus(
	ctx context.Context,
	userID, enrollmentID uuid.UUID,
	day int,
) (*DayStatus, error) {
	enrollment, err := s.loadOwned(ctx, s.enrollmentRepo, userID, enrollmentID)
	if err != nil {
		return nil, err
	}

	// Completion queries never fail: a day with no record, in range or
	// not, reports not-completed with an empty item list.
	return &DayStatus{
		Day:              day,
		Completed:        enrollment.IsDayCompleted(day),
		CompletedItemIDs: enrollment.CompletedItemIDs(day),
	}, nil
}

// Abandon implements EnrollmentService.Abandon
func (s *enrollmentServiceImpl) Abandon(
	ctx context.Context,
	userID, enrollmentID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(
		ctx,
		s.enrollmentRepo.DB(),
		func(ctx context.Context, tx *sql.Tx) error {
			txRepo := s.enrollmentRepo.WithTx(tx)

			enrollment, err := s.lockOwned(ctx, txRepo, userID, enrollmentID)
			if err != nil {
				return err
			}

			enrollment.Deactivate(s.nowFn())
			return txRepo.Update(ctx, enrollment)
		},
	)
	if err != nil {
		if passthrough(err) {
			return err
		}
		log.Error("failed to abandon enrollment",
			slog.String("error", err.Error()),
			slog.String("enrollment_id", enrollmentID.String()),
			slog.String("user_id", userID.String()))
		return NewServiceError("abandon", "failed to abandon enrollment", err)
	}

	log.Info("enrollment abandoned",
		slog.String("enrollment_id", enrollmentID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// GetProgram implements EnrollmentService.GetProgram
func (s *enrollmentServiceImpl) GetProgram(
	ctx context.Context,
	programID string,
) (*domain.Program, error) {
	return s.resolveProgram(ctx, "get_program", programID)
}

// ListPrograms implements EnrollmentService.ListPrograms
func (s *enrollmentServiceImpl) ListPrograms(ctx context.Context) ([]*domain.Program, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	programs, err := s.programRepo.List(ctx)
	if err != nil {
		log.Error("failed to list programs",
			slog.String("error", err.Error()))
		return nil, NewServiceError("list_programs", "failed to list programs", err)
	}

	return programs, nil
}
