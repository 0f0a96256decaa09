package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/platform/logger"
	"github.com/verdanthq/verdant-api/internal/store"
)

// PostgresEnrollmentStore implements the store.EnrollmentStore interface
// using a PostgreSQL database as the storage backend. Enrollment scalars
// live in the enrollments table; day completion records live in
// enrollment_day_completions keyed by (enrollment_id, day).
type PostgresEnrollmentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEnrollmentStore creates a new PostgreSQL implementation of the
// EnrollmentStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresEnrollmentStore(db store.DBTX, logger *slog.Logger) *PostgresEnrollmentStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEnrollmentStore{
		db:     db,
		logger: logger.With(slog.String("component", "enrollment_store")),
	}
}

// Ensure PostgresEnrollmentStore implements store.EnrollmentStore interface
var _ store.EnrollmentStore = (*PostgresEnrollmentStore)(nil)

// Create implements store.EnrollmentStore.Create
// It saves a new enrollment row; day completion records on the entity are
// ignored because a fresh enrollment has none.
// Returns store.ErrInvalidEntity if the user or program reference does not
// resolve, and store.ErrDuplicate if the user already has an active
// enrollment.
func (s *PostgresEnrollmentStore) Create(
	ctx context.Context,
	enrollment *domain.ProgramEnrollment,
) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate enrollment data
	if err := enrollment.Validate(); err != nil {
		log.Warn("enrollment validation failed during create",
			slog.String("error", err.Error()),
			slog.String("enrollment_id", enrollment.ID.String()))
		return err
	}

	query := `
		INSERT INTO enrollments
			(id, user_id, program_id, start_date, current_day, is_active,
			 completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		enrollment.ID,
		enrollment.UserID,
		enrollment.ProgramID,
		enrollment.StartDate,
		enrollment.CurrentDay,
		enrollment.IsActive,
		enrollment.CompletedAt,
		enrollment.CreatedAt,
		enrollment.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during enrollment creation",
				slog.String("error", err.Error()),
				slog.String("enrollment_id", enrollment.ID.String()),
				slog.String("program_id", enrollment.ProgramID))
			return fmt.Errorf("%w: user or program reference does not resolve",
				store.ErrInvalidEntity)
		}
		if IsUniqueViolation(err) {
			log.Warn("user already has an active enrollment",
				slog.String("user_id", enrollment.UserID.String()))
			return fmt.Errorf("%w: active enrollment", store.ErrDuplicate)
		}

		log.Error("failed to create enrollment",
			slog.String("error", err.Error()),
			slog.String("enrollment_id", enrollment.ID.String()))
		return err
	}

	log.Info("enrollment created successfully",
		slog.String("enrollment_id", enrollment.ID.String()),
		slog.String("user_id", enrollment.UserID.String()),
		slog.String("program_id", enrollment.ProgramID))
	return nil
}

// enrollmentColumns is the scalar column list shared by every enrollment
// select in this store.
const enrollmentColumns = `
	id, user_id, program_id, start_date, current_day, is_active,
	completed_at, created_at, updated_at
`

// scanEnrollment reads one enrollment row from a row scanner.
func scanEnrollment(row interface{ Scan(dest ...any) error }) (*domain.ProgramEnrollment, error) {
	var enrollment domain.ProgramEnrollment
	var completedAt sql.NullTime

	err := row.Scan(
		&enrollment.ID,
		&enrollment.UserID,
		&enrollment.ProgramID,
		&enrollment.StartDate,
		&enrollment.CurrentDay,
		&enrollment.IsActive,
		&completedAt,
		&enrollment.CreatedAt,
		&enrollment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		t := completedAt.Time
		enrollment.CompletedAt = &t
	}

	return &enrollment, nil
}

// loadDayCompletions fetches an enrollment's day completion records in
// insertion order.
func (s *PostgresEnrollmentStore) loadDayCompletions(
	ctx context.Context,
	enrollmentID uuid.UUID,
) ([]domain.DayCompletionRecord, error) {
	query := `
		SELECT day, completed_item_ids, completed_at
		FROM enrollment_day_completions
		WHERE enrollment_id = $1
		ORDER BY completed_at, day
	`

	rows, err := s.db.QueryContext(ctx, query, enrollmentID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var records []domain.DayCompletionRecord
	for rows.Next() {
		var record domain.DayCompletionRecord
		var itemsJSON []byte

		if err := rows.Scan(&record.Day, &itemsJSON, &record.CompletedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(itemsJSON, &record.CompletedItemIDs); err != nil {
			return nil, fmt.Errorf("failed to decode completed item ids: %w", err)
		}

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// getBy loads one enrollment with its day completion records using the
// given WHERE clause and argument.
func (s *PostgresEnrollmentStore) getBy(
	ctx context.Context,
	log *slog.Logger,
	where string,
	arg any,
	forUpdate bool,
) (*domain.ProgramEnrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE ` + where
	if forUpdate {
		query += ` FOR UPDATE`
	}

	enrollment, err := scanEnrollment(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrEnrollmentNotFound
		}
		log.Error("failed to get enrollment",
			slog.String("error", err.Error()))
		return nil, err
	}

	enrollment.DayCompletions, err = s.loadDayCompletions(ctx, enrollment.ID)
	if err != nil {
		log.Error("failed to load day completions",
			slog.String("error", err.Error()),
			slog.String("enrollment_id", enrollment.ID.String()))
		return nil, err
	}

	return enrollment, nil
}

// GetByID implements store.EnrollmentStore.GetByID
// Returns store.ErrEnrollmentNotFound if the enrollment does not exist.
func (s *PostgresEnrollmentStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.ProgramEnrollment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving enrollment by ID", slog.String("enrollment_id", id.String()))
	return s.getBy(ctx, log, `id = $1`, id, false)
}

// GetByIDForUpdate implements store.EnrollmentStore.GetByIDForUpdate
// It locks the enrollment row for the remainder of the transaction so
// concurrent completion flows serialize.
// Returns store.ErrEnrollmentNotFound if the enrollment does not exist.
func (s *PostgresEnrollmentStore) GetByIDForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*domain.ProgramEnrollment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving enrollment by ID for update",
		slog.String("enrollment_id", id.String()))
	return s.getBy(ctx, log, `id = $1`, id, true)
}

// GetActiveByUser implements store.EnrollmentStore.GetActiveByUser
// Returns store.ErrEnrollmentNotFound if the user has no active enrollment.
func (s *PostgresEnrollmentStore) GetActiveByUser(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.ProgramEnrollment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving active enrollment", slog.String("user_id", userID.String()))
	return s.getBy(ctx, log, `user_id = $1 AND is_active`, userID, false)
}

// ListActive implements store.EnrollmentStore.ListActive
// It returns every active enrollment without day completion records; the
// rollover job only needs the scalar fields.
func (s *PostgresEnrollmentStore) ListActive(
	ctx context.Context,
) ([]*domain.ProgramEnrollment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + enrollmentColumns + `
		FROM enrollments
		WHERE is_active
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list active enrollments",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var enrollments []*domain.ProgramEnrollment
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			log.Error("failed to scan enrollment row",
				slog.String("error", err.Error()))
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	if enrollments == nil {
		enrollments = []*domain.ProgramEnrollment{}
	}

	log.Debug("listed active enrollments", slog.Int("count", len(enrollments)))
	return enrollments, nil
}

// Update implements store.EnrollmentStore.Update
// It persists the enrollment's scalar fields; day completion records are
// written through UpsertDayCompletion.
// Returns store.ErrEnrollmentNotFound if the enrollment does not exist.
func (s *PostgresEnrollmentStore) Update(
	ctx context.Context,
	enrollment *domain.ProgramEnrollment,
) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate enrollment data
	if err := enrollment.Validate(); err != nil {
		log.Warn("enrollment validation failed during update",
			slog.String("error", err.Error()),
			slog.String("enrollment_id", enrollment.ID.String()))
		return err
	}

	query := `
		UPDATE enrollments
		SET current_day = $1, is_active = $2, completed_at = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		enrollment.CurrentDay,
		enrollment.IsActive,
		enrollment.CompletedAt,
		enrollment.UpdatedAt,
		enrollment.ID,
	)

	if err != nil {
		log.Error("failed to update enrollment",
			slog.String("error", err.Error()),
			slog.String("enrollment_id", enrollment.ID.String()))
		return err
	}

	if err := CheckRowsAffected(result, "enrollment"); err != nil {
		log.Debug("enrollment not found for update",
			slog.String("enrollment_id", enrollment.ID.String()))
		return store.ErrEnrollmentNotFound
	}

	log.Debug("enrollment updated successfully",
		slog.String("enrollment_id", enrollment.ID.String()),
		slog.Int("current_day", enrollment.CurrentDay),
		slog.Bool("is_active", enrollment.IsActive))
	return nil
}

// UpsertDayCompletion implements store.EnrollmentStore.UpsertDayCompletion
// It inserts the day's record or replaces the item list of an existing one.
// The completion stamp is kept from the first insert so repeat completions
// never move it.
// Returns store.ErrInvalidEntity if the enrollment does not exist.
func (s *PostgresEnrollmentStore) UpsertDayCompletion(
	ctx context.Context,
	enrollmentID uuid.UUID,
	record domain.DayCompletionRecord,
) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate record data
	if err := record.Validate(); err != nil {
		log.Warn("day completion validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("enrollment_id", enrollmentID.String()),
			slog.Int("day", record.Day))
		return err
	}

	items := record.CompletedItemIDs
	if items == nil {
		items = []string{} // nil would encode as JSON null
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode completed item ids: %w", err)
	}

	query := `
		INSERT INTO enrollment_day_completions
			(enrollment_id, day, completed_item_ids, completed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (enrollment_id, day)
		DO UPDATE SET completed_item_ids = EXCLUDED.completed_item_ids
	`

	_, err = s.db.ExecContext(
		ctx,
		query,
		enrollmentID,
		record.Day,
		itemsJSON,
		record.CompletedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during day completion upsert",
				slog.String("enrollment_id", enrollmentID.String()),
				slog.Int("day", record.Day))
			return fmt.Errorf("%w: enrollment with ID %s not found",
				store.ErrInvalidEntity, enrollmentID)
		}

		log.Error("failed to upsert day completion",
			slog.String("error", err.Error()),
			slog.String("enrollment_id", enrollmentID.String()),
			slog.Int("day", record.Day))
		return err
	}

	log.Debug("day completion upserted",
		slog.String("enrollment_id", enrollmentID.String()),
		slog.Int("day", record.Day),
		slog.Int("item_count", len(items)))
	return nil
}

// DeactivateAllForUser implements store.EnrollmentStore.DeactivateAllForUser
// It clears the active flag on all of the user's active enrollments.
// Deactivating a user with no active enrollment is not an error.
func (s *PostgresEnrollmentStore) DeactivateAllForUser(
	ctx context.Context,
	userID uuid.UUID,
) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE enrollments
		SET is_active = FALSE, updated_at = NOW()
		WHERE user_id = $1 AND is_active
	`

	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to deactivate enrollments",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	if rows, err := result.RowsAffected(); err == nil && rows > 0 {
		log.Info("deactivated enrollments",
			slog.String("user_id", userID.String()),
			slog.Int64("count", rows))
	}

	return nil
}

// WithTx implements store.EnrollmentStore.WithTx
// It returns a new store instance bound to the given transaction.
func (s *PostgresEnrollmentStore) WithTx(tx *sql.Tx) store.EnrollmentStore {
	return &PostgresEnrollmentStore{
		db:     tx,
		logger: s.logger,
	}
}
