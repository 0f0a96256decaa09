package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/verdanthq/verdant-api/internal/domain"
	"github.com/verdanthq/verdant-api/internal/platform/logger"
	"github.com/verdanthq/verdant-api/internal/store"
)

// PostgresProgramStore implements the store.ProgramStore interface
// using a PostgreSQL database as the storage backend. The catalog is
// read-only at runtime; rows are seeded by migration.
type PostgresProgramStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgramStore creates a new PostgreSQL implementation of the
// ProgramStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProgramStore(db store.DBTX, logger *slog.Logger) *PostgresProgramStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgramStore{
		db:     db,
		logger: logger.With(slog.String("component", "program_store")),
	}
}

// Ensure PostgresProgramStore implements store.ProgramStore interface
var _ store.ProgramStore = (*PostgresProgramStore)(nil)

// loadDays fetches a program's day definitions ordered by day number.
func (s *PostgresProgramStore) loadDays(
	ctx context.Context,
	programID string,
) ([]domain.ProgramDay, error) {
	query := `
		SELECT day, item_ids
		FROM program_days
		WHERE program_id = $1
		ORDER BY day
	`

	rows, err := s.db.QueryContext(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var days []domain.ProgramDay
	for rows.Next() {
		var day domain.ProgramDay
		var itemsJSON []byte

		if err := rows.Scan(&day.Day, &itemsJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(itemsJSON, &day.ItemIDs); err != nil {
			return nil, fmt.Errorf("failed to decode item ids: %w", err)
		}

		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return days, nil
}

// GetByID implements store.ProgramStore.GetByID
// Returns store.ErrProgramNotFound if no program with that ID exists.
func (s *PostgresProgramStore) GetByID(ctx context.Context, id string) (*domain.Program, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving program by ID", slog.String("program_id", id))

	query := `
		SELECT id, title, description, duration_days, created_at, updated_at
		FROM programs
		WHERE id = $1
	`

	var program domain.Program
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&program.ID,
		&program.Title,
		&program.Description,
		&program.DurationDays,
		&program.CreatedAt,
		&program.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("program not found", slog.String("program_id", id))
			return nil, store.ErrProgramNotFound
		}
		log.Error("failed to get program by ID",
			slog.String("error", err.Error()),
			slog.String("program_id", id))
		return nil, err
	}

	program.Days, err = s.loadDays(ctx, id)
	if err != nil {
		log.Error("failed to load program days",
			slog.String("error", err.Error()),
			slog.String("program_id", id))
		return nil, err
	}

	return &program, nil
}

// List implements store.ProgramStore.List
// It retrieves all catalog programs with their day definitions, ordered by
// identifier.
func (s *PostgresProgramStore) List(ctx context.Context) ([]*domain.Program, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, duration_days, created_at, updated_at
		FROM programs
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list programs", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var programs []*domain.Program
	for rows.Next() {
		var program domain.Program
		err := rows.Scan(
			&program.ID,
			&program.Title,
			&program.Description,
			&program.DurationDays,
			&program.CreatedAt,
			&program.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan program row", slog.String("error", err.Error()))
			return nil, err
		}
		programs = append(programs, &program)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	for _, program := range programs {
		program.Days, err = s.loadDays(ctx, program.ID)
		if err != nil {
			log.Error("failed to load program days",
				slog.String("error", err.Error()),
				slog.String("program_id", program.ID))
			return nil, err
		}
	}

	if programs == nil {
		programs = []*domain.Program{}
	}

	log.Debug("listed programs", slog.Int("count", len(programs)))
	return programs, nil
}
