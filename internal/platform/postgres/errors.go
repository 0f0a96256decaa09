package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/verdanthq/verdant-api/internal/store"
)

// Postgres error codes the stores translate into store sentinels.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

func isPGCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// MapError translates driver errors into the store error taxonomy,
// wrapping so the original detail stays inspectable. Errors without a
// mapping come back unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: foreign key violation (%s): %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case pgCheckViolation:
		return fmt.Errorf("%w: check constraint violation (%s): %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case pgNotNullViolation:
		return fmt.Errorf("%w: not null violation (%s): %v", store.ErrInvalidEntity, pgErr.ColumnName, err)
	}

	return err
}

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation. Stores use it to pick a duplicate sentinel before falling
// back to MapError.
func IsUniqueViolation(err error) bool {
	return isPGCode(err, pgUniqueViolation)
}

// IsForeignKeyViolation reports whether err is a postgres foreign key
// violation, which the enrollment and daily log stores map to
// store.ErrInvalidEntity when a user or program reference is dangling.
func IsForeignKeyViolation(err error) bool {
	return isPGCode(err, pgForeignKeyViolation)
}

// IsCheckConstraintViolation reports whether err is a postgres CHECK
// constraint violation.
func IsCheckConstraintViolation(err error) bool {
	return isPGCode(err, pgCheckViolation)
}

// IsNotNullViolation reports whether err is a postgres NOT NULL
// violation.
func IsNotNullViolation(err error) bool {
	return isPGCode(err, pgNotNullViolation)
}

// IsNotFoundError reports whether err is sql.ErrNoRows or anything
// wrapping store.ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, store.ErrNotFound)
}

// CheckRowsAffected turns a zero-row UPDATE or DELETE into a not-found
// error, named after the entity when one is given.
func CheckRowsAffected(result sql.Result, entityName string) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	if entityName == "" {
		return store.ErrNotFound
	}
	return fmt.Errorf("%w: %s not found", store.ErrNotFound, entityName)
}

// MapUniqueViolation resolves a unique violation to specificError when
// one is given, otherwise to store.ErrDuplicate with the most precise
// message the inputs allow. Non-unique errors pass through untouched.
func MapUniqueViolation(err error, entityName, constraintName string, specificError error) error {
	if !IsUniqueViolation(err) {
		return err
	}

	if specificError != nil {
		return fmt.Errorf("%w: %v", specificError, err)
	}

	switch {
	case entityName != "":
		return fmt.Errorf("%w: %s already exists: %v", store.ErrDuplicate, entityName, err)
	case constraintName != "":
		return fmt.Errorf("%w: duplicate value for constraint: %s: %v", store.ErrDuplicate, constraintName, err)
	default:
		return fmt.Errorf("%w: duplicate entry: %v", store.ErrDuplicate, err)
	}
}
