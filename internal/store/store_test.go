package store_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/verdanthq/verdant-api/internal/store"
)

// Both *sql.DB and *sql.Tx must satisfy DBTX so stores can run against a
// connection pool or inside a transaction without code changes.
var (
	_ store.DBTX = (*sql.DB)(nil)
	_ store.DBTX = (*sql.Tx)(nil)
)

// TestErrorDefinitions ensures that the error definitions in the store
// package are defined as expected and can be used with errors.Is.
func TestErrorDefinitions(t *testing.T) {
	t.Parallel()

	t.Run("entity specific not found errors wrap ErrNotFound", func(t *testing.T) {
		t.Parallel()

		for _, err := range []error{
			store.ErrUserNotFound,
			store.ErrProgramNotFound,
			store.ErrEnrollmentNotFound,
			store.ErrDailyLogNotFound,
		} {
			assert.True(t, errors.Is(err, store.ErrNotFound))
			assert.False(t, errors.Is(err, store.ErrDuplicate))
		}
	})

	t.Run("ErrEnrollmentNotFound", func(t *testing.T) {
		t.Parallel()

		err := store.ErrEnrollmentNotFound
		assert.True(t, errors.Is(err, store.ErrEnrollmentNotFound))
		assert.False(t, errors.Is(err, store.ErrUserNotFound))
		assert.Equal(t, "entity not found: enrollment", err.Error())
	})

	t.Run("ErrEmailExists", func(t *testing.T) {
		t.Parallel()

		err := store.ErrEmailExists
		assert.True(t, errors.Is(err, store.ErrDuplicate))
		assert.False(t, errors.Is(err, store.ErrNotFound))
		assert.Equal(t, "entity already exists: email", err.Error())
	})
}
