// Package postgres implements the internal/store interfaces over raw SQL
// against PostgreSQL (pgx stdlib driver). It owns query text, row-to-entity
// mapping, and the translation of driver errors into the store package's
// sentinel taxonomy.
package postgres
