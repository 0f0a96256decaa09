package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/verdanthq/verdant-api/internal/config"
)

// migrationTableName is the table goose uses to track applied migrations.
const migrationTableName = "schema_migrations"

// handleMigrations executes the requested migration command. It is called
// from run() when the -migrate flag is set; the process exits afterwards
// without starting the HTTP server.
func handleMigrations(cfg *config.Config, command, migrationName string) error {
	slog.Info("Executing migrations", "command", command)

	// The create command needs the new migration's name
	var args []string
	if command == "create" && migrationName != "" {
		args = append(args, migrationName)
	}

	return executeMigration(cfg, command, args...)
}

// executeMigration executes database migrations using goose
func executeMigration(cfg *config.Config, command string, args ...string) error {
	// Use a correlation ID for all migration logs to allow tracing the entire operation
	correlationID := uuid.New().String()
	migrationLogger := slog.Default().With(
		"correlation_id", correlationID,
		"component", "migrations",
		"command", command,
	)

	startTime := time.Now()
	migrationLogger.Info("Starting migration operation",
		"operation", fmt.Sprintf("goose %s", command))

	// Configure goose to use the custom slog logger adapter
	goose.SetLogger(&slogGooseLogger{})

	dbURL := cfg.Database.URL
	if dbURL == "" {
		migrationLogger.Error("Database URL is empty",
			"resolution", "check VERDANT_DATABASE_URL or the config file")
		return fmt.Errorf("database URL is empty: check your configuration")
	}

	// Log the database URL with the password masked
	migrationLogger.Info("Using database URL",
		"url", maskDatabaseURL(dbURL),
		"host", extractHostFromURL(dbURL))

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		migrationLogger.Error("Failed to open database connection", "error", err)
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			migrationLogger.Error("Error closing database connection", "error", closeErr)
		}
		migrationLogger.Info("Migration operation completed",
			"operation", fmt.Sprintf("goose %s", command),
			"duration_ms", time.Since(startTime).Milliseconds())
	}()

	// Migrations run sequentially, so a small pool is enough
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Minute * 5)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		migrationLogger.Error("Database ping failed", "error", err)
		return fmt.Errorf(
			"failed to connect to database: %w (check connection string, credentials, and database availability)",
			err,
		)
	}

	migrationsDirPath, err := findMigrationsDir()
	if err != nil {
		migrationLogger.Error("Failed to locate migrations directory", "error", err)
		return fmt.Errorf("failed to locate migrations directory: %w", err)
	}
	migrationLogger.Info("Using migrations directory", "path", migrationsDirPath)

	if err := goose.SetDialect("postgres"); err != nil {
		migrationLogger.Error("Failed to set dialect", "error", err)
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	goose.SetTableName(migrationTableName)

	// Record the current version so version changes can be logged afterwards
	currentVersion := queryMigrationVersion(db, migrationLogger)

	commandStartTime := time.Now()

	switch command {
	case "up":
		migrationLogger.Info("Applying pending migrations")
		err = goose.Up(db, migrationsDirPath)
	case "down":
		migrationLogger.Info("Rolling back one migration version")
		err = goose.Down(db, migrationsDirPath)
	case "reset":
		migrationLogger.Info("Resetting all migrations (roll back to zero)")
		err = goose.Reset(db, migrationsDirPath)
	case "status":
		migrationLogger.Info("Checking migration status")
		err = goose.Status(db, migrationsDirPath)
	case "version":
		migrationLogger.Info("Retrieving current migration version")
		err = goose.Version(db, migrationsDirPath)
	case "create":
		// The migration name is required when creating a new migration
		if len(args) == 0 || args[0] == "" {
			migrationLogger.Error("Migration create command requires a name parameter")
			return fmt.Errorf("migration name is required for 'create' command")
		}
		migrationLogger.Info("Creating new migration",
			"name", args[0],
			"directory", migrationsDirPath)
		err = goose.Create(db, migrationsDirPath, args[0], "sql")
	default:
		migrationLogger.Error("Unknown migration command",
			"command", command,
			"valid_commands", []string{"up", "down", "reset", "status", "version", "create"})
		return fmt.Errorf(
			"unknown migration command: %s (expected up, down, reset, status, version, or create)",
			command,
		)
	}

	if err != nil {
		migrationLogger.Error("Migration command failed",
			"command", command,
			"error", err,
			"duration_ms", time.Since(commandStartTime).Milliseconds())
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	migrationLogger.Info("Migration command executed successfully",
		"command", command,
		"duration_ms", time.Since(commandStartTime).Milliseconds())

	// Log whether the schema version moved
	if command == "up" || command == "down" || command == "reset" {
		newVersion := queryMigrationVersion(db, migrationLogger)
		if newVersion != currentVersion {
			migrationLogger.Info("Database schema version changed",
				"previous_version", currentVersion,
				"new_version", newVersion)
		} else {
			migrationLogger.Info("Database schema version unchanged", "version", newVersion)
		}
	}

	return nil
}

// queryMigrationVersion returns the latest applied migration version, or "0"
// on a clean database. Lookup failures are logged and reported as "unknown"
// so version reporting never aborts a migration run.
func queryMigrationVersion(db *sql.DB, logger *slog.Logger) string {
	var version string
	err := db.QueryRow(
		fmt.Sprintf("SELECT version_id FROM %s ORDER BY version_id DESC LIMIT 1", migrationTableName),
	).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "0"
		}
		logger.Warn("Failed to retrieve current migration version", "error", err)
		return "unknown"
	}
	return version
}
