// Package main implements the entry point for the Verdant API server,
// which tracks users' wellness program enrollments, day-by-day progress,
// and daily activity streaks.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command and exit (up, down, reset, status, version, create)")
	migrationName := flag.String("migration-name", "",
		"name for the new migration file (used with -migrate create)")
	flag.Parse()

	if err := run(*migrateCmd, *migrationName); err != nil {
		log.Fatalf("Fatal: %v", err)
	}
}

// run loads configuration and logging, then either executes the requested
// migration command or initializes the full application and serves HTTP.
func run(migrateCmd, migrationName string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	if migrateCmd != "" {
		return handleMigrations(cfg, migrateCmd, migrationName)
	}

	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	ctx := context.Background()

	app, err := newApplication(ctx, cfg, logger, db)
	if err != nil {
		// The application owns no resources yet besides the database handle.
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Error closing database connection", "error", closeErr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
