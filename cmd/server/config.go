package main

import (
	"fmt"
	"log/slog"

	"github.com/verdanthq/verdant-api/internal/config"
)

// loadAppConfig loads configuration and logs a presence-only summary.
// Secrets never reach the log; only whether they were supplied.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)
	slog.Debug("configuration detail",
		"database_url_present", cfg.Database.URL != "",
		"jwt_secret_present", cfg.Auth.JWTSecret != "",
		"redis_addr_present", cfg.Cache.RedisAddr != "",
		"rollover_spec", cfg.Scheduler.RolloverSpec)

	return cfg, nil
}
