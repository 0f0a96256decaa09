package main

import (
	"fmt"
	"log/slog"

	"github.com/verdanthq/verdant-api/internal/config"
	"github.com/verdanthq/verdant-api/internal/platform/logger"
)

// setupAppLogger builds the process-wide slog logger from ServerConfig.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return l, nil
}
