package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/verdanthq/verdant-api/internal/config"
)

// Setup builds the application logger from the server configuration and
// installs it as the process-wide default, so the package-level slog
// functions route through it as well. Output is JSON on stdout; under a CI
// provider the handler is wrapped so every record carries build metadata.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	level, ok := parseLevel(cfg.LogLevel)
	if !ok {
		// The JSON logger does not exist yet, so the warning goes to stderr
		// through a throwaway text logger.
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Warn(
			"invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if isInCIEnvironment() {
		handler = NewCIHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, nil
}

// parseLevel maps a configured level name to its slog level, ignoring case.
// Unknown names report ok=false and fall back to info.
func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
