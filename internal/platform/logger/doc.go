// Package logger provides structured logging functionality for the application.
//
// It builds on Go's standard library log/slog package: JSON output with
// configurable levels, context helpers for carrying request-scoped loggers,
// and a CI-aware handler that enriches records with build metadata.
package logger
