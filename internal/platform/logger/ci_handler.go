package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/verdanthq/verdant-api/internal/ciutil"
)

// CIHandler is a slog.Handler that decorates log records with CI provider
// metadata and source code location, making test and build output easier to
// correlate with the run that produced it.
type CIHandler struct {
	handler   slog.Handler      // inner JSON handler
	metadata  map[string]string // provider attrs stamped on every record
	addSource bool
}

// NewCIHandler creates a CIHandler writing JSON records to out. Source
// location is emitted when opts.AddSource is set; the handler resolves it
// from the record itself rather than delegating to the inner JSON handler.
func NewCIHandler(out io.Writer, opts *slog.HandlerOptions) *CIHandler {
	metadata := getCIMetadata()

	// Work on a copy so the caller's options are left untouched.
	handlerOpts := &slog.HandlerOptions{}
	if opts != nil {
		cloned := *opts
		handlerOpts = &cloned
	}

	addSource := handlerOpts.AddSource
	// Source attrs come from Handle below; the inner handler must not add
	// its own source group on top.
	handlerOpts.AddSource = false

	return &CIHandler{
		handler:   slog.NewJSONHandler(out, handlerOpts),
		metadata:  metadata,
		addSource: addSource,
	}
}

// Enabled implements the slog.Handler interface.
func (h *CIHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs implements the slog.Handler interface.
func (h *CIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CIHandler{
		handler:   h.handler.WithAttrs(attrs),
		metadata:  h.metadata,
		addSource: h.addSource,
	}
}

// WithGroup implements the slog.Handler interface.
func (h *CIHandler) WithGroup(name string) slog.Handler {
	return &CIHandler{
		handler:   h.handler.WithGroup(name),
		metadata:  h.metadata,
		addSource: h.addSource,
	}
}

// Handle implements the slog.Handler interface.
func (h *CIHandler) Handle(ctx context.Context, record slog.Record) error {
	// Clone the record to avoid modifying the original.
	enhanced := record.Clone()

	// Resolve source information from the record's program counter.
	if h.addSource && record.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{record.PC})
		frame, _ := frames.Next()
		if frame.File != "" {
			enhanced.AddAttrs(
				slog.String("source_file", frame.File),
				slog.Int("source_line", frame.Line),
				slog.String("source_func", frame.Function),
			)
		}
	}

	for key, value := range h.metadata {
		enhanced.AddAttrs(slog.String(key, value))
	}

	// Sub-second precision for ordering interleaved records in CI logs.
	nanoseconds := enhanced.Time.UnixNano() % int64(time.Second)
	enhanced.AddAttrs(slog.Int64("timestamp_nano", nanoseconds))

	return h.handler.Handle(ctx, enhanced)
}

// isInCIEnvironment reports whether the process is running under a known CI
// provider.
func isInCIEnvironment() bool {
	return ciutil.IsCI()
}

// getCIMetadata collects provider metadata from the environment. The result
// is empty outside CI, so local log records stay unadorned.
func getCIMetadata() map[string]string {
	metadata := make(map[string]string)
	if !ciutil.IsCI() {
		return metadata
	}

	metadata["ci"] = "true"

	switch {
	case ciutil.IsGitHubActions():
		metadata["ci_provider"] = "github-actions"
		for attr, env := range map[string]string{
			"ci_run_id":     "GITHUB_RUN_ID",
			"ci_run_number": "GITHUB_RUN_NUMBER",
			"ci_workflow":   "GITHUB_WORKFLOW",
			"ci_ref":        "GITHUB_REF",
			"ci_sha":        "GITHUB_SHA",
		} {
			if v := os.Getenv(env); v != "" {
				metadata[attr] = v
			}
		}
	case ciutil.IsGitLabCI():
		metadata["ci_provider"] = "gitlab-ci"
		for attr, env := range map[string]string{
			"ci_pipeline_id": "CI_PIPELINE_ID",
			"ci_job_id":      "CI_JOB_ID",
			"ci_ref":         "CI_COMMIT_REF_NAME",
			"ci_sha":         "CI_COMMIT_SHA",
		} {
			if v := os.Getenv(env); v != "" {
				metadata[attr] = v
			}
		}
	}

	return metadata
}

// TestFailureLogger provides specialized logging for test failures. It
// structures failure details so CI log tooling can parse them.
type TestFailureLogger struct {
	logger *slog.Logger
}

// NewTestFailureLogger creates a new test failure logger.
func NewTestFailureLogger(baseLogger *slog.Logger) *TestFailureLogger {
	return &TestFailureLogger{
		logger: baseLogger,
	}
}

// LogTestFailure logs a test failure with diagnostic detail at ERROR level.
func (tfl *TestFailureLogger) LogTestFailure(
	ctx context.Context,
	testName string,
	err error,
	details map[string]interface{},
) {
	attrs := []any{"test_name", testName, "test_status", "failed"}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}
	for k, v := range details {
		attrs = append(attrs, k, v)
	}

	tfl.logger.ErrorContext(ctx, "TEST FAILURE", attrs...)
}

// LogTestSkip logs when a test is skipped.
func (tfl *TestFailureLogger) LogTestSkip(ctx context.Context, testName string, reason string) {
	tfl.logger.WarnContext(ctx, "TEST SKIPPED",
		"test_name", testName,
		"test_status", "skipped",
		"reason", reason,
	)
}
