package executil

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"time"
)

// Runner executes an external command and returns its combined
// stdout/stderr text. Implementations must never fail: a missing
// executable or non-zero exit yields the text produced so far,
// possibly empty.
//
// Design decision: We use an interface rather than a function type so
// pipeline steps and tool adapters can be tested against a recording
// fake, and so the real implementation can carry configuration
// (timeout, logger) without widening the call sites.
type Runner interface {
	// Run launches name with args, waits for completion, and returns
	// the combined output text.
	Run(ctx context.Context, name string, args ...string) string
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct {
	// timeout bounds each invocation. Zero means no timeout, matching
	// the baseline behavior where a hung tool blocks the pipeline.
	timeout time.Duration

	// logger for per-invocation diagnostics.
	logger *slog.Logger
}

// ExecRunnerOption configures an ExecRunner.
type ExecRunnerOption func(*ExecRunner)

// WithTimeout bounds each tool invocation. A hung external process is
// killed when the timeout elapses; its partial output is still returned.
func WithTimeout(d time.Duration) ExecRunnerOption {
	return func(r *ExecRunner) {
		r.timeout = d
	}
}

// WithLogger sets a custom logger for the runner.
func WithLogger(logger *slog.Logger) ExecRunnerOption {
	return func(r *ExecRunner) {
		r.logger = logger
	}
}

// NewExecRunner creates an ExecRunner with the given options.
func NewExecRunner(opts ...ExecRunnerOption) *ExecRunner {
	r := &ExecRunner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Run executes the command and returns its combined stdout/stderr text.
// Failures are absorbed: the exit code or launch error is logged as a
// non-fatal diagnostic and whatever output was captured is returned.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) string {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)

	// One buffer for both streams so interleaved tool output stays in
	// emission order, matching what a terminal user would see.
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	switch {
	case err == nil:
		r.logger.Debug("tool completed",
			"tool", name,
			"duration", elapsed,
		)
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			r.logger.Debug("tool exited non-zero",
				"tool", name,
				"exit_code", exitErr.ExitCode(),
				"duration", elapsed,
			)
		} else {
			r.logger.Debug("tool failed to run",
				"tool", name,
				"error", err,
			)
		}
	}

	return buf.String()
}
