package executil

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"testing"
	"time"
)

// discardLogger returns a logger that drops all records.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestExecRunnerRun tests output capture and failure absorption.
func TestExecRunnerRun(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("tests use /bin/sh")
	}

	r := NewExecRunner(WithLogger(discardLogger()))

	t.Run("captures stdout", func(t *testing.T) {
		t.Parallel()

		out := r.Run(context.Background(), "/bin/sh", "-c", "echo hello")
		if strings.TrimSpace(out) != "hello" {
			t.Errorf("expected hello, got %q", out)
		}
	})

	t.Run("merges stderr into output", func(t *testing.T) {
		t.Parallel()

		out := r.Run(context.Background(), "/bin/sh", "-c", "echo out; echo err 1>&2")
		if !strings.Contains(out, "out") || !strings.Contains(out, "err") {
			t.Errorf("expected both streams in output, got %q", out)
		}
	})

	t.Run("non-zero exit is absorbed", func(t *testing.T) {
		t.Parallel()

		out := r.Run(context.Background(), "/bin/sh", "-c", "echo partial; exit 3")
		if strings.TrimSpace(out) != "partial" {
			t.Errorf("expected partial output despite failure, got %q", out)
		}
	})

	t.Run("missing executable yields empty output", func(t *testing.T) {
		t.Parallel()

		out := r.Run(context.Background(), "subtrace-no-such-binary-xyz")
		if out != "" {
			t.Errorf("expected empty output, got %q", out)
		}
	})
}

// TestExecRunnerTimeout tests that a hung process is killed when a
// timeout is configured.
func TestExecRunnerTimeout(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("tests use /bin/sh")
	}

	r := NewExecRunner(
		WithLogger(discardLogger()),
		WithTimeout(100*time.Millisecond),
	)

	start := time.Now()
	r.Run(context.Background(), "/bin/sh", "-c", "sleep 10")
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("expected timeout to fire, took %v", elapsed)
	}
}

// TestExecRunnerContextCancellation tests that cancelling the context
// stops the process without raising an error to the caller.
func TestExecRunnerContextCancellation(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("tests use /bin/sh")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewExecRunner(WithLogger(discardLogger()))
	out := r.Run(ctx, "/bin/sh", "-c", "echo never")
	if out != "" {
		t.Errorf("expected empty output for cancelled context, got %q", out)
	}
}
