package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SkyH34D/subtrace/internal/model"
)

// RunFunc executes the full pipeline for one target domain and returns
// its run result. The BatchProcessor calls it once per target.
type RunFunc func(ctx context.Context, target string) (*model.RunResult, error)

// BatchProcessor handles concurrent scanning of multiple target domains.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Each domain's pipeline stays strictly sequential; only whole runs
// execute in parallel, so per-run artifact naming and report section
// ordering are identical to a sequential batch.
type BatchProcessor struct {
	// run executes the pipeline for a single target.
	// We use a function rather than a shared pipeline instance so each
	// run gets fresh state and its own output directory.
	run RunFunc

	// concurrency is the maximum number of concurrent runs.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed run results.
	// Access is synchronized via mutex.
	results []*model.RunResult
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent runs.
// Default is 1, preserving the sequential baseline.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor around a RunFunc.
func NewBatchProcessor(run RunFunc, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		run:         run,
		concurrency: 1,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch runs the pipeline for multiple target domains.
// It respects the configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each target gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// Results are returned in target order. A failed run leaves a nil slot
// and is logged; the error return indicates cancellation only.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, targets []string) ([]*model.RunResult, error) {
	bp.logger.Info("starting batch processing",
		"total_targets", len(targets),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results slice to maintain order
	bp.results = make([]*model.RunResult, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, target := range targets {
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Info("scanning target",
				"target", target,
				"index", i+1,
				"total", len(targets),
			)

			result, err := bp.run(ctx, target)
			if err != nil {
				bp.logger.Warn("run failed",
					"target", target,
					"error", err,
				)
				// Don't return the error to errgroup - remaining
				// targets should still be scanned.
				return nil
			}

			bp.mu.Lock()
			bp.results[i] = result
			bp.mu.Unlock()

			bp.logger.Info("run completed",
				"target", target,
				"artifacts", result.ArtifactCount(),
			)

			return nil
		})
	}

	// Wait for all runs to complete
	err := g.Wait()

	elapsed := time.Since(startTime)
	bp.logger.Info("batch processing complete",
		"total_targets", len(targets),
		"elapsed", elapsed,
	)

	return bp.results, err
}
