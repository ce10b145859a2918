package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SkyH34D/subtrace/internal/model"
)

// okRun returns a RunFunc that records the targets it was called with.
func okRun(calls *[]string, mu *sync.Mutex) RunFunc {
	return func(_ context.Context, target string) (*model.RunResult, error) {
		mu.Lock()
		*calls = append(*calls, target)
		mu.Unlock()

		domain, err := model.NewDomain(target)
		if err != nil {
			return nil, err
		}
		return model.NewRunResult(domain), nil
	}
}

func TestNewBatchProcessor(t *testing.T) {
	t.Parallel()

	t.Run("defaults to sequential processing", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func(context.Context, string) (*model.RunResult, error) {
			return nil, nil
		})
		if bp.concurrency != 1 {
			t.Errorf("expected concurrency 1, got %d", bp.concurrency)
		}
		if bp.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("applies options", func(t *testing.T) {
		t.Parallel()

		logger := discardLogger()
		bp := NewBatchProcessor(func(context.Context, string) (*model.RunResult, error) {
			return nil, nil
		}, WithConcurrency(4), WithBatchLogger(logger))

		if bp.concurrency != 4 {
			t.Errorf("expected concurrency 4, got %d", bp.concurrency)
		}
		if bp.logger != logger {
			t.Error("expected custom logger")
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func(context.Context, string) (*model.RunResult, error) {
			return nil, nil
		}, WithConcurrency(0))
		if bp.concurrency != 1 {
			t.Errorf("expected concurrency 1, got %d", bp.concurrency)
		}
	})
}

func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("returns results in target order", func(t *testing.T) {
		t.Parallel()

		var (
			calls []string
			mu    sync.Mutex
		)
		bp := NewBatchProcessor(okRun(&calls, &mu), WithBatchLogger(discardLogger()), WithConcurrency(3))

		targets := []string{"a.example.com", "b.example.com", "c.example.com"}
		results, err := bp.ProcessBatch(context.Background(), targets)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != len(targets) {
			t.Fatalf("expected %d results, got %d", len(targets), len(results))
		}
		for i, target := range targets {
			if results[i] == nil {
				t.Fatalf("expected result for %s", target)
			}
			if got := results[i].Domain.String(); got != target {
				t.Errorf("result %d: expected domain %s, got %s", i, target, got)
			}
		}
		if len(calls) != len(targets) {
			t.Errorf("expected %d runs, got %d", len(targets), len(calls))
		}
	})

	t.Run("failed run leaves a nil slot without stopping the batch", func(t *testing.T) {
		t.Parallel()

		run := func(_ context.Context, target string) (*model.RunResult, error) {
			if target == "broken.example.com" {
				return nil, errors.New("tool exploded")
			}
			domain, err := model.NewDomain(target)
			if err != nil {
				return nil, err
			}
			return model.NewRunResult(domain), nil
		}
		bp := NewBatchProcessor(run, WithBatchLogger(discardLogger()))

		results, err := bp.ProcessBatch(context.Background(),
			[]string{"a.example.com", "broken.example.com", "c.example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if results[0] == nil || results[2] == nil {
			t.Error("expected surviving targets to produce results")
		}
		if results[1] != nil {
			t.Error("expected nil slot for the failed target")
		}
	})

	t.Run("sequential default never overlaps runs", func(t *testing.T) {
		t.Parallel()

		var active, maxActive int32
		run := func(_ context.Context, target string) (*model.RunResult, error) {
			n := atomic.AddInt32(&active, 1)
			for {
				cur := atomic.LoadInt32(&maxActive)
				if n <= cur || atomic.CompareAndSwapInt32(&maxActive, cur, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&active, -1)

			domain, err := model.NewDomain(target)
			if err != nil {
				return nil, err
			}
			return model.NewRunResult(domain), nil
		}
		bp := NewBatchProcessor(run, WithBatchLogger(discardLogger()))

		if _, err := bp.ProcessBatch(context.Background(),
			[]string{"a.example.com", "b.example.com", "c.example.com"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := atomic.LoadInt32(&maxActive); got != 1 {
			t.Errorf("expected at most 1 concurrent run, observed %d", got)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var calls []string
		var mu sync.Mutex
		bp := NewBatchProcessor(okRun(&calls, &mu), WithBatchLogger(discardLogger()))

		_, err := bp.ProcessBatch(ctx, []string{"a.example.com", "b.example.com"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("empty target list completes immediately", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func(context.Context, string) (*model.RunResult, error) {
			t.Error("run should not be called")
			return nil, nil
		}, WithBatchLogger(discardLogger()))

		results, err := bp.ProcessBatch(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected no results, got %d", len(results))
		}
	})
}
