package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SkyH34D/subtrace/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// sampleResult builds a completed run result for the given target.
func sampleResult(t *testing.T, domain string, finished time.Time) *model.RunResult {
	t.Helper()

	result := model.NewRunResult(model.MustNewDomain(domain))
	result.Amass = filepath.Join(result.OutputDir, "amass.txt")
	result.Subfinder = filepath.Join(result.OutputDir, "subfinder.txt")
	result.StartedAt = finished.Add(-2 * time.Minute)
	result.FinishedAt = finished
	return result
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, "history.db")); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		opts := Options{
			CreateIfNotExists: false,
			EnableWAL:         true,
		}
		if _, err := Open(filepath.Join(t.TempDir(), "missing"), opts); err == nil {
			t.Error("expected error for missing database")
		}
	})

	t.Run("reopens existing database", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		if _, err := db.Record(context.Background(), sampleResult(t, "example.com", time.Now())); err != nil {
			t.Fatalf("failed to record run: %v", err)
		}
		_ = db.Close()

		opts := Options{CreateIfNotExists: false, EnableWAL: true}
		db2, err := Open(dbDir, opts)
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db2.Close()

		entries, err := db2.Recent(context.Background(), 0)
		if err != nil {
			t.Fatalf("failed to query reopened database: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected 1 entry after reopen, got %d", len(entries))
		}
	})
}

// TestDBRecord tests inserting and retrieving runs.
func TestDBRecord(t *testing.T) {
	t.Parallel()

	t.Run("records a run and returns its ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		id, err := db.Record(ctx, sampleResult(t, "example.com", time.Now()))
		if err != nil {
			t.Fatalf("failed to record run: %v", err)
		}
		if id == 0 {
			t.Error("expected non-zero ID")
		}
	})

	t.Run("round-trips the full run result", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		original := sampleResult(t, "example.com", time.Now())
		id, err := db.Record(ctx, original)
		if err != nil {
			t.Fatalf("failed to record run: %v", err)
		}

		got, err := db.GetRunByID(ctx, id)
		if err != nil {
			t.Fatalf("failed to get run: %v", err)
		}
		if got == nil {
			t.Fatal("expected run, got nil")
		}
		if got.Domain.String() != "example.com" {
			t.Errorf("expected domain example.com, got %s", got.Domain.String())
		}
		if got.Amass != original.Amass {
			t.Errorf("expected amass artifact %s, got %s", original.Amass, got.Amass)
		}
		if got.ArtifactCount() != original.ArtifactCount() {
			t.Errorf("expected %d artifacts, got %d", original.ArtifactCount(), got.ArtifactCount())
		}
	})

	t.Run("unknown ID returns nil without error", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		got, err := db.GetRunByID(context.Background(), 12345)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Error("expected nil for unknown ID")
		}
	})
}

// TestDBRecent tests the recency queries backing the history command.
func TestDBRecent(t *testing.T) {
	t.Parallel()

	t.Run("returns entries newest first", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		for i, domain := range []string{"old.example.com", "mid.example.com", "new.example.com"} {
			if _, err := db.Record(ctx, sampleResult(t, domain, base.Add(time.Duration(i)*time.Hour))); err != nil {
				t.Fatalf("failed to record run: %v", err)
			}
		}

		entries, err := db.Recent(ctx, 0)
		if err != nil {
			t.Fatalf("failed to query history: %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		want := []string{"new.example.com", "mid.example.com", "old.example.com"}
		for i, domain := range want {
			if entries[i].Domain != domain {
				t.Errorf("entry %d: expected %s, got %s", i, domain, entries[i].Domain)
			}
		}
	})

	t.Run("honors the limit", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		for i := range 5 {
			if _, err := db.Record(ctx, sampleResult(t, "example.com", base.Add(time.Duration(i)*time.Minute))); err != nil {
				t.Fatalf("failed to record run: %v", err)
			}
		}

		entries, err := db.Recent(ctx, 2)
		if err != nil {
			t.Fatalf("failed to query history: %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("expected 2 entries, got %d", len(entries))
		}
	})

	t.Run("populates entry metadata", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		finished := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		if _, err := db.Record(ctx, sampleResult(t, "example.com", finished)); err != nil {
			t.Fatalf("failed to record run: %v", err)
		}

		entries, err := db.Recent(ctx, 1)
		if err != nil {
			t.Fatalf("failed to query history: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}

		entry := entries[0]
		if entry.Domain != "example.com" {
			t.Errorf("expected domain example.com, got %s", entry.Domain)
		}
		if entry.OutputDir != "example.com-recon" {
			t.Errorf("expected output dir example.com-recon, got %s", entry.OutputDir)
		}
		if entry.ArtifactCount != 2 {
			t.Errorf("expected 2 artifacts, got %d", entry.ArtifactCount)
		}
		if !entry.FinishedAt.Equal(finished) {
			t.Errorf("expected finished at %v, got %v", finished, entry.FinishedAt)
		}
		if entry.Duration != 2*time.Minute {
			t.Errorf("expected duration 2m, got %v", entry.Duration)
		}
	})
}

// TestDBForDomain tests per-target history.
func TestDBForDomain(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, domain := range []string{"a.example.com", "b.example.com", "a.example.com"} {
		if _, err := db.Record(ctx, sampleResult(t, domain, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("failed to record run: %v", err)
		}
	}

	entries, err := db.ForDomain(ctx, "a.example.com")
	if err != nil {
		t.Fatalf("failed to query history: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.Domain != "a.example.com" {
			t.Errorf("expected only a.example.com entries, got %s", entry.Domain)
		}
	}

	domains, err := db.ListDomains(ctx)
	if err != nil {
		t.Fatalf("failed to list domains: %v", err)
	}
	if len(domains) != 2 {
		t.Fatalf("expected 2 distinct domains, got %v", domains)
	}
	if domains[0] != "a.example.com" || domains[1] != "b.example.com" {
		t.Errorf("expected sorted distinct domains, got %v", domains)
	}
}
