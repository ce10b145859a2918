package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/SkyH34D/subtrace/internal/model"
)

// DB provides SQLite-based storage for completed run results.
// It manages connection pooling and provides methods for recording
// runs and querying past activity.
//
// Design decision: We use a single database file shared across all
// targets rather than one per output directory. History is a view over
// every run the user has performed, and a single file keeps cross-target
// queries and backup trivial.
type DB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures DB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database inside dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*DB, error) {
	dbPath := filepath.Join(dbDir, "history.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses its own connection string format.
	// mode=rw prevents creating new files; mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer, and history writes are rare
	// (one row per completed run), so a single connection is enough.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &DB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *DB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *DB) createTables() error {
	schema := `
	-- Runs store one row per completed reconnaissance run
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		domain TEXT NOT NULL,
		output_dir TEXT NOT NULL,
		artifact_count INTEGER NOT NULL DEFAULT 0,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		duration_seconds REAL NOT NULL DEFAULT 0,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_domain ON runs(domain);
	CREATE INDEX IF NOT EXISTS idx_runs_finished ON runs(finished_at);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// Entry summarizes one recorded run. The full RunResult is stored as
// JSON and only materialized on demand.
type Entry struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// Domain is the normalized target of the run.
	Domain string

	// OutputDir is where the run's artifacts were written.
	OutputDir string

	// ArtifactCount is the number of artifacts the run produced.
	ArtifactCount int

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run completed.
	FinishedAt time.Time

	// Duration is the total run time.
	Duration time.Duration
}

// Record inserts a completed run into the history.
func (hdb *DB) Record(ctx context.Context, result *model.RunResult) (int64, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize run result: %w", err)
	}

	query := `
	INSERT INTO runs (domain, output_dir, artifact_count, started_at, finished_at, duration_seconds, result_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	res, err := hdb.db.ExecContext(ctx, query,
		result.Domain.String(),
		result.OutputDir,
		result.ArtifactCount(),
		result.StartedAt.UTC().Format(sqliteTimeFormat),
		result.FinishedAt.UTC().Format(sqliteTimeFormat),
		result.Duration().Seconds(),
		string(resultJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}

	return res.LastInsertId()
}

// Recent returns the most recent runs across all targets, newest first.
// A non-positive limit returns every run.
func (hdb *DB) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `
	SELECT id, domain, output_dir, artifact_count, started_at, finished_at, duration_seconds
	FROM runs
	ORDER BY finished_at DESC, id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return hdb.queryEntries(ctx, query, args...)
}

// ForDomain returns all recorded runs for a target, newest first.
func (hdb *DB) ForDomain(ctx context.Context, domain string) ([]Entry, error) {
	query := `
	SELECT id, domain, output_dir, artifact_count, started_at, finished_at, duration_seconds
	FROM runs
	WHERE domain = ?
	ORDER BY finished_at DESC, id DESC
	`
	return hdb.queryEntries(ctx, query, domain)
}

// queryEntries runs a SELECT over the runs table and scans entries.
func (hdb *DB) queryEntries(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query run history: %w", err)
	}
	defer rows.Close()

	var results []Entry
	for rows.Next() {
		var (
			entry      Entry
			startedAt  string
			finishedAt string
			seconds    float64
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.Domain,
			&entry.OutputDir,
			&entry.ArtifactCount,
			&startedAt,
			&finishedAt,
			&seconds,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run entry: %w", err)
		}

		entry.StartedAt = parseTimestamp(startedAt)
		entry.FinishedAt = parseTimestamp(finishedAt)
		entry.Duration = time.Duration(seconds * float64(time.Second))
		results = append(results, entry)
	}

	return results, rows.Err()
}

// GetRunByID retrieves the full run result by its database ID.
// Returns nil without error when no run has that ID.
func (hdb *DB) GetRunByID(ctx context.Context, id int64) (*model.RunResult, error) {
	query := `
	SELECT result_json FROM runs
	WHERE id = ?
	`

	var resultJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&resultJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var result model.RunResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse run: %w", err)
	}

	return &result, nil
}

// ListDomains returns every target that has at least one recorded run.
func (hdb *DB) ListDomains(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT domain FROM runs
	ORDER BY domain
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}
	defer rows.Close()

	var domains []string
	for rows.Next() {
		var domain string
		if err := rows.Scan(&domain); err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, domain)
	}

	return domains, rows.Err()
}

// sqliteTimeFormat is the SQLite default datetime format, used for
// stored timestamps so the datetime() functions can operate on them.
const sqliteTimeFormat = "2006-01-02 15:04:05"

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	sqliteTimeFormat,          // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
