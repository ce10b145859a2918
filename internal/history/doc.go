// Package history provides SQLite-based storage for completed runs.
//
// Every successful run is recorded with its target, output directory,
// artifact count, and timing, plus the full run result as JSON for
// later inspection. The history command reads this store.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of a
// flat log file because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Per-domain and recency queries come for free
// 4. WAL mode provides good concurrent read performance
package history
