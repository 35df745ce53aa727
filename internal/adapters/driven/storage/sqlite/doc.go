// Package sqlite provides a SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements several interfaces
// through a single database connection:
//
//   - QueryExecutor: Substring filters over locally cached tables
//   - RecordLoader: Replaces the contents of a cached table
//   - KeyValueStore: Small values such as the recent-results list
//
// # Schema
//
// The kv table is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Cached record tables are created on load with one TEXT column per field.
//
// # Data Location
//
// By default, the database is stored at ~/.gsearch/data/gsearch.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
