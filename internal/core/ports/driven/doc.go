// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - QueryExecutor: Runs a filter expression against one table (SQLite, Elasticsearch, memory)
//   - ConfigStore: Application configuration and table descriptors
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - KeyValueStore: Recent-results persistence. Without it the recent list is always empty.
//   - RecordLoader: Populates local tables. Only the import command needs it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
