// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The Engine fans each search out over an ants worker pool, one task per
// configured table, and broadcasts a completion event per table. The
// RecentCache keeps the selected results behind a KeyValueStore.
package services
