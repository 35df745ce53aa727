package driving

import (
	"context"

	"github.com/custodia-labs/gsearch/internal/core/domain"
)

// SearchListener receives per-table completion events. Listeners run on
// the worker that produced the event and must not block for long.
type SearchListener func(event domain.TableSearchEvent)

// SearchService fans a term out across the configured tables.
type SearchService interface {
	// Configure validates cfg and replaces the whole table set and cache policy.
	Configure(cfg domain.EngineConfig) error

	// Tables returns preview metadata for the configured tables in order.
	Tables() []domain.TablePreview

	// Search starts one query per table and returns immediately. Results
	// arrive as one event per table on subscribed listeners. A blank term
	// returns an empty invocation and emits nothing.
	Search(ctx context.Context, term string) domain.SearchInvocation

	// Subscribe registers a listener and returns its unsubscribe function.
	Subscribe(listener SearchListener) (unsubscribe func())

	// Select records a chosen result from table in the recent list.
	Select(ctx context.Context, table string, result domain.SearchResult) error
}

// RecentService exposes the recent-results list.
type RecentService interface {
	// Record adds entry, replacing any entry for the same record id.
	Record(ctx context.Context, entry domain.RecentSearchEntry) error

	// List returns entries most recent first.
	List(ctx context.Context) []domain.RecentSearchEntry
}
