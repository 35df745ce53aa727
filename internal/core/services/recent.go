package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/custodia-labs/gsearch/internal/core/domain"
	"github.com/custodia-labs/gsearch/internal/core/ports/driven"
	"github.com/custodia-labs/gsearch/internal/core/ports/driving"
	"github.com/custodia-labs/gsearch/internal/logger"
)

// Ensure RecentCache implements the interface.
var _ driving.RecentService = (*RecentCache)(nil)

// RecentCache is the bounded, deduplicated list of selected results.
// The list is stored oldest first as a JSON array under a single key.
type RecentCache struct {
	mu       sync.Mutex
	store    driven.KeyValueStore
	maxItems int
	policy   domain.PersistPolicy
}

// NewRecentCache creates a cache over store with default capacity and
// local persistence. store may be nil, in which case nothing is kept.
func NewRecentCache(store driven.KeyValueStore) *RecentCache {
	return &RecentCache{
		store:    store,
		maxItems: domain.DefaultMaxRecentItems,
		policy:   domain.PersistLocal,
	}
}

// Configure sets capacity and policy. maxItems <= 0 selects the default.
func (c *RecentCache) Configure(maxItems int, policy domain.PersistPolicy) {
	cfg := domain.EngineConfig{MaxRecentItems: maxItems, PersistPolicy: policy}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxItems = cfg.EffectiveMaxRecentItems()
	c.policy = cfg.EffectivePersistPolicy()
}

// MaxItems returns the configured capacity.
func (c *RecentCache) MaxItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxItems
}

func (c *RecentCache) disabled() bool {
	return c.store == nil || c.policy == domain.PersistExternal
}

// Record adds entry, first removing an existing entry for the same record
// id, and evicts the oldest entries beyond capacity. Normally that is a
// single entry; after capacity shrinks the list is trimmed to fit.
func (c *RecentCache) Record(ctx context.Context, entry domain.RecentSearchEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disabled() {
		return nil
	}

	entries := c.load(ctx)
	if i := indexOfResult(entries, entry.Result.ID()); i >= 0 {
		entries = append(entries[:i], entries[i+1:]...)
	}
	entries = append(entries, entry)
	if excess := len(entries) - c.maxItems; excess > 0 {
		entries = entries[excess:]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode recent searches: %w", err)
	}
	if err := c.store.Set(ctx, domain.RecentSearchesKey, string(data)); err != nil {
		return fmt.Errorf("store recent searches: %w", err)
	}
	logger.Debug("Recorded recent search %q (%d stored)", entry.Result.ID(), len(entries))
	return nil
}

// List returns at most MaxItems entries, most recent first.
func (c *RecentCache) List(ctx context.Context) []domain.RecentSearchEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disabled() {
		return []domain.RecentSearchEntry{}
	}

	entries := c.load(ctx)
	if excess := len(entries) - c.maxItems; excess > 0 {
		entries = entries[excess:]
	}
	out := make([]domain.RecentSearchEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}

// load reads the stored list oldest first. Unreadable or corrupt storage
// yields an empty list.
func (c *RecentCache) load(ctx context.Context) []domain.RecentSearchEntry {
	raw, ok, err := c.store.Get(ctx, domain.RecentSearchesKey)
	if err != nil {
		logger.Warn("Failed to read recent searches: %v", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var entries []domain.RecentSearchEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		logger.Warn("Ignoring corrupt recent searches: %v", err)
		return nil
	}
	return entries
}

func indexOfResult(entries []domain.RecentSearchEntry, id string) int {
	for i, e := range entries {
		if e.Result.ID() == id {
			return i
		}
	}
	return -1
}
