package domain

// DefaultMaxRecentItems is the recent-results capacity used when none is configured.
const DefaultMaxRecentItems = 10

// RecentSearchesKey is the persistent store key of the recent-results list.
const RecentSearchesKey = "recentSearches"

// RecentSearchEntry is a previously selected result.
// Entries are unique by Result.ID().
type RecentSearchEntry struct {
	Icon      string       `json:"icon"`
	Reference string       `json:"reference"`
	Result    SearchResult `json:"result"`
}

// PersistPolicy selects where the recent-results list lives.
type PersistPolicy string

// Available persist policies.
const (
	// PersistLocal keeps the list in the engine's key-value store.
	PersistLocal PersistPolicy = "local"

	// PersistExternal leaves persistence to the surrounding system.
	// The recent-results cache becomes a no-op.
	PersistExternal PersistPolicy = "external"
)

// IsValid returns true if the policy is recognised.
func (p PersistPolicy) IsValid() bool {
	return p == PersistLocal || p == PersistExternal
}

// String returns the string representation.
func (p PersistPolicy) String() string {
	return string(p)
}

// EngineConfig is the complete engine configuration. Applying one
// replaces any previous configuration wholesale.
type EngineConfig struct {
	MaxRecentItems int
	PersistPolicy  PersistPolicy
	Tables         []TableDescriptor
}

// EffectiveMaxRecentItems resolves the configured capacity, defaulting to
// DefaultMaxRecentItems when unset.
func (c EngineConfig) EffectiveMaxRecentItems() int {
	if c.MaxRecentItems <= 0 {
		return DefaultMaxRecentItems
	}
	return c.MaxRecentItems
}

// EffectivePersistPolicy resolves the configured policy, defaulting to local.
func (c EngineConfig) EffectivePersistPolicy() PersistPolicy {
	if c.PersistPolicy == "" {
		return PersistLocal
	}
	return c.PersistPolicy
}
