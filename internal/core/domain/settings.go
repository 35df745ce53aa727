package domain

const unknownDescription = "Unknown"

// RecordBackend identifies the store that answers table queries.
type RecordBackend string

// Available record backends.
const (
	// RecordBackendSQLite queries tables cached in the local SQLite database.
	RecordBackendSQLite RecordBackend = "sqlite"

	// RecordBackendElasticsearch queries one Elasticsearch index per table.
	RecordBackendElasticsearch RecordBackend = "elasticsearch"

	// RecordBackendMemory keeps tables in process. Nothing survives a restart.
	RecordBackendMemory RecordBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b RecordBackend) IsValid() bool {
	switch b {
	case RecordBackendSQLite, RecordBackendElasticsearch, RecordBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b RecordBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b RecordBackend) Description() string {
	switch b {
	case RecordBackendSQLite:
		return "SQLite (local cache)"
	case RecordBackendElasticsearch:
		return "Elasticsearch"
	case RecordBackendMemory:
		return "In-memory"
	default:
		return unknownDescription
	}
}

// RecentBackend identifies the key-value store holding recent results.
type RecentBackend string

// Available recent-results backends.
const (
	// RecentBackendSQLite stores the list in the SQLite kv table.
	RecentBackendSQLite RecentBackend = "sqlite"

	// RecentBackendBadger stores the list in a Badger database.
	RecentBackendBadger RecentBackend = "badger"
)

// IsValid returns true if the backend is recognised.
func (b RecentBackend) IsValid() bool {
	return b == RecentBackendSQLite || b == RecentBackendBadger
}

// String returns the string representation.
func (b RecentBackend) String() string {
	return string(b)
}

// StoreSettings selects and locates the driven stores.
type StoreSettings struct {
	RecordBackend     RecordBackend
	RecentBackend     RecentBackend
	DataDir           string
	ElasticsearchURLs []string
}

// DefaultStoreSettings returns settings for a purely local installation.
func DefaultStoreSettings() StoreSettings {
	return StoreSettings{
		RecordBackend:     RecordBackendSQLite,
		RecentBackend:     RecentBackendSQLite,
		ElasticsearchURLs: []string{"http://localhost:9200"},
	}
}
