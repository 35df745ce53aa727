package driving

import "github.com/custodia-labs/gsearch/internal/core/domain"

// ConfigService reads and writes persisted settings.
type ConfigService interface {
	// EngineConfig returns the search configuration from storage.
	EngineConfig() (domain.EngineConfig, error)

	// StoreSettings returns the backend selection from storage.
	StoreSettings() (domain.StoreSettings, error)

	// Save validates and persists cfg and settings.
	Save(cfg domain.EngineConfig, settings domain.StoreSettings) error

	// Path returns the configuration file path.
	Path() string
}
