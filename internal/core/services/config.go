package services

import (
	"fmt"

	"github.com/custodia-labs/gsearch/internal/core/domain"
	"github.com/custodia-labs/gsearch/internal/core/ports/driven"
	"github.com/custodia-labs/gsearch/internal/core/ports/driving"
)

// Ensure ConfigService implements the interface.
var _ driving.ConfigService = (*ConfigService)(nil)

// Config keys for settings storage.
const (
	keyRecentMaxItems   = "recent.max_items"
	keyRecentPersist    = "recent.persist"
	keyRecentBackend    = "recent.backend"
	keyStoreBackend     = "store.backend"
	keyStoreDataDir     = "store.data_dir"
	keyElasticsearchURL = "store.elasticsearch_urls"
)

// ConfigService maps persisted settings to engine and store configuration.
type ConfigService struct {
	configStore driven.ConfigStore
}

// NewConfigService creates a new config service.
func NewConfigService(configStore driven.ConfigStore) *ConfigService {
	return &ConfigService{configStore: configStore}
}

// EngineConfig reads the search configuration. Descriptors are returned
// as stored; Engine.Configure validates them.
func (s *ConfigService) EngineConfig() (domain.EngineConfig, error) {
	policy := domain.PersistPolicy(s.configStore.GetString(keyRecentPersist))
	if policy != "" && !policy.IsValid() {
		return domain.EngineConfig{}, fmt.Errorf("%w: %s = %q", domain.ErrInvalidInput, keyRecentPersist, policy)
	}
	return domain.EngineConfig{
		MaxRecentItems: s.configStore.GetInt(keyRecentMaxItems),
		PersistPolicy:  policy,
		Tables:         s.configStore.Tables(),
	}, nil
}

// StoreSettings reads the backend selection, filling defaults.
func (s *ConfigService) StoreSettings() (domain.StoreSettings, error) {
	settings := domain.DefaultStoreSettings()

	if v := s.configStore.GetString(keyStoreBackend); v != "" {
		settings.RecordBackend = domain.RecordBackend(v)
	}
	if !settings.RecordBackend.IsValid() {
		return domain.StoreSettings{}, fmt.Errorf("%w: record backend %q", domain.ErrUnsupportedBackend, settings.RecordBackend)
	}

	if v := s.configStore.GetString(keyRecentBackend); v != "" {
		settings.RecentBackend = domain.RecentBackend(v)
	}
	if !settings.RecentBackend.IsValid() {
		return domain.StoreSettings{}, fmt.Errorf("%w: recent backend %q", domain.ErrUnsupportedBackend, settings.RecentBackend)
	}

	settings.DataDir = s.configStore.GetString(keyStoreDataDir)
	if urls := s.configStore.GetStringSlice(keyElasticsearchURL); len(urls) > 0 {
		settings.ElasticsearchURLs = urls
	}
	return settings, nil
}

// Save validates and persists cfg and settings.
func (s *ConfigService) Save(cfg domain.EngineConfig, settings domain.StoreSettings) error {
	if _, err := ValidateEngineConfig(cfg); err != nil {
		return err
	}
	if !settings.RecordBackend.IsValid() {
		return fmt.Errorf("%w: record backend %q", domain.ErrUnsupportedBackend, settings.RecordBackend)
	}
	if !settings.RecentBackend.IsValid() {
		return fmt.Errorf("%w: recent backend %q", domain.ErrUnsupportedBackend, settings.RecentBackend)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyRecentMaxItems, cfg.EffectiveMaxRecentItems()},
		{keyRecentPersist, cfg.EffectivePersistPolicy().String()},
		{keyRecentBackend, settings.RecentBackend.String()},
		{keyStoreBackend, settings.RecordBackend.String()},
		{keyStoreDataDir, settings.DataDir},
		{keyElasticsearchURL, settings.ElasticsearchURLs},
	}
	for _, kv := range values {
		if err := s.configStore.Set(kv.key, kv.value); err != nil {
			return fmt.Errorf("save %s: %w", kv.key, err)
		}
	}
	if err := s.configStore.SetTables(cfg.Tables); err != nil {
		return fmt.Errorf("save tables: %w", err)
	}
	return s.configStore.Save()
}

// Path returns the configuration file path.
func (s *ConfigService) Path() string {
	return s.configStore.Path()
}
