package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/gsearch/internal/core/domain"
	"github.com/custodia-labs/gsearch/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

const (
	configFileName = "config.toml"
	tablesKey      = "tables"
)

// tableEntry is the on-disk form of a table descriptor.
type tableEntry struct {
	Table         string   `toml:"table"`
	Name          string   `toml:"name,omitempty"`
	Icon          string   `toml:"icon,omitempty"`
	Href          string   `toml:"href"`
	FieldsToShow  []string `toml:"fields_to_show"`
	FieldsToQuery []string `toml:"fields_to_query"`
	IDField       string   `toml:"id_field,omitempty"`
}

func (e tableEntry) descriptor() domain.TableDescriptor {
	return domain.TableDescriptor{
		Table:             e.Table,
		DisplayName:       e.Name,
		Icon:              e.Icon,
		FieldsToShow:      e.FieldsToShow,
		FieldsToQuery:     e.FieldsToQuery,
		ReferenceTemplate: e.Href,
		IDField:           e.IDField,
	}
}

func entryFor(d domain.TableDescriptor) tableEntry {
	return tableEntry{
		Table:         d.Table,
		Name:          d.DisplayName,
		Icon:          d.Icon,
		Href:          d.ReferenceTemplate,
		FieldsToShow:  append([]string(nil), d.FieldsToShow...),
		FieldsToQuery: append([]string(nil), d.FieldsToQuery...),
		IDField:       d.IDField,
	}
}

type tablesDoc struct {
	Tables []tableEntry `toml:"tables"`
}

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
// Configuration is stored in a TOML file within the gsearch config directory.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
	tables   []tableEntry
}

// DefaultConfigDir returns ~/.gsearch.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gsearch"), nil
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.gsearch/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		dir, err := DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, configFileName),
		data:     make(map[string]any),
	}

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}

	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}

	// TOML integers are parsed as int64
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// GetStringSlice retrieves a string slice configuration value.
func (s *ConfigStore) GetStringSlice(key string) []string {
	val, ok := s.Get(key)
	if !ok {
		return nil
	}

	// TOML arrays are parsed as []any
	switch v := val.(type) {
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return nil
	}
}

// Set stores a configuration value in memory. Call Save to persist.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

// Tables returns the [[tables]] entries as descriptors, in file order.
func (s *ConfigStore) Tables() []domain.TableDescriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.tables) == 0 {
		return nil
	}
	out := make([]domain.TableDescriptor, len(s.tables))
	for i, e := range s.tables {
		out[i] = e.descriptor().Clone()
	}
	return out
}

// SetTables replaces the [[tables]] entries in memory. Call Save to persist.
func (s *ConfigStore) SetTables(tables []domain.TableDescriptor) error {
	entries := make([]tableEntry, len(tables))
	for i, d := range tables {
		entries[i] = entryFor(d)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = entries
	return nil
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	doc := unflattenMap(s.data)
	if len(s.tables) > 0 {
		doc[tablesKey] = s.tables
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet - that's fine, start empty
			s.data = make(map[string]any)
			s.tables = nil
			return nil
		}
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}
	if loaded == nil {
		loaded = make(map[string]any)
	}

	var tables tablesDoc
	if err := toml.Unmarshal(data, &tables); err != nil {
		return err
	}
	delete(loaded, tablesKey)

	// Flatten nested maps into dot-notation keys for easier access
	s.data = flattenMap(loaded, "")
	s.tables = tables.Tables
	return nil
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}

// unflattenMap is the inverse of flattenMap, so files keep [section] tables.
func unflattenMap(flat map[string]any) map[string]any {
	result := make(map[string]any)

	for key, value := range flat {
		parts := strings.Split(key, ".")
		node := result
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = value
	}

	return result
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
