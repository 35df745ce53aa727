package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/gsearch/internal/core/domain"
)

// --- Mock implementations ---

// mockExecutor implements driven.QueryExecutor with canned per-table answers.
type mockExecutor struct {
	mu      sync.Mutex
	records map[string][]domain.Record
	errs    map[string]error
	gates   map[string]chan struct{}
	calls   []domain.FilterExpression
}

func newMockExecutor() *mockExecutor {
	return &mockExecutor{
		records: make(map[string][]domain.Record),
		errs:    make(map[string]error),
		gates:   make(map[string]chan struct{}),
	}
}

func (m *mockExecutor) Execute(ctx context.Context, filter domain.FilterExpression) ([]domain.Record, error) {
	m.mu.Lock()
	m.calls = append(m.calls, filter)
	gate := m.gates[filter.Table]
	records := m.records[filter.Table]
	err := m.errs[filter.Table]
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return records, err
}

func (m *mockExecutor) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockKV implements driven.KeyValueStore in memory.
type mockKV struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
	setErr error
}

func newMockKV() *mockKV {
	return &mockKV{values: make(map[string]string)}
}

func (m *mockKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

// mockConfigStore implements driven.ConfigStore in memory.
type mockConfigStore struct {
	values  map[string]any
	tables  []domain.TableDescriptor
	saved   int
	saveErr error
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{values: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	s, _ := m.values[key].(string)
	return s
}

func (m *mockConfigStore) GetInt(key string) int {
	i, _ := m.values[key].(int)
	return i
}

func (m *mockConfigStore) GetStringSlice(key string) []string {
	s, _ := m.values[key].([]string)
	return s
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Tables() []domain.TableDescriptor {
	return m.tables
}

func (m *mockConfigStore) SetTables(tables []domain.TableDescriptor) error {
	m.tables = tables
	return nil
}

func (m *mockConfigStore) Save() error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved++
	return nil
}

func (m *mockConfigStore) Load() error { return nil }

func (m *mockConfigStore) Path() string { return "/tmp/gsearch/config.toml" }

var errQueryFailed = errors.New("query failed")

func accountDescriptor() domain.TableDescriptor {
	return domain.TableDescriptor{
		Table:             "Account",
		DisplayName:       "Accounts",
		Icon:              "ion-folder",
		FieldsToShow:      []string{"Name"},
		FieldsToQuery:     []string{"Name"},
		ReferenceTemplate: "/accounts/:Id",
	}
}

func contactDescriptor() domain.TableDescriptor {
	return domain.TableDescriptor{
		Table:             "Contact",
		DisplayName:       "Contacts",
		Icon:              "ion-person",
		FieldsToShow:      []string{"Name"},
		FieldsToQuery:     []string{"Name"},
		ReferenceTemplate: "/contacts/:Id",
	}
}

// eventRecorder collects events delivered to a listener.
type eventRecorder struct {
	mu     sync.Mutex
	events []domain.TableSearchEvent
	ch     chan domain.TableSearchEvent
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{ch: make(chan domain.TableSearchEvent, 64)}
}

func (r *eventRecorder) listen(ev domain.TableSearchEvent) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	r.ch <- ev
}

func (r *eventRecorder) snapshot() []domain.TableSearchEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.TableSearchEvent(nil), r.events...)
}
