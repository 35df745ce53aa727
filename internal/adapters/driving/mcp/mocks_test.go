package mcp

import (
	"context"
	"sync"

	"github.com/custodia-labs/gsearch/internal/core/domain"
	"github.com/custodia-labs/gsearch/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
// Search publishes one event per entry in events before returning.
type mockSearchService struct {
	mu        sync.Mutex
	tables    []domain.TablePreview
	events    map[string]domain.TableSearchEvent
	listeners []driving.SearchListener
	selectErr error
	selected  []selection
}

type selection struct {
	table  string
	result domain.SearchResult
}

func (m *mockSearchService) Configure(_ domain.EngineConfig) error { return nil }

func (m *mockSearchService) Tables() []domain.TablePreview { return m.tables }

func (m *mockSearchService) Search(_ context.Context, term string) domain.SearchInvocation {
	if term == "" {
		return domain.SearchInvocation{}
	}
	inv := domain.SearchInvocation{ID: "search-1", Term: term, Tables: m.tables}

	m.mu.Lock()
	listeners := append([]driving.SearchListener(nil), m.listeners...)
	m.mu.Unlock()

	for _, p := range m.tables {
		ev, ok := m.events[p.Table]
		if !ok {
			continue
		}
		ev.SearchID = inv.ID
		ev.Table = p.Table
		for _, l := range listeners {
			l(ev)
		}
	}
	return inv
}

func (m *mockSearchService) Subscribe(listener driving.SearchListener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, listener)
	return func() {}
}

func (m *mockSearchService) Select(_ context.Context, table string, result domain.SearchResult) error {
	if m.selectErr != nil {
		return m.selectErr
	}
	m.selected = append(m.selected, selection{table: table, result: result})
	return nil
}

// mockRecentService is a mock implementation of driving.RecentService.
type mockRecentService struct {
	entries []domain.RecentSearchEntry
}

func (m *mockRecentService) Record(_ context.Context, entry domain.RecentSearchEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockRecentService) List(_ context.Context) []domain.RecentSearchEntry {
	return m.entries
}

func accountPreview() domain.TablePreview {
	return domain.TablePreview{
		Table:        "Account__ap",
		DisplayName:  "Accounts",
		Icon:         "standard:account",
		FieldsToShow: []string{"Name", "Phone"},
	}
}

func contactPreview() domain.TablePreview {
	return domain.TablePreview{
		Table:        "Contact__ap",
		DisplayName:  "Contacts",
		Icon:         "standard:contact",
		FieldsToShow: []string{"Name"},
	}
}
