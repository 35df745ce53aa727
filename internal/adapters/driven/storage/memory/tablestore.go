package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/custodia-labs/gsearch/internal/core/domain"
	"github.com/custodia-labs/gsearch/internal/core/ports/driven"
)

var (
	_ driven.QueryExecutor = (*TableStore)(nil)
	_ driven.RecordLoader  = (*TableStore)(nil)
)

// TableStore holds tables in memory and evaluates filters in process.
type TableStore struct {
	mu     sync.RWMutex
	tables map[string][]domain.Record
}

// NewTableStore creates an empty table store.
func NewTableStore() *TableStore {
	return &TableStore{tables: make(map[string][]domain.Record)}
}

// Load replaces the contents of table.
func (s *TableStore) Load(_ context.Context, table string, records []domain.Record) error {
	if table == "" {
		return fmt.Errorf("%w: table name is required", domain.ErrInvalidInput)
	}

	copied := make([]domain.Record, len(records))
	for i, r := range records {
		copied[i] = maps.Clone(r)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = copied
	return nil
}

// Execute returns copies of the records matching filter.
func (s *TableStore) Execute(ctx context.Context, filter domain.FilterExpression) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.tables[filter.Table]
	if !ok {
		return nil, fmt.Errorf("%w: table %q", domain.ErrNotFound, filter.Table)
	}

	var matches []domain.Record
	for _, r := range records {
		if filter.Matches(r) {
			matches = append(matches, maps.Clone(r))
		}
	}
	return matches, nil
}
