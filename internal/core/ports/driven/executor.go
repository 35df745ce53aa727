package driven

import (
	"context"

	"github.com/custodia-labs/gsearch/internal/core/domain"
)

// QueryExecutor runs a filter expression against the table it names.
// Implementations must bind the term as a parameter.
type QueryExecutor interface {
	// Execute returns the matching records. A nil slice means no results.
	Execute(ctx context.Context, filter domain.FilterExpression) ([]domain.Record, error)
}

// RecordLoader populates a local table with records.
type RecordLoader interface {
	// Load replaces the contents of table with records.
	Load(ctx context.Context, table string, records []domain.Record) error
}
