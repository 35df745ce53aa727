package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/custodia-labs/gsearch/internal/core/domain"
	"github.com/custodia-labs/gsearch/internal/core/ports/driven"
	"github.com/custodia-labs/gsearch/internal/logger"
)

// queryExecutor implements driven.QueryExecutor.
type queryExecutor struct {
	store *Store
}

var _ driven.QueryExecutor = (*queryExecutor)(nil)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BuildFilterQuery renders filter as a parameterised SELECT.
func BuildFilterQuery(filter domain.FilterExpression) (string, []any, error) {
	if filter.Table == "" || len(filter.Fields) == 0 {
		return "", nil, fmt.Errorf("%w: filter needs a table and at least one field", domain.ErrInvalidInput)
	}

	pattern := "%" + likeEscaper.Replace(filter.Term) + "%"
	conditions := make(sq.Or, 0, len(filter.Fields))
	for _, field := range filter.Fields {
		conditions = append(conditions, sq.Expr(lowerFunc+"("+quoteIdent(field)+`) LIKE ? ESCAPE '\'`, pattern))
	}

	return sq.Select("*").From(quoteIdent(filter.Table)).Where(conditions).ToSql()
}

// Execute runs the filter against the cached table.
func (e *queryExecutor) Execute(ctx context.Context, filter domain.FilterExpression) ([]domain.Record, error) {
	query, args, err := BuildFilterQuery(filter)
	if err != nil {
		return nil, err
	}
	logger.Debug("SQLite: %s %v", query, args)

	rows, err := e.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", filter.Table, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// scanRecords reads every row into a Record keyed by column name.
func scanRecords(rows *sql.Rows) ([]domain.Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	var records []domain.Record
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		record := make(domain.Record, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				record[col] = string(b)
				continue
			}
			record[col] = values[i]
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return records, nil
}
