package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/custodia-labs/gsearch/internal/core/domain"
	"github.com/custodia-labs/gsearch/internal/core/ports/driven"
)

// recordLoader implements driven.RecordLoader.
type recordLoader struct {
	store *Store
}

var _ driven.RecordLoader = (*recordLoader)(nil)

// Load replaces the contents of table with records. The table is created
// with one TEXT column per field seen; missing columns are added.
// Column names match case-insensitively, as in SQLite.
func (l *recordLoader) Load(ctx context.Context, table string, records []domain.Record) error {
	if table == "" || isReservedTable(table) {
		return fmt.Errorf("%w: cannot load into table %q", domain.ErrInvalidInput, table)
	}

	columns := recordColumns(records)

	tx, err := l.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	existing, err := tableColumns(ctx, tx, table)
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		if len(columns) == 0 {
			return tx.Commit()
		}
		if err := createTable(ctx, tx, table, columns); err != nil {
			return err
		}
	} else {
		for _, col := range columns {
			if _, ok := existing[strings.ToLower(col)]; ok {
				continue
			}
			stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s TEXT", quoteIdent(table), quoteIdent(col))
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("adding column %s to %s: %w", col, table, err)
			}
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+quoteIdent(table)); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, record := range records {
		if err := insertRecord(ctx, tx, table, columns, record); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load of %s: %w", table, err)
	}
	return nil
}

func recordColumns(records []domain.Record) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	return columns
}

func tableColumns(ctx context.Context, tx *sql.Tx, table string) (map[string]struct{}, error) {
	rows, err := tx.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	defer rows.Close()

	columns := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning column of %s: %w", table, err)
		}
		columns[strings.ToLower(name)] = struct{}{}
	}
	return columns, rows.Err()
}

func createTable(ctx context.Context, tx *sql.Tx, table string, columns []string) error {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = quoteIdent(col) + " TEXT"
	}
	stmt := "CREATE TABLE " + quoteIdent(table) + " (" + strings.Join(defs, ", ") + ")"

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("creating table %s: %w", table, err)
	}
	return nil
}

func insertRecord(ctx context.Context, tx *sql.Tx, table string, columns []string, record domain.Record) error {
	quoted := make([]string, len(columns))
	values := make([]any, len(columns))
	for i, col := range columns {
		quoted[i] = quoteIdent(col)
		if v, ok := record[col]; ok && v != nil {
			values[i] = domain.FormatValue(v)
		}
	}

	query, args, err := sq.Insert(quoteIdent(table)).Columns(quoted...).Values(values...).ToSql()
	if err != nil {
		return fmt.Errorf("building insert for %s: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting into %s: %w", table, err)
	}
	return nil
}
