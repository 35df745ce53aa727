package domain

import (
	"fmt"
	"strings"
)

// FilterExpression is a store-neutral substring filter over one table.
// A record matches when any of Fields, lower-cased, contains Term.
//
// Store adapters render it into their own query language and must bind
// Term as a parameter rather than splicing it into query text.
type FilterExpression struct {
	// Table is the table the filter is qualified with.
	Table string

	// Fields are the queried fields in configured order.
	Fields []string

	// Term is the search term, already lower-cased.
	Term string
}

// BuildFilterExpression builds the filter for a descriptor and a term.
func BuildFilterExpression(d TableDescriptor, term string) (FilterExpression, error) {
	if len(d.FieldsToQuery) == 0 {
		return FilterExpression{}, fmt.Errorf("%w: table %q has no fields to query", ErrInvalidDescriptor, d.Table)
	}
	return FilterExpression{
		Table:  d.Table,
		Fields: append([]string(nil), d.FieldsToQuery...),
		Term:   strings.ToLower(term),
	}, nil
}

// Matches evaluates the filter against a record in process.
func (f FilterExpression) Matches(r Record) bool {
	for _, field := range f.Fields {
		value, ok := r.Value(field)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(value), f.Term) {
			return true
		}
	}
	return false
}
