package services

import (
	"errors"
	"strings"

	"github.com/custodia-labs/gsearch/internal/core/domain"
)

const displaySeparator = ", "

// tableState is a configured table with its parsed reference template.
type tableState struct {
	descriptor domain.TableDescriptor
	template   domain.ReferenceTemplate
}

func newTableState(d domain.TableDescriptor) (tableState, error) {
	tmpl, err := domain.ParseReferenceTemplate(d.ReferenceTemplate)
	if err != nil {
		return tableState{}, err
	}
	return tableState{descriptor: d.Clone(), template: tmpl}, nil
}

// Normalize turns a raw record into a SearchResult for descriptor d.
// A descriptor whose template cannot be parsed yields an unresolved result.
func Normalize(record domain.Record, d domain.TableDescriptor) domain.SearchResult {
	state, err := newTableState(d)
	if err != nil {
		id, _ := record.Value(d.IdentityField())
		return domain.NewUnresolvedResult(id, displayString(record, d.FieldsToShow), err.Error())
	}
	return state.normalize(record)
}

func (s tableState) normalize(record domain.Record) domain.SearchResult {
	id, _ := record.Value(s.descriptor.IdentityField())
	display := displayString(record, s.descriptor.FieldsToShow)

	ref, err := s.template.Resolve(record.Value)
	if err != nil {
		var unresolved *domain.UnresolvedPlaceholderError
		if errors.As(err, &unresolved) {
			return domain.NewUnresolvedResult(id, display, unresolved.Error())
		}
		return domain.NewUnresolvedResult(id, display, err.Error())
	}
	return domain.NewResolvedResult(id, display, ref)
}

// displayString joins the shown fields with ", ". The separator after a
// field is dropped when the next field's value is blank.
func displayString(record domain.Record, fields []string) string {
	values := make([]string, len(fields))
	for i, field := range fields {
		values[i], _ = record.Value(field)
	}

	var b strings.Builder
	for i, value := range values {
		b.WriteString(value)
		if i+1 < len(values) && strings.TrimSpace(values[i+1]) != "" {
			b.WriteString(displaySeparator)
		}
	}
	return b.String()
}
