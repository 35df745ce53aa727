package domain

import (
	"fmt"
	"strings"
)

const (
	pathSeparator     = "/"
	placeholderPrefix = ":"
)

// templateSegment is one path segment of a reference template.
type templateSegment struct {
	// Value is the literal text, or the field name for placeholders.
	Value string

	// Placeholder marks segments written as ":<fieldName>".
	Placeholder bool
}

// ReferenceTemplate is a parsed navigation path template.
type ReferenceTemplate struct {
	raw      string
	segments []templateSegment
}

// ParseReferenceTemplate splits a template such as "/accounts/:Id" into
// literal and placeholder segments.
func ParseReferenceTemplate(raw string) (ReferenceTemplate, error) {
	if !strings.HasPrefix(raw, pathSeparator) {
		return ReferenceTemplate{}, fmt.Errorf("%w: reference template %q must start with %q",
			ErrInvalidDescriptor, raw, pathSeparator)
	}

	parts := strings.Split(strings.TrimPrefix(raw, pathSeparator), pathSeparator)
	segments := make([]templateSegment, len(parts))
	for i, part := range parts {
		if !strings.HasPrefix(part, placeholderPrefix) {
			segments[i] = templateSegment{Value: part}
			continue
		}
		name := strings.TrimPrefix(part, placeholderPrefix)
		if name == "" {
			return ReferenceTemplate{}, fmt.Errorf("%w: reference template %q has an unnamed placeholder",
				ErrInvalidDescriptor, raw)
		}
		segments[i] = templateSegment{Value: name, Placeholder: true}
	}

	return ReferenceTemplate{raw: raw, segments: segments}, nil
}

// String returns the template as configured.
func (t ReferenceTemplate) String() string {
	return t.raw
}

// Placeholders returns the placeholder field names in template order.
func (t ReferenceTemplate) Placeholders() []string {
	var names []string
	for _, seg := range t.segments {
		if seg.Placeholder {
			names = append(names, seg.Value)
		}
	}
	return names
}

// Resolve substitutes every placeholder using lookup. Resolution is
// all-or-nothing: the first placeholder without a non-empty value aborts
// with an *UnresolvedPlaceholderError and no partial path is returned.
func (t ReferenceTemplate) Resolve(lookup func(field string) (string, bool)) (string, error) {
	parts := make([]string, len(t.segments))
	for i, seg := range t.segments {
		if !seg.Placeholder {
			parts[i] = seg.Value
			continue
		}
		value, ok := lookup(seg.Value)
		if !ok || value == "" {
			return "", &UnresolvedPlaceholderError{Field: seg.Value}
		}
		parts[i] = value
	}
	return pathSeparator + strings.Join(parts, pathSeparator), nil
}
