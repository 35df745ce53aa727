package domain

import (
	"encoding/json"
	"fmt"
)

// SearchResult is a normalised hit. It carries either a resolved
// navigation reference or the reason the reference could not be built,
// never both and never neither.
type SearchResult struct {
	id        string
	display   string
	reference string
	failure   string
}

// NewResolvedResult creates a result with a navigable reference.
func NewResolvedResult(id, display, reference string) SearchResult {
	return SearchResult{id: id, display: display, reference: reference}
}

// NewUnresolvedResult creates a result whose reference could not be built.
func NewUnresolvedResult(id, display, reason string) SearchResult {
	return SearchResult{id: id, display: display, failure: reason}
}

// ID returns the record identity.
func (r SearchResult) ID() string { return r.id }

// Display returns the display string.
func (r SearchResult) Display() string { return r.display }

// Reference returns the resolved path, if any.
func (r SearchResult) Reference() (string, bool) {
	return r.reference, r.failure == ""
}

// FailureReason returns why the reference is missing, if it is.
func (r SearchResult) FailureReason() (string, bool) {
	return r.failure, r.failure != ""
}

// Resolved reports whether the result carries a reference.
func (r SearchResult) Resolved() bool {
	return r.failure == ""
}

type searchResultJSON struct {
	ID            string  `json:"id"`
	Display       string  `json:"display"`
	Reference     *string `json:"reference,omitempty"`
	FailureReason *string `json:"failure_reason,omitempty"`
}

// MarshalJSON encodes exactly one of reference or failure_reason.
func (r SearchResult) MarshalJSON() ([]byte, error) {
	out := searchResultJSON{ID: r.id, Display: r.display}
	if r.Resolved() {
		out.Reference = &r.reference
	} else {
		out.FailureReason = &r.failure
	}
	return json.Marshal(out)
}

// UnmarshalJSON rejects payloads carrying both or neither variant.
func (r *SearchResult) UnmarshalJSON(data []byte) error {
	var in searchResultJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch {
	case in.Reference != nil && in.FailureReason == nil:
		*r = NewResolvedResult(in.ID, in.Display, *in.Reference)
	case in.FailureReason != nil && in.Reference == nil && *in.FailureReason != "":
		*r = NewUnresolvedResult(in.ID, in.Display, *in.FailureReason)
	default:
		return fmt.Errorf("%w: search result %q must carry exactly one of reference or failure_reason",
			ErrInvalidInput, in.ID)
	}
	return nil
}
