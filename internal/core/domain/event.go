package domain

// SearchInvocation is what a search returns synchronously: an ID that
// tags every event of this search and one preview per configured table,
// in configuration order.
type SearchInvocation struct {
	ID     string
	Term   string
	Tables []TablePreview
}

// Empty reports whether the search was rejected before fan-out.
func (s SearchInvocation) Empty() bool {
	return s.ID == ""
}

// TableSearchEvent reports one table's outcome for one search.
// A failed event carries Err and no results.
type TableSearchEvent struct {
	SearchID string
	Table    string
	Results  []SearchResult
	Err      error
}

// TableSearchCompleted creates a success event.
func TableSearchCompleted(searchID, table string, results []SearchResult) TableSearchEvent {
	if results == nil {
		results = []SearchResult{}
	}
	return TableSearchEvent{SearchID: searchID, Table: table, Results: results}
}

// TableSearchFailed creates a failure event.
func TableSearchFailed(searchID, table string, err error) TableSearchEvent {
	return TableSearchEvent{SearchID: searchID, Table: table, Err: err}
}

// Failed reports whether the table's query failed.
func (e TableSearchEvent) Failed() bool {
	return e.Err != nil
}
