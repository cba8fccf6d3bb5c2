package domain

// SearchRequest is one query sent through a client handle. Filters is an engine-dialect
// expression produced by the filter builder and passed through untouched.
// HitsPerPage applies to engines whose client identity does not embed the page size.
// Debounced is not sent to the backend; it is recorded with the metrics sample.
type SearchRequest struct {
	Query       string
	Collection  string
	Filters     string
	HitsPerPage int
	Debounced   bool
}

// SearchResult is the engine-neutral query outcome.
type SearchResult struct {
	Hits   []map[string]any
	NbHits int
}

// QueryContext carries the user-facing details recorded with each metrics sample.
type QueryContext struct {
	Query      string
	Collection string
	Debounced  bool
}
