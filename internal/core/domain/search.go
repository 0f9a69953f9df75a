package domain

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results. Defaults to 5.
	Limit int

	// CorpusIDs filters remote search to specific corpora.
	// Empty means all corpora.
	CorpusIDs []string
}

// DefaultSearchLimit is applied when SearchOptions.Limit is not positive.
const DefaultSearchLimit = 5

// SearchResult is one ranked hit. Results are computed per query and
// never persisted.
type SearchResult struct {
	// DocumentID references the stored document.
	DocumentID string

	// Label is the human-readable name of the hit (file name or title).
	Label string

	// Path is the document path within its corpus.
	Path string

	// CorpusID is set for remote hits, empty for local uploads.
	CorpusID string

	// Score is the integer relevance score. Always > 0 in results.
	Score int

	// Excerpt is a bounded contextual snippet around the best match.
	Excerpt string

	// Locator points at the source: a web URL for remote documents,
	// an internal document reference for local uploads.
	Locator string
}

// SearchResponse wraps a result set with the flags chat callers consume.
// A query with no extractable keywords or no matches is a successful,
// empty response.
type SearchResponse struct {
	Found   bool
	Count   int
	Results []SearchResult
}

// NewSearchResponse builds a response from a ranked result slice.
func NewSearchResponse(results []SearchResult) SearchResponse {
	return SearchResponse{
		Found:   len(results) > 0,
		Count:   len(results),
		Results: results,
	}
}
