package domain

import (
	"fmt"
	"strings"
)

// DefaultNResults caps a search when the request does not say how many.
const DefaultNResults = 10

// SearchRequest is a validated semantic search request.
type SearchRequest struct {
	Query      string
	NResults   int
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  *float64
	CategoryID *int64
}

// Validate rejects blank queries and non-positive result counts, applying
// the default count when unset. Runs before any embedding work.
func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return ErrEmptyQuery
	}
	if r.NResults == 0 {
		r.NResults = DefaultNResults
	}
	if r.NResults < 0 {
		return fmt.Errorf("n_results must be positive, got %d: %w", r.NResults, ErrInvalidRequest)
	}
	if r.MinPrice != nil && r.MaxPrice != nil && *r.MinPrice > *r.MaxPrice {
		return fmt.Errorf("min_price %g exceeds max_price %g: %w", *r.MinPrice, *r.MaxPrice, ErrInvalidRequest)
	}
	return nil
}

// Match is one ranked hit from the vector index.
type Match struct {
	DocID    string
	Distance float64
	Metadata Metadata
}

// SearchResult carries the projected catalog ids (primary contract, in
// ranking order) and the raw match metadata for display.
type SearchResult struct {
	Query      string
	ProductIDs []int64
	Matches    []Match
}
