package domain

import (
	"context"

	"github.com/kailas-cloud/prodsearch/internal/domain/filter"
)

// VectorIndex is the opaque vector store capability. Implementations
// provide their own concurrency control; the pipeline treats upsert and
// query as transactional black boxes.
type VectorIndex interface {
	// Upsert replaces any existing documents sharing the same id.
	// The batch succeeds or fails as a whole.
	Upsert(ctx context.Context, docs []IndexedDocument) error

	// Query returns at most k matches ordered by ascending distance,
	// restricted by the filter. An empty index yields an empty slice.
	Query(ctx context.Context, vector []float32, f filter.Expression, k int) ([]Match, error)

	// Count returns the number of indexed documents.
	Count(ctx context.Context) (int, error)

	// Clear irreversibly drops all indexed documents.
	Clear(ctx context.Context) error
}
