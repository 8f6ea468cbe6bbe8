package search

import (
	"context"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/domain/filter"
)

// Index is the vector index read contract the query path needs.
type Index interface {
	Query(ctx context.Context, vector []float32, f filter.Expression, k int) ([]domain.Match, error)
}

// Embedder vectorizes the query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
