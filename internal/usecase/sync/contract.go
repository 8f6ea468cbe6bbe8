package sync

import (
	"context"

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

// Index is the vector index write contract the sync pipeline needs.
type Index interface {
	Upsert(ctx context.Context, docs []domain.IndexedDocument) error
}

// Catalog fetches the full product list from the catalog service.
type Catalog interface {
	FetchProducts(ctx context.Context) ([]map[string]any, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
