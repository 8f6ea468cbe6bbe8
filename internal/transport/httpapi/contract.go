package httpapi

import (
	"context"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/usecase/health"
)

// Syncer runs ingestion cycles.
type Syncer interface {
	Sync(ctx context.Context, products []map[string]any) (int, error)
	SyncFromCatalog(ctx context.Context) (int, error)
}

// Searcher answers product queries.
type Searcher interface {
	Search(ctx context.Context, req *domain.SearchRequest) (domain.SearchResult, error)
}

// HealthChecker reports service readiness.
type HealthChecker interface {
	Check(ctx context.Context) health.Report
}

// Clearer drops every indexed document.
type Clearer interface {
	Clear(ctx context.Context) error
}
