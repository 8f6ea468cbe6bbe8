package httpapi

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/usecase/health"
)

type fakeSyncer struct {
	syncFn        func(ctx context.Context, products []map[string]any) (int, error)
	syncCatalogFn func(ctx context.Context) (int, error)
}

func (f *fakeSyncer) Sync(ctx context.Context, products []map[string]any) (int, error) {
	if f.syncFn != nil {
		return f.syncFn(ctx, products)
	}
	return len(products), nil
}

func (f *fakeSyncer) SyncFromCatalog(ctx context.Context) (int, error) {
	if f.syncCatalogFn != nil {
		return f.syncCatalogFn(ctx)
	}
	return 0, nil
}

type fakeSearcher struct {
	searchFn func(ctx context.Context, req *domain.SearchRequest) (domain.SearchResult, error)
	lastReq  *domain.SearchRequest
}

func (f *fakeSearcher) Search(ctx context.Context, req *domain.SearchRequest) (domain.SearchResult, error) {
	f.lastReq = req
	if f.searchFn != nil {
		return f.searchFn(ctx, req)
	}
	if err := req.Validate(); err != nil {
		return domain.SearchResult{}, err
	}
	return domain.SearchResult{Query: req.Query, ProductIDs: []int64{}}, nil
}

type fakeHealth struct {
	report health.Report
}

func (f *fakeHealth) Check(_ context.Context) health.Report {
	return f.report
}

type fakeClearer struct {
	err   error
	calls int
}

func (f *fakeClearer) Clear(_ context.Context) error {
	f.calls++
	return f.err
}

type testDeps struct {
	sync   *fakeSyncer
	search *fakeSearcher
	health *fakeHealth
	index  *fakeClearer
}

func newTestServer(t *testing.T) (*httptest.Server, *testDeps) {
	t.Helper()

	deps := &testDeps{
		sync:   &fakeSyncer{},
		search: &fakeSearcher{},
		health: &fakeHealth{report: health.Report{
			Status:          health.Healthy,
			Collection:      "products",
			ProductsIndexed: 3,
			Model:           "test-model",
		}},
		index: &fakeClearer{},
	}

	srv := NewServer(deps.sync, deps.search, deps.health, deps.index, zap.NewNop())
	r := chi.NewRouter()
	srv.RegisterRoutes(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, deps
}
