package qdrant

import (
	"context"

	"github.com/qdrant/go-client/qdrant"
)

type mockClient struct {
	collectionExistsFn func(ctx context.Context, name string) (bool, error)
	createCollectionFn func(ctx context.Context, req *qdrant.CreateCollection) error
	deleteCollectionFn func(ctx context.Context, name string) error
	upsertFn           func(ctx context.Context, req *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	queryFn            func(ctx context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
	countFn            func(ctx context.Context, req *qdrant.CountPoints) (uint64, error)
}

func (m *mockClient) CollectionExists(ctx context.Context, name string) (bool, error) {
	if m.collectionExistsFn == nil {
		return true, nil
	}
	return m.collectionExistsFn(ctx, name)
}

func (m *mockClient) CreateCollection(ctx context.Context, req *qdrant.CreateCollection) error {
	if m.createCollectionFn == nil {
		return nil
	}
	return m.createCollectionFn(ctx, req)
}

func (m *mockClient) DeleteCollection(ctx context.Context, name string) error {
	if m.deleteCollectionFn == nil {
		return nil
	}
	return m.deleteCollectionFn(ctx, name)
}

func (m *mockClient) Upsert(ctx context.Context, req *qdrant.UpsertPoints) (*qdrant.UpdateResult, error) {
	if m.upsertFn == nil {
		return &qdrant.UpdateResult{}, nil
	}
	return m.upsertFn(ctx, req)
}

func (m *mockClient) Query(ctx context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error) {
	if m.queryFn == nil {
		return nil, nil
	}
	return m.queryFn(ctx, req)
}

func (m *mockClient) Count(ctx context.Context, req *qdrant.CountPoints) (uint64, error) {
	if m.countFn == nil {
		return 0, nil
	}
	return m.countFn(ctx, req)
}

func newTestRepo(c *mockClient, dim int) *Repo {
	return New(c, "products", dim)
}
