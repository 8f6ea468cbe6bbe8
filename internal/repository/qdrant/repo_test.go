package qdrant

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/qdrant/go-client/qdrant"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/domain/filter"
)

func testProduct() domain.ProductRecord {
	return domain.ProductRecord{
		ID:           7,
		Title:        "Trail camera",
		Description:  "Motion activated",
		CategoryID:   3,
		CategoryName: "Electronics",
		Price:        59.99,
		Rating:       4.5,
		RatingCount:  120,
		ASIN:         "B00TEST",
	}
}

func TestBuildFilter(t *testing.T) {
	t.Run("empty expression yields nil", func(t *testing.T) {
		if got := BuildFilter(filter.Expression{}); got != nil {
			t.Fatalf("BuildFilter(empty) = %v, want nil", got)
		}
	})

	t.Run("equality becomes integer match", func(t *testing.T) {
		cond, err := filter.NewEquals(domain.FieldCategoryID, 3)
		if err != nil {
			t.Fatal(err)
		}
		f := BuildFilter(filter.NewExpression(cond))
		if len(f.Must) != 1 {
			t.Fatalf("Must has %d conditions, want 1", len(f.Must))
		}
		field := f.Must[0].GetField()
		if field.GetKey() != domain.FieldCategoryID {
			t.Errorf("key = %q, want %q", field.GetKey(), domain.FieldCategoryID)
		}
		if got := field.GetMatch().GetInteger(); got != 3 {
			t.Errorf("match integer = %d, want 3", got)
		}
	})

	t.Run("range becomes gte lte bounds", func(t *testing.T) {
		cond, err := filter.NewRange(domain.FieldPrice, filter.Between(10, 50))
		if err != nil {
			t.Fatal(err)
		}
		f := BuildFilter(filter.NewExpression(cond))
		rng := f.Must[0].GetField().GetRange()
		if rng.Gte == nil || *rng.Gte != 10 {
			t.Errorf("gte = %v, want 10", rng.Gte)
		}
		if rng.Lte == nil || *rng.Lte != 50 {
			t.Errorf("lte = %v, want 50", rng.Lte)
		}
	})

	t.Run("all conditions land in must", func(t *testing.T) {
		price, err := filter.NewRange(domain.FieldPrice, filter.LTE(100))
		if err != nil {
			t.Fatal(err)
		}
		rating, err := filter.NewRange(domain.FieldRating, filter.GTE(4))
		if err != nil {
			t.Fatal(err)
		}
		category, err := filter.NewEquals(domain.FieldCategoryID, 5)
		if err != nil {
			t.Fatal(err)
		}
		f := BuildFilter(filter.NewExpression(price, rating, category))
		if len(f.Must) != 3 {
			t.Fatalf("Must has %d conditions, want 3", len(f.Must))
		}
	})
}

func TestUpsert(t *testing.T) {
	doc := domain.NewIndexedDocument(testProduct(), "Trail camera | Motion activated", []float32{0.1, 0.2, 0.3}, "2026-09-01T10:00:00Z")

	t.Run("builds numeric point ids and typed payload", func(t *testing.T) {
		var captured *qdrant.UpsertPoints
		c := &mockClient{
			upsertFn: func(_ context.Context, req *qdrant.UpsertPoints) (*qdrant.UpdateResult, error) {
				captured = req
				return &qdrant.UpdateResult{}, nil
			},
		}
		repo := newTestRepo(c, 3)

		if err := repo.Upsert(context.Background(), []domain.IndexedDocument{doc}); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
		if captured == nil {
			t.Fatal("upsert was not called")
		}
		if captured.CollectionName != "products" {
			t.Errorf("collection = %q, want products", captured.CollectionName)
		}
		if captured.Wait == nil || !*captured.Wait {
			t.Error("upsert must wait for persistence")
		}
		if len(captured.Points) != 1 {
			t.Fatalf("%d points, want 1", len(captured.Points))
		}
		p := captured.Points[0]
		if got := p.Id.GetNum(); got != 7 {
			t.Errorf("point id = %d, want 7", got)
		}
		if got := p.Payload[domain.FieldPrice].GetDoubleValue(); got != 59.99 {
			t.Errorf("price payload = %v, want 59.99", got)
		}
		if got := p.Payload[domain.FieldCategoryID].GetIntegerValue(); got != 3 {
			t.Errorf("category payload = %v, want 3", got)
		}
		if got := p.Payload[contentField].GetStringValue(); got != doc.Text {
			t.Errorf("content payload = %q, want %q", got, doc.Text)
		}
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		c := &mockClient{
			upsertFn: func(_ context.Context, _ *qdrant.UpsertPoints) (*qdrant.UpdateResult, error) {
				t.Fatal("upsert must not be called for an empty batch")
				return nil, nil
			},
		}
		if err := newTestRepo(c, 3).Upsert(context.Background(), nil); err != nil {
			t.Fatalf("Upsert(nil): %v", err)
		}
	})

	t.Run("dimension mismatch is rejected", func(t *testing.T) {
		bad := doc
		bad.Vector = []float32{0.1}
		err := newTestRepo(&mockClient{}, 3).Upsert(context.Background(), []domain.IndexedDocument{bad})
		if !errors.Is(err, domain.ErrVectorDimMismatch) {
			t.Fatalf("err = %v, want ErrVectorDimMismatch", err)
		}
	})

	t.Run("transport failure marks the index unavailable", func(t *testing.T) {
		c := &mockClient{
			upsertFn: func(_ context.Context, _ *qdrant.UpsertPoints) (*qdrant.UpdateResult, error) {
				return nil, errors.New("connection refused")
			},
		}
		err := newTestRepo(c, 3).Upsert(context.Background(), []domain.IndexedDocument{doc})
		if !errors.Is(err, domain.ErrIndexUnavailable) {
			t.Fatalf("err = %v, want ErrIndexUnavailable", err)
		}
	})
}

func TestQuery(t *testing.T) {
	doc := domain.NewIndexedDocument(testProduct(), "Trail camera | Motion activated", []float32{0.1, 0.2, 0.3}, "2026-09-01T10:00:00Z")

	t.Run("maps scored points to matches", func(t *testing.T) {
		c := &mockClient{
			queryFn: func(_ context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error) {
				if req.Limit == nil || *req.Limit != 5 {
					t.Errorf("limit = %v, want 5", req.Limit)
				}
				return []*qdrant.ScoredPoint{
					{Id: qdrant.NewIDNum(7), Score: 0.92, Payload: buildPayload(doc)},
				}, nil
			},
		}
		matches, err := newTestRepo(c, 3).Query(context.Background(), []float32{0.1, 0.2, 0.3}, filter.Expression{}, 5)
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if len(matches) != 1 {
			t.Fatalf("%d matches, want 1", len(matches))
		}
		m := matches[0]
		if m.DocID != "product_7" {
			t.Errorf("doc id = %q, want product_7", m.DocID)
		}
		if math.Abs(m.Distance-(1-0.92)) > 1e-6 {
			t.Errorf("distance = %v, want %v", m.Distance, 1-0.92)
		}
		if m.Metadata.Title != "Trail camera" || m.Metadata.Price != 59.99 {
			t.Errorf("metadata round-trip failed: %+v", m.Metadata)
		}
	})

	t.Run("empty collection yields no matches", func(t *testing.T) {
		matches, err := newTestRepo(&mockClient{}, 3).Query(context.Background(), []float32{0, 0, 0}, filter.Expression{}, 10)
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if len(matches) != 0 {
			t.Fatalf("%d matches, want 0", len(matches))
		}
	})

	t.Run("dimension mismatch is rejected", func(t *testing.T) {
		_, err := newTestRepo(&mockClient{}, 3).Query(context.Background(), []float32{0.1}, filter.Expression{}, 10)
		if !errors.Is(err, domain.ErrVectorDimMismatch) {
			t.Fatalf("err = %v, want ErrVectorDimMismatch", err)
		}
	})
}

func TestCount(t *testing.T) {
	c := &mockClient{
		countFn: func(_ context.Context, req *qdrant.CountPoints) (uint64, error) {
			if req.Exact == nil || !*req.Exact {
				t.Error("count must be exact")
			}
			return 42, nil
		},
	}
	n, err := newTestRepo(c, 3).Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 42 {
		t.Fatalf("count = %d, want 42", n)
	}
}

func TestClear(t *testing.T) {
	var deleted, created bool
	c := &mockClient{
		deleteCollectionFn: func(_ context.Context, name string) error {
			deleted = true
			return nil
		},
		collectionExistsFn: func(_ context.Context, _ string) (bool, error) {
			return false, nil
		},
		createCollectionFn: func(_ context.Context, req *qdrant.CreateCollection) error {
			created = true
			if got := req.VectorsConfig.GetParams().GetSize(); got != 3 {
				t.Errorf("recreated with size %d, want 3", got)
			}
			return nil
		},
	}
	if err := newTestRepo(c, 3).Clear(context.Background()); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if !deleted || !created {
		t.Fatalf("deleted=%v created=%v, want both", deleted, created)
	}
}

func TestEnsureCollection(t *testing.T) {
	t.Run("skips creation when present", func(t *testing.T) {
		c := &mockClient{
			createCollectionFn: func(_ context.Context, _ *qdrant.CreateCollection) error {
				t.Fatal("create must not run when the collection exists")
				return nil
			},
		}
		if err := newTestRepo(c, 3).EnsureCollection(context.Background()); err != nil {
			t.Fatalf("EnsureCollection: %v", err)
		}
	})

	t.Run("creates cosine collection with configured dimension", func(t *testing.T) {
		var captured *qdrant.CreateCollection
		c := &mockClient{
			collectionExistsFn: func(_ context.Context, _ string) (bool, error) { return false, nil },
			createCollectionFn: func(_ context.Context, req *qdrant.CreateCollection) error {
				captured = req
				return nil
			},
		}
		if err := newTestRepo(c, 1536).EnsureCollection(context.Background()); err != nil {
			t.Fatalf("EnsureCollection: %v", err)
		}
		params := captured.VectorsConfig.GetParams()
		if params.GetSize() != 1536 {
			t.Errorf("size = %d, want 1536", params.GetSize())
		}
		if params.GetDistance() != qdrant.Distance_Cosine {
			t.Errorf("distance = %v, want cosine", params.GetDistance())
		}
	})
}
