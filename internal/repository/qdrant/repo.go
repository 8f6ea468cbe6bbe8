// Package qdrant implements domain.VectorIndex over a Qdrant collection
// reached through the official gRPC client.
package qdrant

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/domain/filter"
)

// client is the consumer interface over *qdrant.Client (ISP).
type client interface {
	CollectionExists(ctx context.Context, collectionName string) (bool, error)
	CreateCollection(ctx context.Context, req *qdrant.CreateCollection) error
	DeleteCollection(ctx context.Context, collectionName string) error
	Upsert(ctx context.Context, req *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	Query(ctx context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
	Count(ctx context.Context, req *qdrant.CountPoints) (uint64, error)
}

// Repo is a Qdrant-backed vector index for product documents. Point ids
// are the numeric catalog product ids, so same-product upserts replace
// the previous point.
type Repo struct {
	client     client
	collection string
	dim        int
}

var _ domain.VectorIndex = (*Repo)(nil)

// New creates a Qdrant vector index repository. dim is the embedding
// dimension the collection is created with.
func New(c client, collection string, dim int) *Repo {
	return &Repo{client: c, collection: collection, dim: dim}
}

// EnsureCollection creates the collection if it does not exist yet.
// Called at startup and after Clear.
func (r *Repo) EnsureCollection(ctx context.Context) error {
	exists, err := r.client.CollectionExists(ctx, r.collection)
	if err != nil {
		return fmt.Errorf("collection exists %s: %w", r.collection, err)
	}
	if exists {
		return nil
	}

	err = r.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: r.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(r.dim),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("create collection %s: %w", r.collection, err)
	}
	return nil
}

// Upsert writes the whole batch in one blocking call. Same-id documents
// replace their previous point; the batch fails as a whole on any error.
func (r *Repo) Upsert(ctx context.Context, docs []domain.IndexedDocument) error {
	if len(docs) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, len(docs))
	for i, doc := range docs {
		if len(doc.Vector) != r.dim {
			return fmt.Errorf("document %s has %d dimensions, collection expects %d: %w",
				doc.ID, len(doc.Vector), r.dim, domain.ErrVectorDimMismatch)
		}
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(doc.Metadata.ProductID)),
			Vectors: qdrant.NewVectors(doc.Vector...),
			Payload: buildPayload(doc),
		}
	}

	_, err := r.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: r.collection,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("upsert %d documents: %w: %w", len(docs), domain.ErrIndexUnavailable, err)
	}
	return nil
}

// Query runs a filtered nearest-neighbor search and maps hits back to
// domain matches in the engine's ranking order.
func (r *Repo) Query(
	ctx context.Context, vector []float32, f filter.Expression, k int,
) ([]domain.Match, error) {
	if len(vector) != r.dim {
		return nil, fmt.Errorf("query vector has %d dimensions, collection expects %d: %w",
			len(vector), r.dim, domain.ErrVectorDimMismatch)
	}

	points, err := r.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: r.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
		Filter:         BuildFilter(f),
	})
	if err != nil {
		return nil, fmt.Errorf("query %s: %w: %w", r.collection, domain.ErrIndexUnavailable, err)
	}

	matches := make([]domain.Match, 0, len(points))
	for _, p := range points {
		meta := parsePayload(p.Payload)
		matches = append(matches, domain.Match{
			DocID: domain.DocID(meta.ProductID),
			// Cosine scores are similarities in [-1, 1]; callers rank by
			// ascending distance, same as the RediSearch driver.
			Distance: 1 - float64(p.Score),
			Metadata: meta,
		})
	}
	return matches, nil
}

// Count returns the exact number of indexed documents.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: r.collection,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w: %w", r.collection, domain.ErrIndexUnavailable, err)
	}
	return int(n), nil
}

// Clear drops the collection and recreates an empty one so subsequent
// syncs land in a fresh collection.
func (r *Repo) Clear(ctx context.Context) error {
	if err := r.client.DeleteCollection(ctx, r.collection); err != nil {
		return fmt.Errorf("delete collection %s: %w: %w", r.collection, domain.ErrIndexUnavailable, err)
	}
	return r.EnsureCollection(ctx)
}

// BuildFilter translates the conjunction into Qdrant Must conditions.
// Returns nil for the unrestricted query.
func BuildFilter(f filter.Expression) *qdrant.Filter {
	if f.IsEmpty() {
		return nil
	}

	must := make([]*qdrant.Condition, 0, len(f.Conditions()))
	for _, c := range f.Conditions() {
		switch {
		case c.IsEquals():
			must = append(must, qdrant.NewMatchInt(c.Key(), *c.Equals()))
		case c.IsRange():
			must = append(must, qdrant.NewRange(c.Key(), &qdrant.Range{
				Gte: c.Range().Min(),
				Lte: c.Range().Max(),
			}))
		}
	}
	return &qdrant.Filter{Must: must}
}
