// Package index implements domain.VectorIndex over a RediSearch store.
package index

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/prodsearch/internal/db"
	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/domain/filter"
)

// store is the consumer interface for the vector index (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	DelMulti(ctx context.Context, keys []string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// HNSWConfig carries HNSW build parameters for the FT index.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo is a RediSearch-backed vector index for product documents.
type Repo struct {
	store      store
	collection string
	keyPrefix  string
	dim        int
	hnsw       HNSWConfig
}

var _ domain.VectorIndex = (*Repo)(nil)

// New creates a Redis vector index repository. dim is the embedding
// dimension the index is built for; it is fixed for the index lifetime.
func New(s store, collection, keyPrefix string, dim int) *Repo {
	return &Repo{
		store:      s,
		collection: collection,
		keyPrefix:  keyPrefix,
		dim:        dim,
	}
}

// WithHNSW overrides HNSW build parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

func (r *Repo) indexName() string {
	return r.keyPrefix + r.collection + ":idx"
}

func (r *Repo) docKeyPrefix() string {
	return r.keyPrefix + r.collection + ":"
}

// EnsureIndex creates the FT index if it does not exist yet. Called at
// startup and after Clear.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.indexName())
	if err != nil {
		return fmt.Errorf("index exists %s: %w", r.indexName(), err)
	}
	if exists {
		return nil
	}

	def, err := db.NewIndex(r.indexName()).
		Prefix(r.docKeyPrefix()).
		Numeric(domain.FieldProductID).
		Numeric(domain.FieldPrice).
		Numeric(domain.FieldRating).
		Numeric(domain.FieldRatingCount).
		Numeric(domain.FieldCategoryID).
		Text(contentField).
		VectorHNSW(vectorField, r.dim, db.DistanceCosine, r.hnsw.M, r.hnsw.EFConstruct).
		Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", r.indexName(), err)
	}
	return nil
}

// Upsert writes the whole batch in one pipelined call. Same-id documents
// replace their previous hash; the batch fails as a whole on any error.
func (r *Repo) Upsert(ctx context.Context, docs []domain.IndexedDocument) error {
	if len(docs) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(docs))
	for i, doc := range docs {
		if len(doc.Vector) != r.dim {
			return fmt.Errorf("document %s has %d dimensions, index expects %d: %w",
				doc.ID, len(doc.Vector), r.dim, domain.ErrVectorDimMismatch)
		}
		items[i] = db.HashSetItem{
			Key:    r.docKeyPrefix() + doc.ID,
			Fields: buildHashFields(doc),
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert %d documents: %w: %w", len(docs), domain.ErrIndexUnavailable, err)
	}
	return nil
}

// Query runs a filtered KNN search and maps hits back to domain matches,
// preserving the engine's ascending-distance order.
func (r *Repo) Query(
	ctx context.Context, vector []float32, f filter.Expression, k int,
) ([]domain.Match, error) {
	if len(vector) != r.dim {
		return nil, fmt.Errorf("query vector has %d dimensions, index expects %d: %w",
			len(vector), r.dim, domain.ErrVectorDimMismatch)
	}

	q := &db.KNNQuery{
		IndexName:    r.indexName(),
		Filters:      f,
		Vector:       vector,
		K:            k,
		ReturnFields: returnFields(),
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn %s: %w: %w", r.collection, domain.ErrIndexUnavailable, err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	matches := make([]domain.Match, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		docID := strings.TrimPrefix(entry.Key, r.docKeyPrefix())
		matches = append(matches, domain.Match{
			DocID:    docID,
			Distance: entry.Score,
			Metadata: parseHashFields(entry.Fields),
		})
	}
	return matches, nil
}

// Count returns the number of indexed documents.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, r.indexName(), "*")
	if err != nil {
		return 0, fmt.Errorf("count %s: %w: %w", r.collection, domain.ErrIndexUnavailable, err)
	}
	return n, nil
}

// Clear drops the index and all document hashes, then recreates an empty
// index so subsequent syncs land in a fresh collection.
func (r *Repo) Clear(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, r.indexName()); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index %s: %w: %w", r.indexName(), domain.ErrIndexUnavailable, err)
	}

	keys, err := r.store.Scan(ctx, r.docKeyPrefix()+"*")
	if err != nil {
		return fmt.Errorf("scan %s: %w: %w", r.docKeyPrefix(), domain.ErrIndexUnavailable, err)
	}
	if err := r.store.DelMulti(ctx, keys); err != nil {
		return fmt.Errorf("delete %d documents: %w: %w", len(keys), domain.ErrIndexUnavailable, err)
	}

	return r.EnsureIndex(ctx)
}
