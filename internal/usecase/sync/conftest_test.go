package sync

import (
	"context"
	"crypto/sha256"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

// hashEmbedder derives a deterministic vector from the text digest, so
// identical input always ranks identically.
type hashEmbedder struct {
	dim   int
	calls int
}

func (h *hashEmbedder) vector(text string) []float32 {
	sum := sha256.Sum256([]byte(text))
	vec := make([]float32, h.dim)
	for i := range vec {
		vec[i] = float32(sum[i%len(sum)]) / 255
	}
	return vec
}

func (h *hashEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	h.calls++
	return domain.EmbeddingResult{Embedding: h.vector(text), TotalTokens: 1}, nil
}

type fakeIndex struct {
	upsertFn    func(ctx context.Context, docs []domain.IndexedDocument) error
	upsertCalls int
	docs        []domain.IndexedDocument
}

func (f *fakeIndex) Upsert(ctx context.Context, docs []domain.IndexedDocument) error {
	f.upsertCalls++
	if f.upsertFn != nil {
		return f.upsertFn(ctx, docs)
	}
	f.docs = append(f.docs, docs...)
	return nil
}

type fakeCatalog struct {
	products []map[string]any
	err      error
}

func (f *fakeCatalog) FetchProducts(_ context.Context) ([]map[string]any, error) {
	return f.products, f.err
}

func newTestService(t *testing.T, idx *fakeIndex, cat *fakeCatalog) (*Service, *hashEmbedder) {
	t.Helper()
	emb := &hashEmbedder{dim: 8}
	return New(idx, cat, emb, zap.NewNop()), emb
}
