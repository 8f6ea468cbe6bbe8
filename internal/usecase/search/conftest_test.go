package search

import (
	"context"
	"crypto/sha256"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/domain/filter"
)

type hashEmbedder struct {
	dim   int
	calls int
}

func (h *hashEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	h.calls++
	sum := sha256.Sum256([]byte(text))
	vec := make([]float32, h.dim)
	for i := range vec {
		vec[i] = float32(sum[i%len(sum)]) / 255
	}
	return domain.EmbeddingResult{Embedding: vec, TotalTokens: 1}, nil
}

type fakeIndex struct {
	queryFn func(ctx context.Context, vector []float32, f filter.Expression, k int) ([]domain.Match, error)
	calls   int
	lastF   filter.Expression
	lastK   int
}

func (f *fakeIndex) Query(
	ctx context.Context, vector []float32, expr filter.Expression, k int,
) ([]domain.Match, error) {
	f.calls++
	f.lastF = expr
	f.lastK = k
	if f.queryFn != nil {
		return f.queryFn(ctx, vector, expr, k)
	}
	return nil, nil
}

func newTestService(t *testing.T, idx *fakeIndex) (*Service, *hashEmbedder) {
	t.Helper()
	emb := &hashEmbedder{dim: 8}
	return New(idx, emb, zap.NewNop()), emb
}

func match(productID int64, distance float64) domain.Match {
	return domain.Match{
		DocID:    domain.DocID(productID),
		Distance: distance,
		Metadata: domain.Metadata{ProductID: productID, Title: "p"},
	}
}
