// Package search answers natural-language product queries through the
// vector index: validate, embed, filter, query, project catalog ids.
package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/metrics"
)

// Service handles semantic product search.
type Service struct {
	index    Index
	embedder Embedder
	logger   *zap.Logger
}

// New creates a search service.
func New(index Index, embedder Embedder, logger *zap.Logger) *Service {
	return &Service{index: index, embedder: embedder, logger: logger}
}

// Search validates the request, embeds the query and returns catalog ids
// in the index ranking order. Malformed or foreign doc ids are dropped,
// never fatal.
func (s *Service) Search(ctx context.Context, req *domain.SearchRequest) (domain.SearchResult, error) {
	if err := req.Validate(); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return domain.SearchResult{}, err
	}

	start := time.Now()

	emb, err := s.embedder.Embed(ctx, req.Query)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return domain.SearchResult{}, fmt.Errorf("embed query: %w", err)
	}

	f, err := BuildFilter(req)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return domain.SearchResult{}, fmt.Errorf("build filter: %w", err)
	}

	matches, err := s.index.Query(ctx, emb.Embedding, f, req.NResults)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return domain.SearchResult{}, fmt.Errorf("query index: %w", err)
	}

	productIDs := make([]int64, 0, len(matches))
	kept := matches[:0:0]
	for _, m := range matches {
		id, ok := domain.ParseDocID(m.DocID)
		if !ok {
			s.logger.Warn("Dropping match with foreign doc id", zap.String("doc_id", m.DocID))
			continue
		}
		productIDs = append(productIDs, id)
		kept = append(kept, m)
	}

	metrics.SearchRequestsTotal.WithLabelValues("success").Inc()

	s.logger.Debug("Search completed",
		zap.String("query", req.Query),
		zap.Int("matches", len(productIDs)),
		zap.Duration("duration", time.Since(start)),
	)

	return domain.SearchResult{
		Query:      req.Query,
		ProductIDs: productIDs,
		Matches:    kept,
	}, nil
}
