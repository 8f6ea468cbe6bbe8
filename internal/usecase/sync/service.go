// Package sync ingests product records into the vector index: normalize
// the wire payload, compose the embedding text, vectorize, and upsert the
// whole batch in one call.
package sync

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/metrics"
)

// Service coordinates product ingestion.
type Service struct {
	index    Index
	catalog  Catalog
	embedder Embedder
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a sync service. catalog may be nil when only direct payload
// sync is wired.
func New(index Index, catalog Catalog, embedder Embedder, logger *zap.Logger) *Service {
	return &Service{
		index:    index,
		catalog:  catalog,
		embedder: embedder,
		logger:   logger,
		now:      time.Now,
	}
}

// Sync normalizes, vectorizes and indexes the given wire products.
// Records with no usable id or an empty composed text are skipped, not
// fatal. Returns the number of upserted documents.
func (s *Service) Sync(ctx context.Context, products []map[string]any) (int, error) {
	start := time.Now()
	syncedAt := s.now().UTC().Format(time.RFC3339)

	var (
		records []domain.ProductRecord
		texts   []string
		skipped int
	)
	for i, wire := range products {
		p := domain.ProductFromWire(wire)
		if !p.HasID() {
			s.logger.Warn("Skipping product without usable id", zap.Int("position", i))
			skipped++
			continue
		}
		text := domain.ComposeText(p)
		if text == "" {
			s.logger.Warn("Skipping product with empty text", zap.Int64("product_id", p.ID))
			skipped++
			continue
		}
		records = append(records, p)
		texts = append(texts, text)
	}

	metrics.SyncProductsTotal.WithLabelValues("skipped").Add(float64(skipped))

	if len(records) == 0 {
		s.logger.Info("Nothing to sync", zap.Int("received", len(products)))
		return 0, nil
	}

	embs, err := domain.BatchEmbed(ctx, s.embedder, texts)
	if err != nil {
		return 0, fmt.Errorf("vectorize %d products: %w", len(texts), err)
	}
	if len(embs.Embeddings) != len(records) {
		return 0, fmt.Errorf("got %d embeddings for %d products: %w",
			len(embs.Embeddings), len(records), domain.ErrEmbeddingProviderError)
	}

	docs := make([]domain.IndexedDocument, len(records))
	for i, p := range records {
		docs[i] = domain.NewIndexedDocument(p, texts[i], embs.Embeddings[i], syncedAt)
	}

	if err := s.index.Upsert(ctx, docs); err != nil {
		return 0, fmt.Errorf("index %d products: %w", len(docs), err)
	}

	metrics.SyncProductsTotal.WithLabelValues("indexed").Add(float64(len(docs)))
	metrics.SyncDuration.Observe(time.Since(start).Seconds())

	s.logger.Info("Sync completed",
		zap.Int("indexed", len(docs)),
		zap.Int("skipped", skipped),
		zap.Int("tokens", embs.TotalTokens),
		zap.Duration("duration", time.Since(start)),
	)

	return len(docs), nil
}

// SyncFromCatalog fetches the product list from the catalog service and
// runs a full sync. Catalog transport failures keep their
// domain.ErrCatalogUnavailable identity.
func (s *Service) SyncFromCatalog(ctx context.Context) (int, error) {
	products, err := s.catalog.FetchProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch catalog products: %w", err)
	}
	return s.Sync(ctx, products)
}
