// Package catalog fetches product records from the catalog service that
// owns the product data. Records are returned as raw JSON objects; field
// normalization is the sync pipeline's concern.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

const defaultTimeout = 30 * time.Second

// Config holds the catalog client settings.
type Config struct {
	BaseURL  string
	Products string // products path, default "/api/produits"
	Timeout  time.Duration
	Logger   *zap.Logger
}

// Client is an HTTP client for the catalog service.
type Client struct {
	http     *http.Client
	baseURL  string
	products string
	logger   *zap.Logger
}

// NewClient creates a catalog client with a bounded request timeout.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	products := cfg.Products
	if products == "" {
		products = "/api/produits"
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		products: products,
		logger:   cfg.Logger,
	}
}

// FetchProducts retrieves the full product list. Transport failures and
// non-2xx responses wrap domain.ErrCatalogUnavailable so the HTTP layer
// can answer 503.
func (c *Client) FetchProducts(ctx context.Context) ([]map[string]any, error) {
	url := c.baseURL + c.products

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w: %w", url, domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch %s: status %d: %s: %w",
			url, resp.StatusCode, strings.TrimSpace(string(body)), domain.ErrCatalogUnavailable)
	}

	var products []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w: %w", domain.ErrCatalogUnavailable, err)
	}

	c.logger.Debug("Fetched catalog products",
		zap.Int("count", len(products)),
		zap.Duration("duration", time.Since(start)),
	)

	return products, nil
}
