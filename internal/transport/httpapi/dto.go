package httpapi

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

// Error codes returned to clients.
const (
	codeBadRequest         = "bad_request"
	codeValidationFailed   = "validation_failed"
	codeCatalogUnavailable = "catalog_unavailable"
	codeEmbeddingProvider  = "embedding_provider_error"
	codeIndexUnavailable   = "index_unavailable"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type syncRequest struct {
	Products []map[string]any `json:"products"`
}

type syncResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type searchRequest struct {
	Query      string   `json:"query"`
	NResults   int      `json:"n_results"`
	MinPrice   *float64 `json:"min_price"`
	MaxPrice   *float64 `json:"max_price"`
	MinRating  *float64 `json:"min_rating"`
	CategoryID *int64   `json:"category_id"`
}

func (r *searchRequest) toDomain() *domain.SearchRequest {
	return &domain.SearchRequest{
		Query:      r.Query,
		NResults:   r.NResults,
		MinPrice:   r.MinPrice,
		MaxPrice:   r.MaxPrice,
		MinRating:  r.MinRating,
		CategoryID: r.CategoryID,
	}
}

// searchRequestFromQuery parses the GET /search query string.
func searchRequestFromQuery(q url.Values) (*domain.SearchRequest, error) {
	req := &domain.SearchRequest{Query: q.Get("query")}

	if v := q.Get("n_results"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("n_results must be an integer, got %q", v)
		}
		req.NResults = n
	}
	if v := q.Get("min_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("min_price must be a number, got %q", v)
		}
		req.MinPrice = &f
	}
	if v := q.Get("max_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("max_price must be a number, got %q", v)
		}
		req.MaxPrice = &f
	}
	if v := q.Get("min_rating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("min_rating must be a number, got %q", v)
		}
		req.MinRating = &f
	}
	if v := q.Get("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("category_id must be an integer, got %q", v)
		}
		req.CategoryID = &id
	}

	return req, nil
}

type searchResultItem struct {
	ProductID    int64   `json:"product_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	RatingCount  int64   `json:"ratingCount"`
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	ASIN         string  `json:"asin,omitempty"`
	Distance     float64 `json:"distance"`
}

type searchResponse struct {
	Query      string             `json:"query"`
	ProductIDs []int64            `json:"product_ids"`
	Count      int                `json:"count"`
	Results    []searchResultItem `json:"results"`
}

func searchResponseFromDomain(res domain.SearchResult) searchResponse {
	items := make([]searchResultItem, len(res.Matches))
	for i, m := range res.Matches {
		items[i] = searchResultItem{
			ProductID:    m.Metadata.ProductID,
			Title:        m.Metadata.Title,
			Description:  m.Metadata.Description,
			Price:        m.Metadata.Price,
			Rating:       m.Metadata.Rating,
			RatingCount:  m.Metadata.RatingCount,
			CategoryID:   m.Metadata.CategoryID,
			CategoryName: m.Metadata.CategoryName,
			ImageURL:     m.Metadata.ImageURL,
			ASIN:         m.Metadata.ASIN,
			Distance:     m.Distance,
		}
	}

	ids := res.ProductIDs
	if ids == nil {
		ids = []int64{}
	}

	return searchResponse{
		Query:      res.Query,
		ProductIDs: ids,
		Count:      len(ids),
		Results:    items,
	}
}

type healthResponse struct {
	Status          string `json:"status"`
	Collection      string `json:"collection,omitempty"`
	ProductsIndexed int    `json:"products_indexed"`
	Model           string `json:"model,omitempty"`
	Message         string `json:"message,omitempty"`
}
