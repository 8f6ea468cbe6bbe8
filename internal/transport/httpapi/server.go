// Package httpapi exposes the sync and search pipelines over JSON HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	logpkg "github.com/kailas-cloud/prodsearch/internal/logger"
	healthuc "github.com/kailas-cloud/prodsearch/internal/usecase/health"
	"github.com/kailas-cloud/prodsearch/internal/version"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for the product search API.
type Server struct {
	sync          Syncer
	search        Searcher
	health        HealthChecker
	index         Clearer
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(sync Syncer, search Searcher, health HealthChecker, index Clearer, logger *zap.Logger) *Server {
	s := &Server{
		sync:   sync,
		search: search,
		health: health,
		index:  index,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrVectorDimMismatch, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, codeCatalogUnavailable),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProvider),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusServiceUnavailable, codeIndexUnavailable),
	}
	return s
}

// RegisterRoutes mounts all API endpoints on the router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/", s.Root)
	r.Get("/health", s.HealthCheck)
	r.Post("/sync-products", s.SyncProducts)
	r.Post("/sync-from-external-source", s.SyncFromExternalSource)
	r.Get("/search", s.SearchGet)
	r.Post("/search", s.SearchPost)
	r.Delete("/clear-collection", s.ClearCollection)
	r.Get("/metrics", s.Metrics)
}

// Root handles GET / with a service descriptor.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "prodsearch",
		"version": version.Version,
		"endpoints": []string{
			"GET /health",
			"POST /sync-products",
			"POST /sync-from-external-source",
			"GET /search",
			"POST /search",
			"DELETE /clear-collection",
			"GET /metrics",
		},
	})
}

// HealthCheck handles GET /health. Always answers 200; dependency
// failures degrade the payload instead of the status code.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	resp := healthResponse{
		Status:          string(report.Status),
		Collection:      report.Collection,
		ProductsIndexed: report.ProductsIndexed,
		Model:           report.Model,
	}
	if report.Status != healthuc.Healthy {
		resp.Message = report.Message
	}

	writeJSON(w, http.StatusOK, resp)
}

// SyncProducts handles POST /sync-products with an inline product payload.
func (s *Server) SyncProducts(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	count, err := s.sync.Sync(r.Context(), req.Products)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, syncResponse{
		Message: "Products synced successfully",
		Count:   count,
	})
}

// SyncFromExternalSource handles POST /sync-from-external-source: fetch
// the catalog, then sync.
func (s *Server) SyncFromExternalSource(w http.ResponseWriter, r *http.Request) {
	count, err := s.sync.SyncFromCatalog(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, syncResponse{
		Message: "Products synced from external source",
		Count:   count,
	})
}

// SearchPost handles POST /search with a JSON body.
func (s *Server) SearchPost(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	s.doSearch(w, r, req.toDomain())
}

// SearchGet handles GET /search with query parameters.
func (s *Server) SearchGet(w http.ResponseWriter, r *http.Request) {
	req, err := searchRequestFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	s.doSearch(w, r, req)
}

func (s *Server) doSearch(w http.ResponseWriter, r *http.Request, req *domain.SearchRequest) {
	result, err := s.search.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponseFromDomain(result))
}

// ClearCollection handles DELETE /clear-collection.
func (s *Server) ClearCollection(w http.ResponseWriter, r *http.Request) {
	if err := s.index.Clear(r.Context()); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Collection cleared",
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrInvalidRequest,
		domain.ErrVectorDimMismatch,
		domain.ErrCatalogUnavailable,
		domain.ErrEmbeddingProviderError,
		domain.ErrIndexUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	// Request-scoped logger carries request_id when the middleware is mounted.
	log := logpkg.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
