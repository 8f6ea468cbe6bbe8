package domain

import "errors"

var (
	// ErrInvalidRequest signals a request rejected by validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrEmptyQuery signals a blank search query.
	ErrEmptyQuery = errors.New("query must not be empty")
	// ErrEmptyInput signals an empty text passed to the embedder.
	ErrEmptyInput = errors.New("embedding input must not be empty")
	// ErrCatalogUnavailable signals that the catalog service could not be reached.
	ErrCatalogUnavailable = errors.New("catalog service unavailable")
	// ErrIndexUnavailable signals a vector index upsert/query failure.
	ErrIndexUnavailable = errors.New("vector index unavailable")
	// ErrVectorDimMismatch signals a vector dimension mismatch between the
	// configured embedder and the index.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
