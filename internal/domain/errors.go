package domain

import "errors"

// KeyPrefix namespaces every storage key written by this service.
const KeyPrefix = "europa:"

var (
	// ErrNotFound signals a missing POI.
	ErrNotFound = errors.New("poi not found")
	// ErrAlreadyExists signals a duplicate POI id.
	ErrAlreadyExists = errors.New("poi already exists")
	// ErrInvalidPOI signals a POI that failed validation.
	ErrInvalidPOI = errors.New("invalid poi")
	// ErrInvalidCursor signals a malformed pagination cursor.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrInvalidQuery signals malformed query parameters.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrSemanticSearchDisabled signals that no embedding provider is configured.
	ErrSemanticSearchDisabled = errors.New("semantic search disabled")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrRateLimited signals a throttled pick request.
	ErrRateLimited = errors.New("rate limited")
)
