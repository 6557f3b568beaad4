package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors mapped from API error codes. Use errors.Is() to check.
var (
	ErrBadRequest             = errors.New("bad request")
	ErrValidation             = errors.New("validation failed")
	ErrNotFound               = errors.New("poi not found")
	ErrAlreadyExists          = errors.New("poi already exists")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrRateLimited            = errors.New("rate limited")
	ErrSemanticSearchDisabled = errors.New("semantic search disabled")
	ErrEmbeddingProvider      = errors.New("embedding provider error")
)

// APIError carries the HTTP status and the server's error payload. It
// unwraps to the sentinel matching its code.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("europa: api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// Unwrap maps the error code to a package sentinel.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	switch e.Code {
	case "bad_request":
		return ErrBadRequest
	case "validation_failed":
		return ErrValidation
	case "poi_not_found":
		return ErrNotFound
	case "poi_already_exists":
		return ErrAlreadyExists
	case "rate_limited":
		return ErrRateLimited
	case "semantic_search_disabled":
		return ErrSemanticSearchDisabled
	case "embedding_provider_error":
		return ErrEmbeddingProvider
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
	}
	return apiErr
}
