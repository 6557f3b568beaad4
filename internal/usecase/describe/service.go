// Package describe finds points of interest by free-text description
// similarity.
package describe

import (
	"context"
	"fmt"
	"strings"

	"github.com/Maldaris/europa-awareness-map/internal/domain"
	dompoi "github.com/Maldaris/europa-awareness-map/internal/domain/poi"
)

// Service embeds a natural-language query and runs a KNN search over
// stored description vectors.
type Service struct {
	repo     Repository
	embedder Embedder
	maxTopK  int
}

// New creates a describe service. embedder may be nil; searching then
// fails with domain.ErrSemanticSearchDisabled.
func New(repo Repository, embedder Embedder) *Service {
	return &Service{repo: repo, embedder: embedder, maxTopK: 50}
}

// Enabled reports whether semantic search is configured.
func (s *Service) Enabled() bool {
	return s.embedder != nil
}

// Search returns the POIs whose descriptions best match the query text.
func (s *Service) Search(ctx context.Context, query string, topK int) ([]dompoi.Scored, error) {
	if s.embedder == nil {
		return nil, domain.ErrSemanticSearchDisabled
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query text is required: %w", domain.ErrInvalidQuery)
	}

	if topK <= 0 {
		topK = 10
	}
	if topK > s.maxTopK {
		topK = s.maxTopK
	}

	result, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	scored, err := s.repo.SimilarByDescription(ctx, result.Embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("similar by description: %w", err)
	}
	return scored, nil
}
