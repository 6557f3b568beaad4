// Package marker manages points of interest on the Europa surface.
package marker

import (
	"context"
	"fmt"

	"github.com/Maldaris/europa-awareness-map/internal/domain"
	dompoi "github.com/Maldaris/europa-awareness-map/internal/domain/poi"
	"github.com/Maldaris/europa-awareness-map/pkg/globe"
)

// Service handles POI CRUD and proximity queries. When an embedder is
// configured, descriptions are vectorized on write so semantic search can
// find them later.
type Service struct {
	repo            Repository
	embedder        Embedder
	defaultPageSize int
	maxPageSize     int
	maxNearestK     int
}

// New creates a marker service. embedder may be nil when semantic search
// is disabled.
func New(repo Repository, embedder Embedder) *Service {
	return &Service{
		repo:            repo,
		embedder:        embedder,
		defaultPageSize: 20,
		maxPageSize:     100,
		maxNearestK:     50,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// Create stores a new POI.
func (s *Service) Create(ctx context.Context, p *dompoi.POI) error {
	descVec, err := s.describeVector(ctx, p)
	if err != nil {
		return err
	}
	if err := s.repo.Insert(ctx, p, descVec); err != nil {
		return fmt.Errorf("insert poi: %w", err)
	}
	return nil
}

// Update replaces an existing POI.
func (s *Service) Update(ctx context.Context, p *dompoi.POI) error {
	descVec, err := s.describeVector(ctx, p)
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, p, descVec); err != nil {
		return fmt.Errorf("update poi: %w", err)
	}
	return nil
}

func (s *Service) describeVector(ctx context.Context, p *dompoi.POI) ([]float32, error) {
	if s.embedder == nil || p.Description() == "" {
		return nil, nil
	}
	result, err := s.embedder.Embed(ctx, p.Description())
	if err != nil {
		return nil, fmt.Errorf("vectorize description: %w", err)
	}
	return result.Embedding, nil
}

// Get retrieves a POI by id.
func (s *Service) Get(ctx context.Context, id string) (dompoi.POI, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return dompoi.POI{}, fmt.Errorf("get poi: %w", err)
	}
	return p, nil
}

// List returns a paginated list of POIs.
func (s *Service) List(ctx context.Context, cursor string, limit int) ([]dompoi.POI, string, error) {
	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	pois, nextCursor, err := s.repo.List(ctx, cursor, limit)
	if err != nil {
		return nil, "", fmt.Errorf("list pois: %w", err)
	}
	return pois, nextCursor, nil
}

// Delete removes a POI.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete poi: %w", err)
	}
	return nil
}

// Count returns the number of stored POIs.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count pois: %w", err)
	}
	return n, nil
}

// Nearest returns the k POIs closest to the given surface coordinates,
// optionally restricted to a marker type.
func (s *Service) Nearest(ctx context.Context, lat, lon float64, k int, poiType string) ([]dompoi.Nearby, error) {
	if !globe.ValidLatLon(lat, lon) {
		return nil, fmt.Errorf("coordinates out of range: lat=%f lon=%f: %w", lat, lon, domain.ErrInvalidQuery)
	}
	if k <= 0 {
		k = 1
	}
	if k > s.maxNearestK {
		k = s.maxNearestK
	}

	nearby, err := s.repo.Nearest(ctx, lat, lon, k, poiType)
	if err != nil {
		return nil, fmt.Errorf("nearest pois: %w", err)
	}
	return nearby, nil
}
