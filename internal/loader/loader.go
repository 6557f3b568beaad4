// Package loader bulk-loads the point-of-interest catalog from a JSON
// seed file at startup.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Maldaris/europa-awareness-map/internal/domain"
	dompoi "github.com/Maldaris/europa-awareness-map/internal/domain/poi"
)

// Repository is the storage contract for seeding. Upsert semantics make
// reloads idempotent.
type Repository interface {
	Upsert(ctx context.Context, p *dompoi.POI, descVec []float32) error
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// seedEntry is the JSON shape of one catalog record.
type seedEntry struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Location    string  `json:"location,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Type        string  `json:"type"`
	Category    string  `json:"category,omitempty"`
}

// Loader seeds the POI catalog. embedder may be nil; descriptions are
// then stored without vectors.
type Loader struct {
	repo     Repository
	embedder Embedder
	logger   *zap.Logger
}

// New creates a Loader.
func New(repo Repository, embedder Embedder, logger *zap.Logger) *Loader {
	return &Loader{repo: repo, embedder: embedder, logger: logger}
}

// LoadFile reads a JSON array of POIs and upserts each entry. Entries
// that fail validation are logged and skipped so one bad record cannot
// block the catalog. Returns the number of loaded entries.
func (l *Loader) LoadFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var entries []seedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0, fmt.Errorf("decode seed file %s: %w", path, err)
	}

	loaded := 0
	for _, e := range entries {
		p, err := dompoi.New(e.ID, e.Title, e.Description, e.Location, e.Lat, e.Lon, e.Type, e.Category)
		if err != nil {
			l.logger.Warn("Skipping invalid seed entry",
				zap.String("id", e.ID),
				zap.Error(err),
			)
			continue
		}

		var descVec []float32
		if l.embedder != nil && p.Description() != "" {
			result, err := l.embedder.Embed(ctx, p.Description())
			if err != nil {
				return loaded, fmt.Errorf("vectorize seed description %s: %w", p.ID(), err)
			}
			descVec = result.Embedding
		}

		if err := l.repo.Upsert(ctx, &p, descVec); err != nil {
			return loaded, fmt.Errorf("upsert seed poi %s: %w", p.ID(), err)
		}
		loaded++
	}

	l.logger.Info("Seed catalog loaded",
		zap.String("path", path),
		zap.Int("loaded", loaded),
		zap.Int("skipped", len(entries)-loaded),
	)
	return loaded, nil
}
