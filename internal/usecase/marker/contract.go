package marker

import (
	"context"

	"github.com/Maldaris/europa-awareness-map/internal/domain"
	dompoi "github.com/Maldaris/europa-awareness-map/internal/domain/poi"
)

// Repository defines the storage contract for points of interest.
type Repository interface {
	Insert(ctx context.Context, p *dompoi.POI, descVec []float32) error
	Update(ctx context.Context, p *dompoi.POI, descVec []float32) error
	Get(ctx context.Context, id string) (dompoi.POI, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, cursor string, limit int) (pois []dompoi.POI, nextCursor string, err error)
	Count(ctx context.Context) (int, error)
	Nearest(ctx context.Context, lat, lon float64, k int, poiType string) ([]dompoi.Nearby, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
