package describe

import (
	"context"

	"github.com/Maldaris/europa-awareness-map/internal/domain"
	dompoi "github.com/Maldaris/europa-awareness-map/internal/domain/poi"
)

// Repository defines the storage contract for description search.
type Repository interface {
	SimilarByDescription(ctx context.Context, vector []float32, k int) ([]dompoi.Scored, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
