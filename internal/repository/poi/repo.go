// Package poi persists points of interest as JSON documents with an FT
// vector index for surface-proximity and description-similarity queries.
package poi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Maldaris/europa-awareness-map/internal/db"
	"github.com/Maldaris/europa-awareness-map/internal/domain"
	dompoi "github.com/Maldaris/europa-awareness-map/internal/domain/poi"
	"github.com/Maldaris/europa-awareness-map/pkg/globe"
)

// store is the consumer interface for POI persistence (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchList(ctx context.Context, index, query string, offset, limit int, fields []string) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// HNSWConfig tunes the description-vector index.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements the marker and describe use case repositories.
type Repo struct {
	store   store
	descDim int // 0 disables the description vector field
	hnsw    HNSWConfig
}

// New creates a POI repository. descDim is the description embedding
// dimension; pass 0 when semantic search is disabled.
func New(s store, descDim int) *Repo {
	return &Repo{store: s, descDim: descDim}
}

// WithHNSW overrides HNSW tuning for the description vector field.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// EnsureIndex creates the POI FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	b := db.NewIndex(indexName).
		Prefix(keyPrefix).
		Tag("$.type", "type").
		Tag("$.category", "category").
		VectorFlat("$.geovec", "geovec", 3, db.DistanceL2)
	if r.descDim > 0 {
		b = b.VectorHNSW("$.descvec", "descvec", r.descDim, db.DistanceCosine, r.hnsw.M, r.hnsw.EFConstruct)
	}

	def, err := b.Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Insert stores a new POI. Fails with domain.ErrAlreadyExists on a
// duplicate id.
func (r *Repo) Insert(ctx context.Context, p *dompoi.POI, descVec []float32) error {
	key := docKey(p.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if exists {
		return domain.ErrAlreadyExists
	}

	return r.write(ctx, key, p, descVec)
}

// Upsert stores a POI unconditionally (bulk seed path).
func (r *Repo) Upsert(ctx context.Context, p *dompoi.POI, descVec []float32) error {
	return r.write(ctx, docKey(p.ID()), p, descVec)
}

// Update replaces an existing POI. Fails with domain.ErrNotFound when the
// id is unknown.
func (r *Repo) Update(ctx context.Context, p *dompoi.POI, descVec []float32) error {
	key := docKey(p.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	return r.write(ctx, key, p, descVec)
}

func (r *Repo) write(ctx context.Context, key string, p *dompoi.POI, descVec []float32) error {
	data, err := json.Marshal(toDoc(p, descVec))
	if err != nil {
		return fmt.Errorf("marshal poi: %w", err)
	}
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// Get returns a POI by id.
func (r *Repo) Get(ctx context.Context, id string) (dompoi.POI, error) {
	key := docKey(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return dompoi.POI{}, domain.ErrNotFound
		}
		return dompoi.POI{}, fmt.Errorf("json.get %s: %w", key, err)
	}

	doc, err := parseJSONGetResult(raw)
	if err != nil {
		return dompoi.POI{}, err
	}
	return fromDoc(doc), nil
}

// Delete removes a POI by id. Fails with domain.ErrNotFound when absent.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := docKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// List returns POIs with cursor-based pagination.
func (r *Repo) List(ctx context.Context, cursor string, limit int) ([]dompoi.POI, string, error) {
	if limit <= 0 {
		limit = 20
	}

	offset := 0
	if cursor != "" {
		parsed, err := strconv.Atoi(cursor)
		if err != nil || parsed < 0 {
			return nil, "", fmt.Errorf("%w: %q", domain.ErrInvalidCursor, cursor)
		}
		offset = parsed
	}

	fetchCount := limit + 1
	result, err := r.store.SearchList(ctx, indexName, "*", offset, fetchCount, []string{"$"})
	if err != nil {
		return nil, "", fmt.Errorf("search list: %w", err)
	}
	if result == nil || result.Total == 0 {
		return nil, "", nil
	}

	pois := make([]dompoi.POI, 0, limit)
	for i, entry := range result.Entries {
		if i >= limit {
			break
		}
		pois = append(pois, entryToPOI(entry))
	}

	var nextCursor string
	if len(result.Entries) > limit {
		nextCursor = strconv.Itoa(offset + limit)
	}

	return pois, nextCursor, nil
}

// Count returns the number of stored POIs.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, indexName, "*")
	if err != nil {
		return 0, fmt.Errorf("search count: %w", err)
	}
	return n, nil
}

// Nearest returns the k POIs closest to the given surface coordinates,
// optionally restricted to a marker type.
func (r *Repo) Nearest(ctx context.Context, lat, lon float64, k int, poiType string) ([]dompoi.Nearby, error) {
	q := &db.KNNQuery{
		IndexName:    indexName,
		Field:        "geovec",
		Vector:       globe.UnitVector(lat, lon),
		K:            k,
		ReturnFields: []string{"$"},
		RawScores:    true,
	}
	if poiType != "" {
		q.Prefilter = "@type:{" + escapeTag(poiType) + "}"
	}

	result, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn geovec: %w", err)
	}

	nearby := make([]dompoi.Nearby, 0, len(result.Entries))
	for _, entry := range result.Entries {
		// FT.SEARCH reports squared L2 for the L2 metric.
		chord := math.Sqrt(math.Max(0, entry.Score))
		nearby = append(nearby, dompoi.Nearby{
			POI:            entryToPOI(entry),
			DistanceMeters: globe.L2ToArcMeters(chord),
		})
	}
	return nearby, nil
}

// SimilarByDescription returns the k POIs whose description embeddings are
// closest to the given query vector.
func (r *Repo) SimilarByDescription(ctx context.Context, vector []float32, k int) ([]dompoi.Scored, error) {
	result, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    indexName,
		Field:        "descvec",
		Vector:       vector,
		K:            k,
		ReturnFields: []string{"$"},
	})
	if err != nil {
		return nil, fmt.Errorf("search knn descvec: %w", err)
	}

	scored := make([]dompoi.Scored, 0, len(result.Entries))
	for _, entry := range result.Entries {
		scored = append(scored, dompoi.Scored{POI: entryToPOI(entry), Score: entry.Score})
	}
	return scored, nil
}

func entryToPOI(entry db.SearchEntry) dompoi.POI {
	id := extractID(entry.Key)
	jsonStr := entry.Fields["$"]
	if jsonStr == "" {
		return dompoi.Reconstruct(id, "", "", "", 0, 0, "", "")
	}
	var d poiDoc
	if err := json.Unmarshal([]byte(jsonStr), &d); err != nil {
		return dompoi.Reconstruct(id, "", "", "", 0, 0, "", "")
	}
	if d.ID == "" {
		d.ID = id
	}
	return fromDoc(d)
}

// escapeTag escapes characters with query syntax meaning inside TAG filters.
func escapeTag(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ',', '.', '<', '>', '{', '}', '[', ']', '"', '\'', ':', ';',
			'!', '@', '#', '$', '%', '^', '&', '*', '(', ')', '-', '+',
			'=', '~', '|', ' ', '/', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
