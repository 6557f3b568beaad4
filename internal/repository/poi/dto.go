package poi

import (
	"encoding/json"
	"fmt"

	"github.com/Maldaris/europa-awareness-map/internal/domain"
	dompoi "github.com/Maldaris/europa-awareness-map/internal/domain/poi"
	"github.com/Maldaris/europa-awareness-map/pkg/globe"
)

// keyPrefix namespaces POI document keys.
const keyPrefix = domain.KeyPrefix + "poi:"

// indexName is the FT index over POI documents.
const indexName = domain.KeyPrefix + "poi_idx"

// poiDoc is the JSON storage shape of a POI. geovec is the unit-sphere
// position used for nearest-neighbor queries; descvec is the optional
// description embedding.
type poiDoc struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Type        string    `json:"type"`
	Category    string    `json:"category,omitempty"`
	GeoVec      []float32 `json:"geovec"`
	DescVec     []float32 `json:"descvec,omitempty"`
}

func docKey(id string) string {
	return keyPrefix + id
}

func extractID(key string) string {
	if len(key) > len(keyPrefix) && key[:len(keyPrefix)] == keyPrefix {
		return key[len(keyPrefix):]
	}
	return key
}

func toDoc(p *dompoi.POI, descVec []float32) poiDoc {
	return poiDoc{
		ID:          p.ID(),
		Title:       p.Title(),
		Description: p.Description(),
		Location:    p.Location(),
		Lat:         p.Lat(),
		Lon:         p.Lon(),
		Type:        p.Type(),
		Category:    p.Category(),
		GeoVec:      globe.UnitVector(p.Lat(), p.Lon()),
		DescVec:     descVec,
	}
}

func fromDoc(d poiDoc) dompoi.POI {
	return dompoi.Reconstruct(
		d.ID, d.Title, d.Description, d.Location, d.Lat, d.Lon, d.Type, d.Category,
	)
}

// parseJSONGetResult decodes a JSON.GET "$" response, which wraps the
// document in a one-element array.
func parseJSONGetResult(raw []byte) (poiDoc, error) {
	var docs []poiDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		// Some server versions return the bare object for a single path.
		var d poiDoc
		if err2 := json.Unmarshal(raw, &d); err2 == nil {
			return d, nil
		}
		return poiDoc{}, fmt.Errorf("decode poi document: %w", err)
	}
	if len(docs) == 0 {
		return poiDoc{}, fmt.Errorf("empty json.get result")
	}
	return docs[0], nil
}
