// Package poi defines the point-of-interest aggregate: a labeled location on
// the moon's surface addressed by latitude and longitude.
package poi

import (
	"fmt"
	"regexp"

	"github.com/Maldaris/europa-awareness-map/internal/domain"
	"github.com/Maldaris/europa-awareness-map/pkg/globe"
)

var (
	idRegex     = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	reservedIDs = map[string]bool{"nearest": true, "count": true}
)

// MaxTitleLen bounds the POI title length in bytes.
const MaxTitleLen = 256

// MaxDescriptionLen bounds the POI description length in bytes.
const MaxDescriptionLen = 8192

// POI is the point-of-interest aggregate (immutable value object). POIs are
// loaded in bulk at startup, appended to at runtime when a user confirms a
// marker, and removed only by explicit action.
type POI struct {
	id          string
	title       string
	description string
	location    string
	lat         float64
	lon         float64
	poiType     string
	category    string
}

// New validates and creates a POI.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars, not reserved. Title and type are
// required. Out-of-range coordinates are rejected, never wrapped or clamped.
func New(id, title, description, location string, lat, lon float64, poiType, category string) (POI, error) {
	if id == "" {
		return POI{}, fmt.Errorf("poi ID is required: %w", domain.ErrInvalidPOI)
	}
	if len(id) > 256 {
		return POI{}, fmt.Errorf("poi ID too long (max 256): %w", domain.ErrInvalidPOI)
	}
	if !idRegex.MatchString(id) {
		return POI{}, fmt.Errorf("poi ID must be alphanumeric with underscores and hyphens: %w", domain.ErrInvalidPOI)
	}
	if reservedIDs[id] {
		return POI{}, fmt.Errorf("poi ID %q is reserved: %w", id, domain.ErrInvalidPOI)
	}
	if title == "" {
		return POI{}, fmt.Errorf("title is required: %w", domain.ErrInvalidPOI)
	}
	if len(title) > MaxTitleLen {
		return POI{}, fmt.Errorf("title too long (max %d bytes): %w", MaxTitleLen, domain.ErrInvalidPOI)
	}
	if len(description) > MaxDescriptionLen {
		return POI{}, fmt.Errorf("description too long (max %d bytes): %w", MaxDescriptionLen, domain.ErrInvalidPOI)
	}
	if poiType == "" {
		return POI{}, fmt.Errorf("type is required: %w", domain.ErrInvalidPOI)
	}
	if !globe.ValidLatLon(lat, lon) {
		return POI{}, fmt.Errorf("coordinates out of range: lat=%f lon=%f: %w", lat, lon, domain.ErrInvalidPOI)
	}

	return POI{
		id:          id,
		title:       title,
		description: description,
		location:    location,
		lat:         lat,
		lon:         lon,
		poiType:     poiType,
		category:    category,
	}, nil
}

// Reconstruct creates a POI without validation (storage hydration).
func Reconstruct(id, title, description, location string, lat, lon float64, poiType, category string) POI {
	return POI{
		id: id, title: title, description: description, location: location,
		lat: lat, lon: lon, poiType: poiType, category: category,
	}
}

// ID returns the POI identifier.
func (p *POI) ID() string { return p.id }

// Title returns the display title.
func (p *POI) Title() string { return p.title }

// Description returns the free-form description.
func (p *POI) Description() string { return p.description }

// Location returns the human-readable location name.
func (p *POI) Location() string { return p.location }

// Lat returns the latitude in degrees.
func (p *POI) Lat() float64 { return p.lat }

// Lon returns the longitude in degrees.
func (p *POI) Lon() float64 { return p.lon }

// Type returns the marker type.
func (p *POI) Type() string { return p.poiType }

// Category returns the optional category.
func (p *POI) Category() string { return p.category }

// SurfacePosition returns the POI's display position on a globe of the given
// radius.
func (p *POI) SurfacePosition(radius float64) globe.Vec3 {
	return globe.GeoToPoint(p.lat, p.lon, radius)
}
