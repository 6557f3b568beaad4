// Package globe implements the coordinate geometry for a spherical moon map:
// conversion between geographic coordinates and Cartesian surface points, and
// ray-sphere intersection for pointer picking.
//
// Conventions: the +Y axis is the polar axis (positive latitude is north),
// longitude 0 lies on the +X axis, and increasing longitude rotates toward +Z.
// Longitudes are normalized into the half-open range (-180, 180].
package globe

import (
	"errors"
	"math"
)

// EuropaRadiusMeters is the mean radius of Europa.
const EuropaRadiusMeters = 1_560_800.0

// poleEpsilonDeg is the latitude band (degrees) around the poles inside
// which longitude is considered undefined and forced to zero.
const poleEpsilonDeg = 1e-10

// ErrDegenerateInput is returned when a conversion receives a zero-length
// vector whose direction is undefined.
var ErrDegenerateInput = errors.New("globe: zero-length vector")

// GeoCoordinate is a point on the moon's surface in degrees.
// Lat is in [-90, 90]; Lon is normalized into (-180, 180].
type GeoCoordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GeoToPoint converts geographic coordinates (degrees) to a Cartesian point
// on a sphere of the given radius centered at the origin. Any finite input
// produces a finite point; longitude is interpreted modulo 360.
func GeoToPoint(lat, lon, radius float64) Vec3 {
	latRad := lat * math.Pi / 180
	lonRad := lon * math.Pi / 180
	return Vec3{
		X: radius * math.Cos(latRad) * math.Cos(lonRad),
		Y: radius * math.Sin(latRad),
		Z: radius * math.Cos(latRad) * math.Sin(lonRad),
	}
}

// PointToGeo converts a Cartesian point to geographic coordinates. The point
// need not lie on the sphere: it is normalized first, so latitude and
// longitude are direction-only quantities and radius is accepted purely for
// interface symmetry. Returns ErrDegenerateInput for a zero-length point.
//
// Within poleEpsilonDeg of either pole the longitude is forced to 0, since
// any other value there is a rounding artifact rather than data.
func PointToGeo(p Vec3, _ float64) (GeoCoordinate, error) {
	if p.IsZero() {
		return GeoCoordinate{}, ErrDegenerateInput
	}
	u := p.Normalize()

	y := u.Y
	if y > 1 {
		y = 1
	} else if y < -1 {
		y = -1
	}
	lat := math.Asin(y) * 180 / math.Pi

	if 90-math.Abs(lat) < poleEpsilonDeg {
		return GeoCoordinate{Lat: lat, Lon: 0}, nil
	}

	lon := math.Atan2(u.Z, u.X) * 180 / math.Pi
	return GeoCoordinate{Lat: lat, Lon: WrapLongitude(lon)}, nil
}

// WrapLongitude normalizes a longitude in degrees into (-180, 180].
func WrapLongitude(lon float64) float64 {
	m := math.Mod(lon, 360)
	if m <= -180 {
		m += 360
	} else if m > 180 {
		m -= 360
	}
	return m
}

// ValidLatLon reports whether lat is in [-90, 90] and lon in [-180, 180].
func ValidLatLon(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Haversine returns the great-circle distance in meters between two surface
// points given by latitude and longitude in degrees, on a sphere of Europa's
// radius.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EuropaRadiusMeters * c
}

// L2ToArcMeters converts an L2 distance between two unit-sphere position
// vectors to great-circle surface meters. Uses the chord-angle identity
// L2^2 = 2*(1 - cos(angle)), so angle = 2*arcsin(L2/2).
func L2ToArcMeters(l2dist float64) float64 {
	half := l2dist / 2
	if half > 1 {
		half = 1
	}
	return EuropaRadiusMeters * 2 * math.Asin(half)
}

// UnitVector returns the unit-sphere position for the given coordinates as a
// float32 slice suitable for KNN vector storage.
func UnitVector(lat, lon float64) []float32 {
	p := GeoToPoint(lat, lon, 1)
	return []float32{float32(p.X), float32(p.Y), float32(p.Z)}
}
