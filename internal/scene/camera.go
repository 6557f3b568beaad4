// Package scene holds the rendering-side collaborators of the geometry core:
// the pinhole camera that turns normalized pointer coordinates into world
// rays, and the globe snapshot handed to each pick query.
package scene

import (
	"math"

	"github.com/Maldaris/europa-awareness-map/pkg/globe"
)

// Camera models a pinhole camera looking at the globe.
type Camera struct {
	Position   globe.Vec3
	Forward    globe.Vec3
	Right      globe.Vec3
	Up         globe.Vec3
	TanHalfFOV float64
	Aspect     float64
}

// CameraAt constructs a camera hovering above the given surface coordinates,
// with altitude in world units above a globe of the given radius, looking at
// the globe center. fovDeg is the vertical field of view; aspect is
// width/height.
func CameraAt(lat, lon, altitude, radius, fovDeg, aspect float64) Camera {
	pos := globe.GeoToPoint(lat, lon, radius+altitude)
	fwd := pos.Scale(-1).Normalize() // toward globe center

	worldUp := globe.Vec3{Y: 1} // polar axis
	right := fwd.Cross(worldUp)
	if right.Length() < 1e-6 {
		// Looking straight down a pole: any horizontal axis works.
		right = globe.Vec3{X: 1}
	}
	right = right.Normalize()
	up := right.Cross(fwd).Normalize()

	if aspect <= 0 {
		aspect = 1
	}

	return Camera{
		Position:   pos,
		Forward:    fwd,
		Right:      right,
		Up:         up,
		TanHalfFOV: math.Tan(fovDeg * math.Pi / 360),
		Aspect:     aspect,
	}
}

// Ray maps normalized device coordinates (u, v in [-1, 1], +v up) to a
// world-space ray with unit direction. How u and v are derived from raw
// pointer pixels is the presentation layer's concern.
func (c Camera) Ray(u, v float64) globe.Ray {
	dir := c.Forward.
		Add(c.Right.Scale(u * c.TanHalfFOV * c.Aspect)).
		Add(c.Up.Scale(v * c.TanHalfFOV)).
		Normalize()
	return globe.Ray{Origin: c.Position, Direction: dir}
}

// Globe is the sphere snapshot used for pick queries. Each query reads one
// consistent snapshot; animation between frames is the caller's concern.
type Globe struct {
	Center globe.Vec3
	Radius float64
}

// Sphere returns the snapshot as an intersection query input.
func (g Globe) Sphere() globe.Sphere {
	return globe.Sphere{Center: g.Center, Radius: g.Radius}
}
