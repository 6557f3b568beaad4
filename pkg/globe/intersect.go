package globe

import "math"

// Ray is a half-line with an origin and a unit direction. Produced by the
// camera layer; never mutated here. A near-zero direction is a caller
// contract violation.
type Ray struct {
	Origin    Vec3 `json:"origin"`
	Direction Vec3 `json:"direction"`
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Sphere is an immutable snapshot of the globe for one intersection query.
type Sphere struct {
	Center Vec3    `json:"center"`
	Radius float64 `json:"radius"`
}

// SurfacePoint is a point on the sphere with its outward unit normal.
// Position lies exactly on the sphere: Center + Normal*Radius.
type SurfacePoint struct {
	Position Vec3 `json:"position"`
	Normal   Vec3 `json:"normal"`
}

// Intersect computes the closest valid forward intersection of ray and
// sphere. The second return value is false when the ray misses the sphere or
// the sphere lies entirely behind the ray origin; a miss is an expected
// outcome, not an error.
//
// Root selection: with both quadratic roots positive the ray origin is
// outside the sphere and the near root is the point visibly under the
// pointer; with exactly one positive root the origin is inside the sphere
// and the positive root is the exit point; with neither positive there is no
// forward intersection.
func Intersect(ray Ray, sphere Sphere) (SurfacePoint, bool) {
	oc := ray.Origin.Sub(sphere.Center)

	// Quadratic at² + bt + c = 0. The direction is squared explicitly
	// rather than assumed unit length.
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - sphere.Radius*sphere.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return SurfacePoint{}, false
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)

	var t float64
	switch {
	case t1 > 0 && t2 > 0:
		t = math.Min(t1, t2)
	case t1 > 0:
		t = t1
	case t2 > 0:
		t = t2
	default:
		return SurfacePoint{}, false
	}

	normal := ray.At(t).Sub(sphere.Center).Normalize()
	// Snap onto the exact surface to remove residual drift from the solve.
	position := sphere.Center.Add(normal.Scale(sphere.Radius))

	return SurfacePoint{Position: position, Normal: normal}, true
}
