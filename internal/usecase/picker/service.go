// Package picker resolves pointer rays against the globe surface and
// reports the selected coordinate.
package picker

import (
	"github.com/Maldaris/europa-awareness-map/internal/scene"
	"github.com/Maldaris/europa-awareness-map/pkg/globe"
)

// Result is the outcome of a pick. When Hit is false the point and
// coordinate are zero values; a ray that misses the globe is a normal
// outcome, not an error.
type Result struct {
	Point globe.SurfacePoint  `json:"point"`
	Coord globe.GeoCoordinate `json:"coord"`
	Hit   bool                `json:"hit"`
}

// SelectionListener is invoked on every successful pick. It replaces a
// global event channel: the interested party registers at construction
// and the picker stays free of shared state.
type SelectionListener func(Result)

// Service performs surface picking against a fixed globe.
type Service struct {
	globe    scene.Globe
	listener SelectionListener
}

// New creates a picker. listener may be nil.
func New(g scene.Globe, listener SelectionListener) *Service {
	return &Service{globe: g, listener: listener}
}

// Pick intersects a world-space ray with the globe and converts the hit
// point to geographic coordinates.
func (s *Service) Pick(ray globe.Ray) Result {
	sp, ok := globe.Intersect(ray, s.globe.Sphere())
	if !ok {
		return Result{}
	}

	rel := sp.Position.Sub(s.globe.Center)
	coord, err := globe.PointToGeo(rel, s.globe.Radius)
	if err != nil {
		return Result{}
	}

	result := Result{
		Point: sp,
		Coord: coord,
		Hit:   true,
	}
	if s.listener != nil {
		s.listener(result)
	}
	return result
}

// PickPointer casts a ray through normalized device coordinates of the
// given camera and picks with it. u and v are in [-1, 1] with v pointing
// up.
func (s *Service) PickPointer(cam scene.Camera, u, v float64) Result {
	return s.Pick(cam.Ray(u, v))
}
