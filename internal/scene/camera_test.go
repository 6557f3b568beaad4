package scene

import (
	"math"
	"testing"

	"github.com/Maldaris/europa-awareness-map/pkg/globe"
)

func almost(a, b, eps float64) bool {
	if a > b {
		return a-b < eps
	}
	return b-a < eps
}

func TestCameraAt_LooksAtCenter(t *testing.T) {
	cam := CameraAt(25, -60, 3, 1, 60, 16.0/9)
	want := cam.Position.Scale(-1).Normalize()
	if !almost(cam.Forward.Dot(want), 1, 1e-9) {
		t.Fatalf("forward not toward center: %+v", cam.Forward)
	}
}

func TestCameraAt_OrthonormalBasis(t *testing.T) {
	cam := CameraAt(-40, 120, 2, 1, 45, 1)
	if !almost(cam.Forward.Length(), 1, 1e-9) ||
		!almost(cam.Right.Length(), 1, 1e-9) ||
		!almost(cam.Up.Length(), 1, 1e-9) {
		t.Fatal("basis vectors not unit length")
	}
	if !almost(cam.Forward.Dot(cam.Right), 0, 1e-9) ||
		!almost(cam.Forward.Dot(cam.Up), 0, 1e-9) ||
		!almost(cam.Right.Dot(cam.Up), 0, 1e-9) {
		t.Fatal("basis vectors not orthogonal")
	}
}

func TestCameraAt_PoleFallback(t *testing.T) {
	cam := CameraAt(90, 0, 2, 1, 60, 1)
	if math.IsNaN(cam.Right.X) || math.IsNaN(cam.Up.X) {
		t.Fatal("degenerate basis above the pole")
	}
	if !almost(cam.Right.Length(), 1, 1e-9) {
		t.Fatalf("right not unit length: %f", cam.Right.Length())
	}
}

func TestCameraRay_CenterHitsSubpoint(t *testing.T) {
	// The screen-center ray from a camera above (10, 20) must hit the globe
	// exactly at (10, 20).
	cam := CameraAt(10, 20, 3, 1, 60, 1)
	g := Globe{Radius: 1}

	sp, ok := globe.Intersect(cam.Ray(0, 0), g.Sphere())
	if !ok {
		t.Fatal("expected center ray to hit the globe")
	}
	geo, err := globe.PointToGeo(sp.Position, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almost(geo.Lat, 10, 1e-6) || !almost(geo.Lon, 20, 1e-6) {
		t.Fatalf("want (10,20), got (%f,%f)", geo.Lat, geo.Lon)
	}
}

func TestCameraRay_UnitDirection(t *testing.T) {
	cam := CameraAt(0, 0, 5, 1, 75, 2)
	for _, uv := range [][2]float64{{0, 0}, {1, 1}, {-1, 0.5}, {0.3, -0.9}} {
		ray := cam.Ray(uv[0], uv[1])
		if !almost(ray.Direction.Length(), 1, 1e-9) {
			t.Errorf("ray(%v) direction not unit: %f", uv, ray.Direction.Length())
		}
	}
}

func TestCameraRay_CornerMissesSmallGlobe(t *testing.T) {
	// Far corner of a wide view from high altitude points past the globe.
	cam := CameraAt(0, 0, 20, 1, 60, 16.0/9)
	g := Globe{Radius: 1}
	if _, ok := globe.Intersect(cam.Ray(1, 1), g.Sphere()); ok {
		t.Fatal("expected corner ray to miss")
	}
}
