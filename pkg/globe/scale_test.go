package globe

import "testing"

func TestScale_Interpolates(t *testing.T) {
	s := ScaleRange{NearDist: 1, NearSize: 0.01, FarDist: 5, FarSize: 0.05}
	if got := s.Scale(3); !almost(got, 0.03, 1e-12) {
		t.Errorf("midpoint: got %f", got)
	}
}

func TestScale_ClampsBelow(t *testing.T) {
	s := DefaultScaleRange()
	if got := s.Scale(0); got != s.NearSize {
		t.Errorf("below near: got %f, want %f", got, s.NearSize)
	}
}

func TestScale_ClampsAbove(t *testing.T) {
	s := DefaultScaleRange()
	if got := s.Scale(1e6); got != s.FarSize {
		t.Errorf("beyond far: got %f, want %f", got, s.FarSize)
	}
}

func TestScale_DegenerateRange(t *testing.T) {
	s := ScaleRange{NearDist: 2, NearSize: 0.02, FarDist: 2, FarSize: 0.04}
	if got := s.Scale(2); got != 0.02 {
		t.Errorf("degenerate range: got %f", got)
	}
}
