package globe

// ScaleRange calibrates marker sizing against camera distance: markers shrink
// linearly from NearSize at NearDist down to FarSize at FarDist, clamped at
// both ends. Stateless; call per frame instead of storing derived size.
type ScaleRange struct {
	NearDist float64
	NearSize float64
	FarDist  float64
	FarSize  float64
}

// DefaultScaleRange is tuned for a camera orbiting between ~1.2 and ~5 radii
// of a unit globe.
func DefaultScaleRange() ScaleRange {
	return ScaleRange{NearDist: 1.2, NearSize: 0.012, FarDist: 5, FarSize: 0.05}
}

// Scale returns the marker size for the given camera distance.
func (s ScaleRange) Scale(distance float64) float64 {
	if s.FarDist == s.NearDist {
		return s.NearSize
	}
	t := (distance - s.NearDist) / (s.FarDist - s.NearDist)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return s.NearSize + t*(s.FarSize-s.NearSize)
}
