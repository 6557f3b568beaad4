package poi

// Nearby is a POI with its great-circle distance from a query point.
type Nearby struct {
	POI            POI
	DistanceMeters float64
}

// Scored is a POI with a description-similarity score in [0, 1].
type Scored struct {
	POI   POI
	Score float64
}
