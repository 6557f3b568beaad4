package client

// POI is a point of interest on the moon surface.
type POI struct {
	ID          string  `json:"id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Location    string  `json:"location,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Type        string  `json:"type"`
	Category    string  `json:"category,omitempty"`
}

// POIPage is one cursor page of POIs.
type POIPage struct {
	Items      []POI  `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// NearbyPOI is a POI with its great-circle distance from the query point.
type NearbyPOI struct {
	POI
	DistanceMeters float64 `json:"distance_meters"`
}

// ScoredPOI is a semantically matched POI.
type ScoredPOI struct {
	POI
	Score float64 `json:"score"`
}

// Vec3 is a world-space vector.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Ray is an explicit world-space pick ray.
type Ray struct {
	Origin    Vec3 `json:"origin"`
	Direction Vec3 `json:"direction"`
}

// Pointer is a pointer position in normalized device coordinates,
// u and v in [-1, 1] with +v up.
type Pointer struct {
	U float64 `json:"u"`
	V float64 `json:"v"`
}

// Camera describes the viewer camera hovering above the surface.
// FOVDeg of zero takes the server default.
type Camera struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Altitude float64 `json:"altitude"`
	FOVDeg   float64 `json:"fov_deg,omitempty"`
	Aspect   float64 `json:"aspect,omitempty"`
}

// GeoCoordinate is a surface position in degrees.
type GeoCoordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PickResult reports where a pick ray met the surface. Hit false means
// the ray missed the globe; Point and Coord are then zero.
type PickResult struct {
	Point struct {
		Position Vec3 `json:"position"`
		Normal   Vec3 `json:"normal"`
	} `json:"point"`
	Coord GeoCoordinate `json:"coord"`
	Hit   bool          `json:"hit"`
}

// MarkerScale is the camera-distance marker sizing calibration.
type MarkerScale struct {
	NearDist float64 `json:"near_dist"`
	NearSize float64 `json:"near_size"`
	FarDist  float64 `json:"far_dist"`
	FarSize  float64 `json:"far_size"`
}

// Scene is the viewer bootstrap calibration.
type Scene struct {
	WorldRadius         float64     `json:"world_radius"`
	SurfaceRadiusMeters float64     `json:"surface_radius_meters"`
	MarkerScale         MarkerScale `json:"marker_scale"`
}

// HealthReport is the server health status.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// --- wire-only request/response shapes ---

type describeRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

type describeResponse struct {
	Items []ScoredPOI `json:"items"`
}

type nearestResponse struct {
	Items []NearbyPOI `json:"items"`
}

type countResponse struct {
	Count int `json:"count"`
}

type pickRequest struct {
	Ray     *Ray     `json:"ray,omitempty"`
	Pointer *Pointer `json:"pointer,omitempty"`
	Camera  *Camera  `json:"camera,omitempty"`
}
