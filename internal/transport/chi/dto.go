package chi

// Error response codes returned to clients.
const (
	codeBadRequest             = "bad_request"
	codeValidationFailed       = "validation_failed"
	codePOINotFound            = "poi_not_found"
	codePOIAlreadyExists       = "poi_already_exists"
	codeRateLimited            = "rate_limited"
	codeSemanticSearchDisabled = "semantic_search_disabled"
	codeEmbeddingProviderError = "embedding_provider_error"
	codeInternalError          = "internal_error"
)

// errorResponse is the uniform error payload.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// poiRequest is the write payload for POI create and update.
type poiRequest struct {
	ID          string  `json:"id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Location    string  `json:"location,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Type        string  `json:"type"`
	Category    string  `json:"category,omitempty"`
}

// poiResponse is the read payload for a single POI.
type poiResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Location    string  `json:"location,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Type        string  `json:"type"`
	Category    string  `json:"category,omitempty"`
}

// poiListResponse is a cursor-paginated POI page.
type poiListResponse struct {
	Items      []poiResponse `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
	HasMore    bool          `json:"has_more"`
}

// countResponse reports the catalog size.
type countResponse struct {
	Count int `json:"count"`
}

// nearbyResponse is a POI with its surface distance from the query point.
type nearbyResponse struct {
	poiResponse
	DistanceMeters float64 `json:"distance_meters"`
}

// nearestResponse is the payload for GET /pois/nearest.
type nearestResponse struct {
	Items []nearbyResponse `json:"items"`
}

// describeRequest is the semantic search payload.
type describeRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

// describeResultItem is a semantically matched POI.
type describeResultItem struct {
	poiResponse
	Score float64 `json:"score"`
}

// describeResponse is the payload for POST /search/describe.
type describeResponse struct {
	Items []describeResultItem `json:"items"`
}

// vec3DTO is a world-space vector.
type vec3DTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// rayDTO is an explicit world-space pick ray.
type rayDTO struct {
	Origin    vec3DTO `json:"origin"`
	Direction vec3DTO `json:"direction"`
}

// pointerDTO is a pointer position in normalized device coordinates,
// u and v in [-1, 1] with +v up.
type pointerDTO struct {
	U float64 `json:"u"`
	V float64 `json:"v"`
}

// cameraDTO describes the client camera hovering above the surface.
type cameraDTO struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Altitude float64 `json:"altitude"`
	FOVDeg   float64 `json:"fov_deg"`
	Aspect   float64 `json:"aspect,omitempty"`
}

// pickRequest carries either an explicit ray or a pointer plus camera.
type pickRequest struct {
	Ray     *rayDTO     `json:"ray,omitempty"`
	Pointer *pointerDTO `json:"pointer,omitempty"`
	Camera  *cameraDTO  `json:"camera,omitempty"`
}

// markerScaleDTO is the camera-distance marker sizing calibration.
type markerScaleDTO struct {
	NearDist float64 `json:"near_dist"`
	NearSize float64 `json:"near_size"`
	FarDist  float64 `json:"far_dist"`
	FarSize  float64 `json:"far_size"`
}

// sceneResponse is the payload for GET /scene.
type sceneResponse struct {
	WorldRadius         float64        `json:"world_radius"`
	SurfaceRadiusMeters float64        `json:"surface_radius_meters"`
	MarkerScale         markerScaleDTO `json:"marker_scale"`
}

// healthResponse is the payload for GET /healthz.
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
