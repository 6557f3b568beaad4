// Package chi exposes the globe viewer API over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Maldaris/europa-awareness-map/internal/domain"
	dompoi "github.com/Maldaris/europa-awareness-map/internal/domain/poi"
	"github.com/Maldaris/europa-awareness-map/internal/metrics"
	"github.com/Maldaris/europa-awareness-map/internal/scene"
	describeuc "github.com/Maldaris/europa-awareness-map/internal/usecase/describe"
	healthuc "github.com/Maldaris/europa-awareness-map/internal/usecase/health"
	markeruc "github.com/Maldaris/europa-awareness-map/internal/usecase/marker"
	pickeruc "github.com/Maldaris/europa-awareness-map/internal/usecase/picker"
	"github.com/Maldaris/europa-awareness-map/pkg/globe"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the use case services to HTTP routes.
type Server struct {
	markers             *markeruc.Service
	describe            *describeuc.Service
	picker              *pickeruc.Throttled
	health              *healthuc.Service
	globe               scene.Globe
	surfaceRadiusMeters float64
	markerScale         globe.ScaleRange
	defaultFOVDeg       float64
	logger              *zap.Logger
	errorHandlers       []errorHandler
}

// NewServer creates an HTTP API server. g is the world-space globe used to
// build cameras for pointer picks.
func NewServer(
	markers *markeruc.Service,
	describe *describeuc.Service,
	picker *pickeruc.Throttled,
	health *healthuc.Service,
	g scene.Globe,
	logger *zap.Logger,
) *Server {
	s := &Server{
		markers:             markers,
		describe:            describe,
		picker:              picker,
		health:              health,
		globe:               g,
		surfaceRadiusMeters: globe.EuropaRadiusMeters,
		markerScale:         globe.DefaultScaleRange(),
		defaultFOVDeg:       60,
		logger:              logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codePOINotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, codePOIAlreadyExists),
		sentinelHandler(domain.ErrInvalidPOI, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidCursor, http.StatusBadRequest, codeBadRequest),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeBadRequest),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
		sentinelHandler(domain.ErrSemanticSearchDisabled, http.StatusNotImplemented, codeSemanticSearchDisabled),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProviderError),
	}
	return s
}

// WithScene overrides the viewer calibration served by GET /scene.
func (s *Server) WithScene(surfaceRadiusMeters float64, markerScale globe.ScaleRange) *Server {
	s.surfaceRadiusMeters = surfaceRadiusMeters
	s.markerScale = markerScale
	return s
}

// Routes registers all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
	r.Get("/scene", s.handleScene)

	r.Route("/pois", func(r chi.Router) {
		r.Post("/", s.handleCreatePOI)
		r.Get("/", s.handleListPOIs)
		r.Get("/count", s.handleCountPOIs)
		r.Get("/nearest", s.handleNearestPOIs)
		r.Get("/{id}", s.handleGetPOI)
		r.Put("/{id}", s.handleUpdatePOI)
		r.Delete("/{id}", s.handleDeletePOI)
	})

	r.Post("/search/describe", s.handleDescribe)
	r.Post("/pick", s.handlePick)
}

// handleCreatePOI handles POST /pois.
func (s *Server) handleCreatePOI(w http.ResponseWriter, r *http.Request) {
	var req poiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := poiFromRequest(req.ID, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	if err := s.markers.Create(r.Context(), &p); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, poiToResponse(p))
}

// handleGetPOI handles GET /pois/{id}.
func (s *Server) handleGetPOI(w http.ResponseWriter, r *http.Request) {
	p, err := s.markers.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, poiToResponse(p))
}

// handleUpdatePOI handles PUT /pois/{id}.
func (s *Server) handleUpdatePOI(w http.ResponseWriter, r *http.Request) {
	var req poiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if req.ID != "" && req.ID != id {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "body id does not match path id")
		return
	}

	p, err := poiFromRequest(id, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	if err := s.markers.Update(r.Context(), &p); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, poiToResponse(p))
}

// handleDeletePOI handles DELETE /pois/{id}.
func (s *Server) handleDeletePOI(w http.ResponseWriter, r *http.Request) {
	if err := s.markers.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListPOIs handles GET /pois.
func (s *Server) handleListPOIs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, codeBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	pois, nextCursor, err := s.markers.List(r.Context(), r.URL.Query().Get("cursor"), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]poiResponse, len(pois))
	for i := range pois {
		items[i] = poiToResponse(pois[i])
	}

	writeJSON(w, http.StatusOK, poiListResponse{
		Items:      items,
		NextCursor: nextCursor,
		HasMore:    nextCursor != "",
	})
}

// handleCountPOIs handles GET /pois/count.
func (s *Server) handleCountPOIs(w http.ResponseWriter, r *http.Request) {
	n, err := s.markers.Count(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// handleNearestPOIs handles GET /pois/nearest.
func (s *Server) handleNearestPOIs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "lat must be a number")
		return
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "lon must be a number")
		return
	}

	k := 0
	if raw := q.Get("k"); raw != "" {
		k, err = strconv.Atoi(raw)
		if err != nil || k <= 0 {
			writeError(w, http.StatusBadRequest, codeBadRequest, "k must be a positive integer")
			return
		}
	}

	nearby, err := s.markers.Nearest(r.Context(), lat, lon, k, q.Get("type"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]nearbyResponse, len(nearby))
	for i, n := range nearby {
		items[i] = nearbyResponse{
			poiResponse:    poiToResponse(n.POI),
			DistanceMeters: n.DistanceMeters,
		}
	}

	writeJSON(w, http.StatusOK, nearestResponse{Items: items})
}

// handleDescribe handles POST /search/describe.
func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	var req describeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	scored, err := s.describe.Search(r.Context(), req.Query, req.TopK)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]describeResultItem, len(scored))
	for i, sc := range scored {
		items[i] = describeResultItem{
			poiResponse: poiToResponse(sc.POI),
			Score:       sc.Score,
		}
	}

	writeJSON(w, http.StatusOK, describeResponse{Items: items})
}

// handlePick handles POST /pick. A ray that misses the globe is a normal
// 200 response with hit=false.
func (s *Server) handlePick(w http.ResponseWriter, r *http.Request) {
	var req pickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var result pickeruc.Result
	var err error

	switch {
	case req.Ray != nil:
		ray := globe.Ray{
			Origin:    globe.Vec3{X: req.Ray.Origin.X, Y: req.Ray.Origin.Y, Z: req.Ray.Origin.Z},
			Direction: globe.Vec3{X: req.Ray.Direction.X, Y: req.Ray.Direction.Y, Z: req.Ray.Direction.Z},
		}
		if ray.Direction.IsZero() {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "ray direction must be non-zero")
			return
		}
		result, err = s.picker.Pick(ray)
	case req.Pointer != nil && req.Camera != nil:
		fov := req.Camera.FOVDeg
		if fov <= 0 {
			fov = s.defaultFOVDeg
		}
		cam := scene.CameraAt(
			req.Camera.Lat, req.Camera.Lon, req.Camera.Altitude,
			s.globe.Radius, fov, req.Camera.Aspect,
		)
		result, err = s.picker.PickPointer(cam, req.Pointer.U, req.Pointer.V)
	default:
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"request must carry a ray or a pointer with camera")
		return
	}

	if err != nil {
		metrics.PicksTotal.WithLabelValues("throttled").Inc()
		s.handleDomainError(w, err)
		return
	}

	if result.Hit {
		metrics.PicksTotal.WithLabelValues("hit").Inc()
	} else {
		metrics.PicksTotal.WithLabelValues("miss").Inc()
	}

	writeJSON(w, http.StatusOK, result)
}

// handleScene handles GET /scene: the calibration a viewer needs before its
// first frame.
func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, sceneResponse{
		WorldRadius:         s.globe.Radius,
		SurfaceRadiusMeters: s.surfaceRadiusMeters,
		MarkerScale: markerScaleDTO{
			NearDist: s.markerScale.NearDist,
			NearSize: s.markerScale.NearSize,
			FarDist:  s.markerScale.FarDist,
			FarSize:  s.markerScale.FarSize,
		},
	})
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// handleMetrics handles GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func poiFromRequest(id string, req poiRequest) (dompoi.POI, error) {
	return dompoi.New(
		id, req.Title, req.Description, req.Location,
		req.Lat, req.Lon, req.Type, req.Category,
	)
}

func poiToResponse(p dompoi.POI) poiResponse {
	return poiResponse{
		ID:          p.ID(),
		Title:       p.Title(),
		Description: p.Description(),
		Location:    p.Location(),
		Lat:         p.Lat(),
		Lon:         p.Lon(),
		Type:        p.Type(),
		Category:    p.Category(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrInvalidPOI,
		domain.ErrInvalidCursor,
		domain.ErrInvalidQuery,
		domain.ErrRateLimited,
		domain.ErrSemanticSearchDisabled,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
