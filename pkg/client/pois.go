package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// POIService manages the point-of-interest catalog.
type POIService struct {
	c *Client
}

// Create stores a new POI. ID is required.
func (s *POIService) Create(ctx context.Context, p POI) (POI, error) {
	var created POI
	err := s.c.do(ctx, http.MethodPost, "/pois", p, &created)
	return created, err
}

// Get returns a POI by id.
func (s *POIService) Get(ctx context.Context, id string) (POI, error) {
	var p POI
	err := s.c.do(ctx, http.MethodGet, "/pois/"+url.PathEscape(id), nil, &p)
	return p, err
}

// Update replaces an existing POI.
func (s *POIService) Update(ctx context.Context, p POI) (POI, error) {
	if p.ID == "" {
		return POI{}, fmt.Errorf("europa: poi id required for update")
	}
	var updated POI
	err := s.c.do(ctx, http.MethodPut, "/pois/"+url.PathEscape(p.ID), p, &updated)
	return updated, err
}

// Delete removes a POI by id.
func (s *POIService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/pois/"+url.PathEscape(id), nil, nil)
}

// List returns one cursor page of the catalog. cursor "" starts from the
// beginning; limit 0 takes the server default.
func (s *POIService) List(ctx context.Context, cursor string, limit int) (POIPage, error) {
	q := url.Values{}
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var page POIPage
	err := s.c.doQuery(ctx, "/pois", q, &page)
	return page, err
}

// Count returns the catalog size.
func (s *POIService) Count(ctx context.Context) (int, error) {
	var resp countResponse
	err := s.c.doQuery(ctx, "/pois/count", nil, &resp)
	return resp.Count, err
}

// Nearest returns up to k POIs closest to the given surface coordinates.
// poiType "" disables the type filter; k 0 takes the server default.
func (s *POIService) Nearest(ctx context.Context, lat, lon float64, k int, poiType string) ([]NearbyPOI, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	if k > 0 {
		q.Set("k", strconv.Itoa(k))
	}
	if poiType != "" {
		q.Set("type", poiType)
	}

	var resp nearestResponse
	err := s.c.doQuery(ctx, "/pois/nearest", q, &resp)
	return resp.Items, err
}
