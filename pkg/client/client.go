// Package client is a small HTTP client for the europad API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client is the europad API client entry point.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("europa: base URL required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o.apply(c)
	}
	return c, nil
}

// Pois returns the point-of-interest service.
func (c *Client) Pois() *POIService {
	return &POIService{c: c}
}

// Describe performs a semantic search over POI descriptions.
func (c *Client) Describe(ctx context.Context, query string, topK int) ([]ScoredPOI, error) {
	var resp describeResponse
	err := c.do(ctx, http.MethodPost, "/search/describe",
		describeRequest{Query: query, TopK: topK}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Pick casts an explicit world-space ray at the globe. A miss is not an
// error; check PickResult.Hit.
func (c *Client) Pick(ctx context.Context, ray Ray) (PickResult, error) {
	var resp PickResult
	err := c.do(ctx, http.MethodPost, "/pick", pickRequest{Ray: &ray}, &resp)
	return resp, err
}

// PickPointer resolves a pointer position (normalized device coordinates,
// +v up) against the globe using a server-built camera.
func (c *Client) PickPointer(ctx context.Context, pointer Pointer, camera Camera) (PickResult, error) {
	var resp PickResult
	err := c.do(ctx, http.MethodPost, "/pick",
		pickRequest{Pointer: &pointer, Camera: &camera}, &resp)
	return resp, err
}

// Scene fetches the viewer calibration: globe radii and marker sizing.
func (c *Client) Scene(ctx context.Context) (Scene, error) {
	var resp Scene
	err := c.do(ctx, http.MethodGet, "/scene", nil, &resp)
	return resp, err
}

// Health reports the server health status.
func (c *Client) Health(ctx context.Context) (HealthReport, error) {
	var resp HealthReport
	err := c.do(ctx, http.MethodGet, "/healthz", nil, &resp)
	return resp, err
}

// do sends one request and decodes the JSON response into out (may be nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("europa: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("europa: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("europa: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("europa: decode response: %w", err)
	}
	return nil
}

func (c *Client) doQuery(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, out)
}
