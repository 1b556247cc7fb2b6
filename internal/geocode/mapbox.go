package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultMapboxBaseURL is the production Mapbox Places endpoint.
const DefaultMapboxBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// defaultRequestTimeout bounds a single provider call so a slow upstream
// cannot hold a search request open indefinitely.
const defaultRequestTimeout = 10 * time.Second

// MapboxClient is a Geocoder backed by the Mapbox Places API.
type MapboxClient struct {
	token   string
	baseURL string
	client  *http.Client
}

// MapboxOption configures a MapboxClient.
type MapboxOption func(*MapboxClient)

// WithBaseURL overrides the provider endpoint. Used in tests to point the
// client at a local stub server.
func WithBaseURL(u string) MapboxOption {
	return func(c *MapboxClient) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) MapboxOption {
	return func(c *MapboxClient) { c.client = hc }
}

// NewMapboxClient creates a Mapbox-backed geocoder. The token must be
// non-empty; config validation enforces this before the service starts.
func NewMapboxClient(token string, opts ...MapboxOption) *MapboxClient {
	c := &MapboxClient{
		token:   token,
		baseURL: DefaultMapboxBaseURL,
		client:  &http.Client{Timeout: defaultRequestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// mapboxResponse mirrors the subset of the Mapbox payload we consume.
type mapboxResponse struct {
	Features []struct {
		Center    []float64 `json:"center"` // [lng, lat]
		PlaceName string    `json:"place_name"`
	} `json:"features"`
}

// Resolve queries the Mapbox Places API and returns candidate coordinates,
// best match first. A non-2xx status or malformed payload yields an
// *UpstreamError.
func (c *MapboxClient) Resolve(ctx context.Context, query string, limit int) ([]Coordinates, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	endpoint := c.baseURL + "/" + url.PathEscape(query) + ".json"
	params := url.Values{}
	params.Set("access_token", c.token)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("types", "place,postcode,address")
	params.Set("autocomplete", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocode: build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Provider: "mapbox", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Provider: "mapbox", Status: resp.StatusCode}
	}

	var payload mapboxResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &UpstreamError{Provider: "mapbox", Status: resp.StatusCode, Err: err}
	}

	results := make([]Coordinates, 0, len(payload.Features))
	for _, f := range payload.Features {
		if len(f.Center) < 2 {
			continue
		}
		results = append(results, Coordinates{
			Longitude: f.Center[0],
			Latitude:  f.Center[1],
			Label:     f.PlaceName,
		})
	}

	if len(results) == 0 {
		return nil, ErrNoResults
	}
	return results, nil
}
