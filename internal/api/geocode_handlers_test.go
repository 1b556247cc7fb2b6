package api

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/petbnb/petbnb/internal/geocode"
)

func doGeocode(t *testing.T, h *GeocodeHandlers, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.Geocode(rec, req)
	return rec
}

func TestGeocodeHandler(t *testing.T) {
	exact := geocode.Coordinates{Latitude: 47.6097, Longitude: -122.3422, Label: "Pike Place Market, Seattle, WA"}
	h := NewGeocodeHandlers(staticGeocoder{result: exact}, nil)

	rec := doGeocode(t, h, "/api/geocode?q=Pike+Place")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}

	var resp GeocodeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || len(resp.Results) != 1 {
		t.Fatalf("Count = %d, Results = %d, want 1", resp.Count, len(resp.Results))
	}

	// The privacy offset must move the point, but not far.
	got := resp.Results[0]
	if got.Latitude == exact.Latitude && got.Longitude == exact.Longitude {
		t.Error("returned coordinate is the exact provider point; privacy offset missing")
	}
	if math.Abs(got.Latitude-exact.Latitude) > 0.01 || math.Abs(got.Longitude-exact.Longitude) > 0.01 {
		t.Errorf("offset coordinate (%v, %v) too far from (%v, %v)",
			got.Latitude, got.Longitude, exact.Latitude, exact.Longitude)
	}
	if got.Label != exact.Label {
		t.Errorf("label = %q, want %q", got.Label, exact.Label)
	}
}

func TestGeocodeHandlerValidation(t *testing.T) {
	h := NewGeocodeHandlers(staticGeocoder{}, nil)

	tests := []struct {
		name   string
		target string
	}{
		{"missing query", "/api/geocode"},
		{"query too short", "/api/geocode?q=a"},
		{"whitespace-only query", "/api/geocode?q=++"},
		{"non-numeric limit", "/api/geocode?q=Seattle&limit=many"},
		{"limit too large", "/api/geocode?q=Seattle&limit=50"},
		{"limit below one", "/api/geocode?q=Seattle&limit=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGeocode(t, h, tt.target)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp.Error.Code != ErrCodeValidation {
				t.Errorf("error code = %q, want %q", resp.Error.Code, ErrCodeValidation)
			}
		})
	}
}

func TestGeocodeHandlerNoResults(t *testing.T) {
	h := NewGeocodeHandlers(staticGeocoder{err: geocode.ErrNoResults}, nil)

	rec := doGeocode(t, h, "/api/geocode?q=nowhere+at+all")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with empty results", rec.Code)
	}
	var resp GeocodeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 0 || resp.Results == nil {
		t.Errorf("resp = %+v, want count 0 with empty array", resp)
	}
}

func TestGeocodeHandlerUpstreamError(t *testing.T) {
	h := NewGeocodeHandlers(staticGeocoder{err: &geocode.UpstreamError{Provider: "mapbox", Status: http.StatusTooManyRequests}}, nil)

	rec := doGeocode(t, h, "/api/geocode?q=Seattle")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502; body: %s", rec.Code, rec.Body)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error.Code != ErrCodeUpstream {
		t.Errorf("error code = %q, want %q", resp.Error.Code, ErrCodeUpstream)
	}
}
