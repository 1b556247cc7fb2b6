package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/petbnb/petbnb/internal/geocode"
	"github.com/petbnb/petbnb/internal/sitter"
)

// staticGeocoder resolves every query to a fixed point.
type staticGeocoder struct {
	result geocode.Coordinates
	err    error
}

func (g staticGeocoder) Resolve(context.Context, string, int) ([]geocode.Coordinates, error) {
	if g.err != nil {
		return nil, g.err
	}
	return []geocode.Coordinates{g.result}, nil
}

func floatPtr(v float64) *float64 { return &v }

func newSearchFixture(t *testing.T) *SearchHandlers {
	t.Helper()
	repo := sitter.NewInMemoryRepository()
	repo.Seed(
		&sitter.Sitter{
			ID: 1, Name: "Alice", Rate: 45, Rating: 4.9,
			ReviewCount: 100, RepeatClientCount: 60,
			Location: "Belltown, Seattle",
			Latitude: floatPtr(47.6145), Longitude: floatPtr(-122.3418),
			AvailabilityUpdatedAt: time.Now(),
			Services:              []string{"boarding", "walking"},
			PetTypes:              []string{"dog"},
			DogSizes:              []string{"small", "medium"},
		},
		&sitter.Sitter{
			ID: 2, Name: "Bruno", Rate: 30, Rating: 4.4,
			ReviewCount: 20, RepeatClientCount: 4,
			Location: "Laurelhurst, Seattle",
			Latitude: floatPtr(47.6731), Longitude: floatPtr(-122.2870),
			AvailabilityUpdatedAt: time.Now(),
			Services:              []string{"boarding"},
			PetTypes:              []string{"dog", "cat"},
			DogSizes:              []string{"large"},
		},
	)
	geocoder := staticGeocoder{result: geocode.Coordinates{Latitude: 47.6097, Longitude: -122.3422, Label: "Seattle, WA"}}
	searcher := sitter.NewSearcher(repo, geocoder, nil, nil, nil)
	return NewSearchHandlers(searcher, nil)
}

func doSearch(t *testing.T, h *SearchHandlers, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)
	return rec
}

func TestSearchHandler(t *testing.T) {
	h := newSearchFixture(t)

	rec := doSearch(t, h, "/api/v1/sitters/search?location=Seattle&service=boarding&sort=price")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var envelope sitter.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if envelope.Count != 2 {
		t.Errorf("Count = %d, want 2", envelope.Count)
	}
	if envelope.Query.Sort != sitter.SortPrice {
		t.Errorf("query echo sort = %q, want price", envelope.Query.Sort)
	}
	// Price ascending: Bruno (30) before Alice (45).
	if envelope.Sitters[0].Name != "Bruno" {
		t.Errorf("first result = %q, want Bruno", envelope.Sitters[0].Name)
	}
}

func TestSearchHandlerFacetParams(t *testing.T) {
	h := newSearchFixture(t)

	tests := []struct {
		name      string
		target    string
		wantCount int
	}{
		{"repeated dog sizes", "/?dogSize=small&dogSize=large", 2},
		{"comma-separated dog sizes", "/?dogSize=small,large", 2},
		{"single dog size", "/?dogSize=large", 1},
		{"pet type filter", "/?petType=cat", 1},
		{"min rating", "/?minRating=4.5", 1},
		{"price band excludes all", "/?minPrice=100", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doSearch(t, h, tt.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
			}
			var envelope sitter.Envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("failed to decode envelope: %v", err)
			}
			if envelope.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", envelope.Count, tt.wantCount)
			}
		})
	}
}

func TestSearchHandlerValidation(t *testing.T) {
	h := newSearchFixture(t)

	tests := []struct {
		name   string
		target string
	}{
		{"non-numeric latitude", "/?latitude=abc&longitude=-122.3"},
		{"latitude without longitude", "/?latitude=47.6"},
		{"latitude out of range", "/?latitude=91&longitude=0"},
		{"longitude out of range", "/?latitude=0&longitude=181"},
		{"non-numeric price", "/?minPrice=cheap"},
		{"inverted price band", "/?minPrice=50&maxPrice=20"},
		{"rating above five", "/?minRating=6"},
		{"negative max distance", "/?maxDistance=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doSearch(t, h, tt.target)
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
			if resp.Error.Message == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestSearchHandlerAddressNeverSerialized(t *testing.T) {
	repo := sitter.NewInMemoryRepository()
	repo.Seed(&sitter.Sitter{
		ID: 1, Name: "Alice", Rating: 4.9, ReviewCount: 10, RepeatClientCount: 5,
		Address:  "12345 Secret Lane, Seattle, WA",
		Latitude: floatPtr(47.61), Longitude: floatPtr(-122.34),
		AvailabilityUpdatedAt: time.Now(),
	})
	geocoder := staticGeocoder{result: geocode.Coordinates{Latitude: 47.6097, Longitude: -122.3422}}
	h := NewSearchHandlers(sitter.NewSearcher(repo, geocoder, nil, nil, nil), nil)

	rec := doSearch(t, h, "/?location=Seattle")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); strings.Contains(body, "Secret Lane") {
		t.Errorf("response leaks the sitter address: %s", body)
	}
}
