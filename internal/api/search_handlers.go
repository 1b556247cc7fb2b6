package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/petbnb/petbnb/internal/sitter"
)

// SearchHandlers serves the sitter search endpoint.
type SearchHandlers struct {
	searcher *sitter.Searcher
	logger   *slog.Logger
}

// NewSearchHandlers creates handlers over the given search orchestrator.
func NewSearchHandlers(searcher *sitter.Searcher, logger *slog.Logger) *SearchHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchHandlers{searcher: searcher, logger: logger}
}

// Search handles GET /api/v1/sitters/search.
//
// Query parameters:
//   - location: free-text origin, geocoded server-side
//   - latitude, longitude: explicit origin coordinates (take precedence)
//   - minPrice, maxPrice, minRating, maxDistance: numeric filters
//   - service, petType: singular facet filters
//   - dogSize, specialNeeds, homeFeatures: repeatable set facet filters
//   - topSitter: restrict to top sitters when "true"
//   - startDate, endDate: echoed back in the envelope
//   - sort: price, rating, or distance (default)
func (h *SearchHandlers) Search(w http.ResponseWriter, r *http.Request) {
	q, err := parseSearchQuery(r)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	envelope, err := h.searcher.Search(r.Context(), q)
	if err != nil {
		h.logger.Error("sitter search failed", "error", err)
		WriteError(w, r, http.StatusInternalServerError, ErrCodeInternal, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, envelope)
}

// parseSearchQuery parses and validates search parameters. Repeated facet
// params also accept comma-separated values within a single occurrence.
func parseSearchQuery(r *http.Request) (*sitter.SearchQuery, error) {
	values := r.URL.Query()
	q := &sitter.SearchQuery{
		Location:  strings.TrimSpace(values.Get("location")),
		Service:   strings.TrimSpace(values.Get("service")),
		PetType:   strings.TrimSpace(values.Get("petType")),
		StartDate: strings.TrimSpace(values.Get("startDate")),
		EndDate:   strings.TrimSpace(values.Get("endDate")),
		Sort:      sitter.ParseSortMode(values.Get("sort")),
	}

	var err error
	if q.Latitude, err = parseFloatParam(values.Get("latitude"), "latitude"); err != nil {
		return nil, err
	}
	if q.Longitude, err = parseFloatParam(values.Get("longitude"), "longitude"); err != nil {
		return nil, err
	}
	if (q.Latitude == nil) != (q.Longitude == nil) {
		return nil, fmt.Errorf("latitude and longitude must be provided together")
	}
	if q.Latitude != nil {
		if *q.Latitude < -90 || *q.Latitude > 90 {
			return nil, fmt.Errorf("latitude must be between -90 and 90")
		}
		if *q.Longitude < -180 || *q.Longitude > 180 {
			return nil, fmt.Errorf("longitude must be between -180 and 180")
		}
	}

	if q.MinPrice, err = parseFloatParam(values.Get("minPrice"), "minPrice"); err != nil {
		return nil, err
	}
	if q.MaxPrice, err = parseFloatParam(values.Get("maxPrice"), "maxPrice"); err != nil {
		return nil, err
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return nil, fmt.Errorf("minPrice must not exceed maxPrice")
	}
	if q.MinRating, err = parseFloatParam(values.Get("minRating"), "minRating"); err != nil {
		return nil, err
	}
	if q.MinRating != nil && (*q.MinRating < 0 || *q.MinRating > 5) {
		return nil, fmt.Errorf("minRating must be between 0 and 5")
	}
	if q.MaxDistance, err = parseFloatParam(values.Get("maxDistance"), "maxDistance"); err != nil {
		return nil, err
	}
	if q.MaxDistance != nil && *q.MaxDistance < 0 {
		return nil, fmt.Errorf("maxDistance must not be negative")
	}

	q.DogSizes = parseSetParam(values["dogSize"])
	q.SpecialNeeds = parseSetParam(values["specialNeeds"])
	q.HomeFeatures = parseSetParam(values["homeFeatures"])
	q.TopSittersOnly = values.Get("topSitter") == "true"

	return q, nil
}

// parseFloatParam parses an optional float parameter, returning nil when the
// value is absent.
func parseFloatParam(raw, name string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q is not a number", name, raw)
	}
	return &v, nil
}

// parseSetParam flattens repeated and comma-separated occurrences into a
// single trimmed slice, dropping empties.
func parseSetParam(raw []string) []string {
	var out []string
	for _, occurrence := range raw {
		for _, part := range strings.Split(occurrence, ",") {
			if v := strings.TrimSpace(part); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
