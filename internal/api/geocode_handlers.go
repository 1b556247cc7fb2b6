package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/petbnb/petbnb/internal/geocode"
)

// maxGeocodeLimit caps how many candidates a single geocode request may ask
// for, matching the provider's own ceiling.
const maxGeocodeLimit = 10

// GeocodeHandlers serves the forward-geocoding endpoint.
type GeocodeHandlers struct {
	geocoder geocode.Geocoder
	logger   *slog.Logger
}

// NewGeocodeHandlers creates handlers over the given geocoder.
func NewGeocodeHandlers(geocoder geocode.Geocoder, logger *slog.Logger) *GeocodeHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &GeocodeHandlers{geocoder: geocoder, logger: logger}
}

// GeocodeResponse is the response body for GET /api/geocode.
type GeocodeResponse struct {
	Count   int                   `json:"count"`
	Results []geocode.Coordinates `json:"results"`
}

// Geocode handles GET /api/geocode?q=<query>&limit=<n>.
//
// Every returned coordinate carries a privacy offset so the endpoint never
// exposes a rooftop-exact point.
func (h *GeocodeHandlers) Geocode(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(query) < 2 {
		WriteError(w, r, http.StatusBadRequest, ErrCodeValidation, "query parameter q must be at least 2 characters")
		return
	}

	limit := geocode.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxGeocodeLimit {
			WriteError(w, r, http.StatusBadRequest, ErrCodeValidation, "limit must be an integer between 1 and 10")
			return
		}
		limit = n
	}

	results, err := h.geocoder.Resolve(r.Context(), query, limit)
	if err != nil {
		if errors.Is(err, geocode.ErrNoResults) {
			writeJSON(w, http.StatusOK, GeocodeResponse{Count: 0, Results: []geocode.Coordinates{}})
			return
		}
		var upstream *geocode.UpstreamError
		if errors.As(err, &upstream) {
			h.logger.Error("geocoding provider failed",
				"provider", upstream.Provider,
				"status", upstream.Status,
				"error", err)
			WriteError(w, r, http.StatusBadGateway, ErrCodeUpstream, "geocoding provider unavailable")
			return
		}
		h.logger.Error("geocoding failed", "query", query, "error", err)
		WriteError(w, r, http.StatusInternalServerError, ErrCodeInternal, "geocoding failed")
		return
	}

	offset := make([]geocode.Coordinates, len(results))
	for i, c := range results {
		offset[i] = geocode.PrivacyOffset(c)
	}

	writeJSON(w, http.StatusOK, GeocodeResponse{Count: len(offset), Results: offset})
}
