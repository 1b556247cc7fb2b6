// Package geocode resolves free-text place descriptions to candidate
// coordinates via a pluggable provider, and applies privacy-preserving
// offsets to coordinates before they are exposed publicly.
package geocode

import (
	"context"
	"errors"
	"fmt"
)

// Coordinates is a resolved geographic point with an optional
// human-readable label.
type Coordinates struct {
	Latitude  float64 `json:"latitude" cbor:"1,keyasint"`
	Longitude float64 `json:"longitude" cbor:"2,keyasint"`
	Label     string  `json:"label,omitempty" cbor:"3,keyasint,omitempty"`
}

// DefaultLimit is the candidate count requested when the caller does not
// specify one.
const DefaultLimit = 5

// ErrNoResults is returned when the provider resolves a query to zero
// candidates.
var ErrNoResults = errors.New("geocode: no results")

// UpstreamError reports a non-success status or malformed payload from the
// geocoding provider. It is propagated to the caller and never retried
// automatically.
type UpstreamError struct {
	Provider string
	Status   int
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geocode: %s provider error (status %d): %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("geocode: %s provider error (status %d)", e.Provider, e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Geocoder resolves a free-text place description to an ordered list of
// candidate coordinates, best match first. Implementations must not assume
// a specific upstream service.
type Geocoder interface {
	Resolve(ctx context.Context, query string, limit int) ([]Coordinates, error)
}
