// Package sitter provides the sitter search engine: the sitter model and
// repositories, facet filtering, coordinate backfill, ranking and ordering,
// and the per-request search orchestrator.
package sitter

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors for sitter records.
var (
	ErrInvalidRating      = errors.New("rating must be between 0 and 5")
	ErrNegativeCounter    = errors.New("counters must be non-negative")
	ErrRepeatExceedsTotal = errors.New("repeat_client_count cannot exceed review_count")
	ErrMissingAddress     = errors.New("a sitter without coordinates must have an address")
)

// Sitter is a searchable sitter profile. Latitude and longitude are nullable
// until coordinate backfill resolves them from the address; a record with
// nil coordinates must carry a non-empty address.
//
// The address is the sitter's home location and is never serialized into
// API responses; clients only ever see the textual location, a privacy
// offset coordinate, or a coarse geohash.
type Sitter struct {
	ID                    int64     `json:"id"`
	Name                  string    `json:"name"`
	PhotoURL              string    `json:"photo_url"`
	Rate                  float64   `json:"rate"`
	Rating                float64   `json:"rating"`
	ReviewCount           int       `json:"review_count"`
	RepeatClientCount     int       `json:"repeat_client_count"`
	Location              string    `json:"location"`
	Address               string    `json:"-"`
	Latitude              *float64  `json:"latitude"`
	Longitude             *float64  `json:"longitude"`
	Verified              bool      `json:"verified"`
	TopSitter             bool      `json:"top_sitter"`
	AvailabilityUpdatedAt time.Time `json:"availability_updated_at"`
	Services              []string  `json:"services"`
	PetTypes              []string  `json:"pet_types"`
	DogSizes              []string  `json:"dog_sizes,omitempty"`
	Certifications        []string  `json:"certifications,omitempty"`
	SpecialNeeds          []string  `json:"special_needs,omitempty"`
	HomeFeatures          []string  `json:"home_features,omitempty"`

	// MedianResponseTime is the sitter's median response time in hours.
	// Nil means unknown (typically a new sitter with no message history).
	MedianResponseTime *float64 `json:"median_response_time"`
}

// HasCoordinates reports whether both latitude and longitude are resolved.
func (s *Sitter) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// Validate checks the record invariants.
func (s *Sitter) Validate() error {
	if s.Rating < 0 || s.Rating > 5 {
		return fmt.Errorf("sitter %d: %w", s.ID, ErrInvalidRating)
	}
	if s.ReviewCount < 0 || s.RepeatClientCount < 0 {
		return fmt.Errorf("sitter %d: %w", s.ID, ErrNegativeCounter)
	}
	if s.RepeatClientCount > s.ReviewCount {
		return fmt.Errorf("sitter %d: %w", s.ID, ErrRepeatExceedsTotal)
	}
	if !s.HasCoordinates() && s.Address == "" {
		return fmt.Errorf("sitter %d: %w", s.ID, ErrMissingAddress)
	}
	return nil
}

// Clone returns a deep copy so repository consumers can mutate records
// per-request without touching shared state.
func (s *Sitter) Clone() *Sitter {
	out := *s
	if s.Latitude != nil {
		lat := *s.Latitude
		out.Latitude = &lat
	}
	if s.Longitude != nil {
		lng := *s.Longitude
		out.Longitude = &lng
	}
	if s.MedianResponseTime != nil {
		h := *s.MedianResponseTime
		out.MedianResponseTime = &h
	}
	out.Services = cloneTags(s.Services)
	out.PetTypes = cloneTags(s.PetTypes)
	out.DogSizes = cloneTags(s.DogSizes)
	out.Certifications = cloneTags(s.Certifications)
	out.SpecialNeeds = cloneTags(s.SpecialNeeds)
	out.HomeFeatures = cloneTags(s.HomeFeatures)
	return &out
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
