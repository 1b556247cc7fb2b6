package sitter

import (
	"errors"
	"testing"
	"time"
)

func ptr(v float64) *float64 { return &v }

func validSitter() *Sitter {
	return &Sitter{
		ID:                    1,
		Name:                  "Test Sitter",
		Rate:                  40,
		Rating:                4.8,
		ReviewCount:           50,
		RepeatClientCount:     20,
		Location:              "Capitol Hill, Seattle",
		Address:               "1600 Broadway, Seattle, WA",
		AvailabilityUpdatedAt: time.Now(),
		Services:              []string{"boarding"},
		PetTypes:              []string{"dog"},
	}
}

func TestSitterValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Sitter)
		wantErr error
	}{
		{"valid record", func(s *Sitter) {}, nil},
		{"rating above five", func(s *Sitter) { s.Rating = 5.1 }, ErrInvalidRating},
		{"negative rating", func(s *Sitter) { s.Rating = -0.1 }, ErrInvalidRating},
		{"negative review count", func(s *Sitter) { s.ReviewCount = -1 }, ErrNegativeCounter},
		{"repeat above reviews", func(s *Sitter) { s.RepeatClientCount = 51 }, ErrRepeatExceedsTotal},
		{
			"no coordinates and no address",
			func(s *Sitter) { s.Address = "" },
			ErrMissingAddress,
		},
		{
			"coordinates without address is fine",
			func(s *Sitter) {
				s.Address = ""
				s.Latitude = ptr(47.6)
				s.Longitude = ptr(-122.3)
			},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSitter()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSitterClone(t *testing.T) {
	original := validSitter()
	original.Latitude = ptr(47.6)
	original.Longitude = ptr(-122.3)
	original.MedianResponseTime = ptr(3.5)

	clone := original.Clone()

	*clone.Latitude = 0
	*clone.Longitude = 0
	*clone.MedianResponseTime = 0
	clone.Services[0] = "changed"

	if *original.Latitude != 47.6 || *original.Longitude != -122.3 {
		t.Error("mutating clone coordinates affected the original")
	}
	if *original.MedianResponseTime != 3.5 {
		t.Error("mutating clone response time affected the original")
	}
	if original.Services[0] != "boarding" {
		t.Error("mutating clone tag slice affected the original")
	}
}

func TestHasCoordinates(t *testing.T) {
	s := validSitter()
	if s.HasCoordinates() {
		t.Error("HasCoordinates() = true for nil coordinates")
	}
	s.Latitude = ptr(47.6)
	if s.HasCoordinates() {
		t.Error("HasCoordinates() = true with only latitude set")
	}
	s.Longitude = ptr(-122.3)
	if !s.HasCoordinates() {
		t.Error("HasCoordinates() = false with both set")
	}
}
