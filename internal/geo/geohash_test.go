package geo

import "testing"

func TestEncode(t *testing.T) {
	tests := []struct {
		name      string
		lat, lng  float64
		precision int
		want      string
	}{
		{"seattle precision 6", 47.6062, -122.3321, 6, "c23nb6"},
		{"null island precision 6", 0.0001, 0.0001, 6, "s00000"},
		{"precision 1", 47.6062, -122.3321, 1, "c"},
		{"non-positive precision falls back to default", 0.0001, 0.0001, 0, "s00000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.lat, tt.lng, tt.precision); got != tt.want {
				t.Errorf("Encode(%v, %v, %d) = %q, want %q", tt.lat, tt.lng, tt.precision, got, tt.want)
			}
		})
	}
}

func TestEncodePrefixConsistency(t *testing.T) {
	// A higher-precision hash of the same point extends the lower-precision
	// one.
	short := Encode(47.6062, -122.3321, 4)
	long := Encode(47.6062, -122.3321, 8)
	if long[:4] != short {
		t.Errorf("precision 8 hash %q does not extend precision 4 hash %q", long, short)
	}
}

func TestEncodeNearbyPointsShareCoarsePrefix(t *testing.T) {
	// Two points a few hundred meters apart should collide at coarse
	// precision, which is the property the public display relies on.
	a := Encode(47.6062, -122.3321, 5)
	b := Encode(47.6080, -122.3340, 5)
	if a != b {
		t.Errorf("nearby points diverge at precision 5: %q vs %q", a, b)
	}
}
