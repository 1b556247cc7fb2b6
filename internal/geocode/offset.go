package geocode

import (
	"math"
	"math/rand/v2"
)

// Privacy offset bounds: 50-400 feet, matching what sitter profiles promise
// about not exposing exact home locations.
const (
	minOffsetMeters = 15.0
	maxOffsetMeters = 120.0

	// metersPerDegree approximates one degree of latitude.
	metersPerDegree = 111111.0
)

// PrivacyOffset returns a copy of c displaced by a uniformly random distance
// in [15, 120) meters along a uniformly random bearing. The longitude delta
// is scaled by 1/cos(latitude) to correct for meridian convergence.
//
// The input is never mutated. Output is intentionally non-deterministic:
// every call produces a different point, so tests must assert the offset
// magnitude bound rather than an exact result.
func PrivacyOffset(c Coordinates) Coordinates {
	meters := minOffsetMeters + rand.Float64()*(maxOffsetMeters-minOffsetMeters)
	bearing := rand.Float64() * 2 * math.Pi

	latDelta := meters / metersPerDegree
	lngDelta := meters / (metersPerDegree * math.Cos(c.Latitude*math.Pi/180))

	out := c
	out.Latitude += latDelta * math.Sin(bearing)
	out.Longitude += lngDelta * math.Cos(bearing)
	return out
}
