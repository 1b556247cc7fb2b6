// Package geo provides geographic primitives for the sitter search engine:
// great-circle distance and geohash encoding for coarse location display.
package geo

import "math"

// EarthRadiusMiles is the mean Earth radius used for great-circle distance.
const EarthRadiusMiles = 3958.8

// Distance returns the great-circle distance in miles between two points,
// rounded to one decimal place, using the haversine formula.
//
// It is a pure function with no failure modes beyond invalid numeric input:
// NaN inputs propagate to the result. Callers must validate that coordinates
// are finite and in range (see ValidCoordinate) before calling.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(EarthRadiusMiles*c*10) / 10
}

// ValidCoordinate reports whether lat and lng are finite and within
// [-90, 90] and [-180, 180] respectively.
func ValidCoordinate(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
