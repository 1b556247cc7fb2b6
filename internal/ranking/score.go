package ranking

import (
	"math"
	"time"
)

// Neutral scores for signals that are unknown for a given record. Unknown
// response time is common (new sitters); unknown distance happens when
// coordinate backfill fails for a record during the request.
const (
	NeutralResponseScore = 0.5
	NeutralDistanceScore = 0.5
)

// availabilityWindowDays is the staleness horizon: a sitter whose
// availability was updated this many days ago (or more) scores 0.
const availabilityWindowDays = 10

// responseWindowHours is the responsiveness horizon: a median response time
// of this many hours (or more) scores 0.
const responseWindowHours = 24

// DistanceScore normalizes a record's distance against the batch maximum.
// The closest record in a batch with spread scores 1; the farthest scores 0.
// When maxDistance is 0 (single candidate, or all candidates at the origin)
// every record scores 1.
func DistanceScore(distance, maxDistance float64) float64 {
	if maxDistance <= 0 {
		return 1.0
	}
	score := 1.0 - distance/maxDistance
	if score < 0 {
		return 0.0
	}
	if score > 1 {
		return 1.0
	}
	return score
}

// RatingScore maps a rating in [0, 5] onto [0, 1].
func RatingScore(rating float64) float64 {
	return rating / 5.0
}

// AvailabilityScore rewards recently updated availability calendars.
// Formula: max(0, 1 - floor(daysSinceUpdate)/10). Updates from the future
// (clock skew) count as zero days.
func AvailabilityScore(updatedAt, now time.Time) float64 {
	days := math.Floor(now.Sub(updatedAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	score := 1.0 - days/availabilityWindowDays
	if score < 0 {
		return 0.0
	}
	return score
}

// ResponseScore rewards fast median response times.
// Formula: max(0, 1 - medianResponseHours/24). Callers with an unknown
// response time should use NeutralResponseScore instead.
func ResponseScore(medianResponseHours float64) float64 {
	score := 1.0 - medianResponseHours/responseWindowHours
	if score < 0 {
		return 0.0
	}
	if score > 1 {
		return 1.0
	}
	return score
}

// RepeatClientScore is the fraction of reviews that came from repeat
// clients. Zero reviews scores 0 rather than dividing by zero.
func RepeatClientScore(repeatClientCount, reviewCount int) float64 {
	if reviewCount <= 0 {
		return 0.0
	}
	return float64(repeatClientCount) / float64(reviewCount)
}

// Scores holds the five normalized ranking components for one record,
// each in [0, 1].
type Scores struct {
	Distance     float64 `json:"distance_score"`
	Rating       float64 `json:"rating_score"`
	Availability float64 `json:"availability_score"`
	Response     float64 `json:"response_score"`
	RepeatClient float64 `json:"repeat_client_score"`
}

// Composite combines the five component scores into a single relevance
// score using the calibrated weights. Weights are applied as configured;
// there is no normalization to a fixed sum.
func Composite(s Scores, weights *Weights) float64 {
	if weights == nil {
		weights = DefaultWeights()
	}
	return (s.Distance * weights.Distance) +
		(s.Rating * weights.Rating) +
		(s.Availability * weights.Availability) +
		(s.Response * weights.Response) +
		(s.RepeatClient * weights.RepeatClient)
}
