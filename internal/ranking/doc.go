// Package ranking provides the normalized scoring functions for sitter
// search and their weighted combination into a single relevance score,
// with calibration support via a JSON weights file.
//
// Basic Usage:
//
//	// Load calibration (typically at startup)
//	weights, err := ranking.LoadCalibration("configs/ranking.calibration.json")
//	if err != nil {
//		log.Warn("using default weights", "error", err)
//	}
//
//	scores := ranking.Scores{
//		Distance:     ranking.DistanceScore(sitter.Distance, batchMax),
//		Rating:       ranking.RatingScore(sitter.Rating),
//		Availability: ranking.AvailabilityScore(sitter.AvailabilityUpdatedAt, time.Now()),
//		Response:     ranking.NeutralResponseScore, // or ranking.ResponseScore(hours)
//		RepeatClient: ranking.RepeatClientScore(sitter.RepeatClientCount, sitter.ReviewCount),
//	}
//	rank := ranking.Composite(scores, weights)
//
// Score Functions:
//
// All score functions return values in the [0, 1] range and are pure.
// DistanceScore is the only batch-dependent one: it needs the maximum
// distance across the filtered candidate set, so distances for the whole
// batch must be computed before any one record can be scored.
//
// Calibration:
//
// The calibration system allows deploy-time tuning of ranking weights via
// a JSON configuration file loaded at startup. Weights are read once into
// an immutable struct and passed by reference; there is no ambient lookup.
// The configured weights are taken as-is and are not forced to sum to 1.
package ranking
