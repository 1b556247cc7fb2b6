package ranking

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// Weights defines the coefficients applied to each normalized ranking
// signal when computing the composite relevance score. All coefficients
// must be non-negative; they are not required to sum to 1.
type Weights struct {
	Distance     float64 `json:"distance"`      // Weight for proximity to the search origin (default: 0.3)
	Rating       float64 `json:"rating"`        // Weight for average review rating (default: 0.25)
	Availability float64 `json:"availability"`  // Weight for calendar update recency (default: 0.2)
	Response     float64 `json:"response"`      // Weight for median response speed (default: 0.15)
	RepeatClient float64 `json:"repeat_client"` // Weight for repeat-client rate (default: 0.1)
}

// CalibrationConfig represents the JSON structure of the calibration file.
type CalibrationConfig struct {
	Version string  `json:"version"` // Config version for future compatibility
	Weights Weights `json:"weights"` // Weight configuration
}

// DefaultWeights returns the default ranking weight configuration.
//
// Formula: rank = (distance * 0.3) + (rating * 0.25) + (availability * 0.2)
// + (response * 0.15) + (repeat_client * 0.1)
//
// Proximity dominates because sitter search is fundamentally local;
// the remaining signals order nearby candidates by quality.
func DefaultWeights() *Weights {
	return &Weights{
		Distance:     0.3,
		Rating:       0.25,
		Availability: 0.2,
		Response:     0.15,
		RepeatClient: 0.1,
	}
}

// LoadCalibration loads ranking weights from a JSON calibration file.
// Partial configurations are merged with defaults for graceful degradation,
// and any error returns default weights so a bad calibration file can never
// take search down.
func LoadCalibration(filePath string) (*Weights, error) {
	if filePath == "" {
		return DefaultWeights(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		slog.Warn("failed to read calibration file, using defaults",
			"path", filePath,
			"error", err)
		return DefaultWeights(), fmt.Errorf("read calibration file %s: %w", filePath, err)
	}

	var config CalibrationConfig
	if err := json.Unmarshal(data, &config); err != nil {
		slog.Warn("failed to parse calibration file, using defaults",
			"path", filePath,
			"error", err)
		return DefaultWeights(), fmt.Errorf("parse calibration file %s: %w", filePath, err)
	}

	defaults := DefaultWeights()
	merged := MergeCalibration(defaults, &config.Weights)
	logCalibrationOverrides(defaults, merged)

	return merged, nil
}

// MergeCalibration merges override weights into base weights. Only positive
// values from the override are applied, which allows partial overrides in
// the calibration file. Negative values are rejected as invalid.
func MergeCalibration(base *Weights, override *Weights) *Weights {
	if base == nil {
		return DefaultWeights()
	}
	if override == nil {
		result := *base
		return &result
	}

	result := *base

	if override.Distance > 0 {
		result.Distance = override.Distance
	}
	if override.Rating > 0 {
		result.Rating = override.Rating
	}
	if override.Availability > 0 {
		result.Availability = override.Availability
	}
	if override.Response > 0 {
		result.Response = override.Response
	}
	if override.RepeatClient > 0 {
		result.RepeatClient = override.RepeatClient
	}

	return &result
}

// logCalibrationOverrides logs which weights were overridden from defaults.
func logCalibrationOverrides(defaults *Weights, loaded *Weights) {
	var overrides []string

	if loaded.Distance != defaults.Distance {
		overrides = append(overrides, fmt.Sprintf("distance: %.2f -> %.2f", defaults.Distance, loaded.Distance))
	}
	if loaded.Rating != defaults.Rating {
		overrides = append(overrides, fmt.Sprintf("rating: %.2f -> %.2f", defaults.Rating, loaded.Rating))
	}
	if loaded.Availability != defaults.Availability {
		overrides = append(overrides, fmt.Sprintf("availability: %.2f -> %.2f", defaults.Availability, loaded.Availability))
	}
	if loaded.Response != defaults.Response {
		overrides = append(overrides, fmt.Sprintf("response: %.2f -> %.2f", defaults.Response, loaded.Response))
	}
	if loaded.RepeatClient != defaults.RepeatClient {
		overrides = append(overrides, fmt.Sprintf("repeat_client: %.2f -> %.2f", defaults.RepeatClient, loaded.RepeatClient))
	}

	if len(overrides) > 0 {
		slog.Info("loaded ranking calibration with overrides", "overrides", overrides)
	} else {
		slog.Info("loaded ranking calibration, no overrides from defaults")
	}
}
