package sitter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/petbnb/petbnb/internal/geo"
	"github.com/petbnb/petbnb/internal/geocode"
	"github.com/petbnb/petbnb/internal/ranking"
)

// Default search origin (downtown Seattle), used when the request supplies
// no usable origin and geocoding the text location fails.
const (
	DefaultLatitude      = 47.6062
	DefaultLongitude     = -122.3321
	DefaultLocationLabel = "Seattle, WA"
)

// ScoredSitter is a sitter augmented with per-request search metrics:
// distance from the origin, the five normalized ranking components, and the
// weighted composite rank score. Created per-request and never persisted.
//
// Distance is nil when the sitter's coordinates could not be resolved this
// request ("distance unknown"); such records are exempt from maxDistance
// filtering and receive the neutral distance score.
type ScoredSitter struct {
	Sitter
	Distance      *float64 `json:"distance"`
	CoarseGeohash string   `json:"coarse_geohash,omitempty"`
	ranking.Scores
	RankScore float64 `json:"rank_score"`
}

// QueryEcho is the resolved query echoed back in the result envelope.
type QueryEcho struct {
	Location  string   `json:"location"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	StartDate *string  `json:"startDate"`
	EndDate   *string  `json:"endDate"`
	Sort      SortMode `json:"sort"`
}

// Envelope is the search result envelope.
type Envelope struct {
	Count   int             `json:"count"`
	Sitters []*ScoredSitter `json:"sitters"`
	Query   QueryEcho       `json:"query"`
}

// Searcher is the per-request search orchestrator:
// resolve origin -> fetch candidates -> backfill -> filter -> distances ->
// rank -> sort -> emit. It holds no cross-request mutable state beyond the
// read-only ranking weights, so concurrent use is safe.
type Searcher struct {
	repo       Repository
	geocoder   geocode.Geocoder
	backfiller *Backfiller
	weights    *ranking.Weights
	metrics    *Metrics
	logger     *slog.Logger

	// now is injectable for deterministic availability scoring in tests.
	now func() time.Time
}

// NewSearcher creates a search orchestrator. Weights are read once at
// startup and treated as immutable; metrics may be nil.
func NewSearcher(repo Repository, geocoder geocode.Geocoder, weights *ranking.Weights, metrics *Metrics, logger *slog.Logger) *Searcher {
	if weights == nil {
		weights = ranking.DefaultWeights()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Searcher{
		repo:       repo,
		geocoder:   geocoder,
		backfiller: NewBackfiller(geocoder, repo, DefaultBackfillConcurrency, logger),
		weights:    weights,
		metrics:    metrics,
		logger:     logger,
	}
}

// SetBackfillConcurrency adjusts the coordinate backfill fan-out. Call
// during startup, before the searcher serves requests.
func (s *Searcher) SetBackfillConcurrency(n int) {
	if n > 0 {
		s.backfiller = NewBackfiller(s.geocoder, s.repo, n, s.logger)
	}
}

// Search executes one sitter search and emits the result envelope.
// Store fetch failures surface as errors; geocoding failures are recovered
// locally (default origin for the search origin, exclusion for individual
// backfill records) and never fail the request.
func (s *Searcher) Search(ctx context.Context, q *SearchQuery) (*Envelope, error) {
	start := time.Now()

	origin, locationLabel := s.resolveOrigin(ctx, q)

	candidates, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch sitter candidates: %w", err)
	}

	backfill := s.backfiller.Run(ctx, candidates)
	s.metrics.observeBackfill(backfill)
	if backfill.Failed > 0 {
		s.logger.Warn("some sitters have unresolved coordinates this request",
			"failed", backfill.Failed,
			"resolved", backfill.Resolved)
	}

	matched := Filter(candidates, q)
	scored := s.annotateDistances(matched, origin, q.MaxDistance)

	envelope := &Envelope{
		Count:   len(scored),
		Sitters: scored,
		Query: QueryEcho{
			Location:  locationLabel,
			Latitude:  origin.Latitude,
			Longitude: origin.Longitude,
			StartDate: nullable(q.StartDate),
			EndDate:   nullable(q.EndDate),
			Sort:      q.Sort,
		},
	}

	// Empty batch: skip ranking entirely. This also guards the batch-max
	// normalization in the distance score against a zero-candidate divide.
	if len(scored) == 0 {
		envelope.Sitters = []*ScoredSitter{}
		s.metrics.observeSearch(time.Since(start), 0)
		return envelope, nil
	}

	s.rank(scored)
	Order(scored, q.Sort)

	s.metrics.observeSearch(time.Since(start), len(scored))
	return envelope, nil
}

// resolveOrigin determines the coordinates the search is centered on.
// Explicit non-default coordinates win; otherwise a text location is
// geocoded (first candidate); on failure the default origin applies rather
// than failing the request.
func (s *Searcher) resolveOrigin(ctx context.Context, q *SearchQuery) (geocode.Coordinates, string) {
	label := q.Location
	if label == "" {
		label = DefaultLocationLabel
	}

	if q.Latitude != nil && q.Longitude != nil &&
		geo.ValidCoordinate(*q.Latitude, *q.Longitude) &&
		!(*q.Latitude == DefaultLatitude && *q.Longitude == DefaultLongitude) {
		return geocode.Coordinates{Latitude: *q.Latitude, Longitude: *q.Longitude}, label
	}

	if q.Location != "" {
		results, err := s.geocoder.Resolve(ctx, q.Location, 1)
		if err == nil && len(results) > 0 {
			return results[0], label
		}
		s.metrics.incOriginFallback()
		s.logger.Warn("failed to geocode search origin, using default",
			"location", q.Location,
			"error", err)
	}

	return geocode.Coordinates{Latitude: DefaultLatitude, Longitude: DefaultLongitude}, label
}

// annotateDistances computes per-record distance from the origin and applies
// the maxDistance post-filter. Records without resolved coordinates keep a
// nil distance and are exempt from the maxDistance filter.
func (s *Searcher) annotateDistances(matched []*Sitter, origin geocode.Coordinates, maxDistance *float64) []*ScoredSitter {
	scored := make([]*ScoredSitter, 0, len(matched))
	for _, rec := range matched {
		sc := &ScoredSitter{Sitter: *rec}
		if rec.HasCoordinates() && geo.ValidCoordinate(*rec.Latitude, *rec.Longitude) {
			d := geo.Distance(origin.Latitude, origin.Longitude, *rec.Latitude, *rec.Longitude)
			sc.Distance = &d
			sc.CoarseGeohash = geo.Encode(*rec.Latitude, *rec.Longitude, geo.DefaultPrecision)
			if maxDistance != nil && d > *maxDistance {
				continue
			}
		}
		scored = append(scored, sc)
	}
	return scored
}

// rank computes the normalized component scores and the composite rank for
// every record. Two passes: distance scores need the batch maximum first.
func (s *Searcher) rank(scored []*ScoredSitter) {
	maxDist := 0.0
	for _, sc := range scored {
		if sc.Distance != nil && *sc.Distance > maxDist {
			maxDist = *sc.Distance
		}
	}

	clock := time.Now
	if s.now != nil {
		clock = s.now
	}
	now := clock()

	for _, sc := range scored {
		if sc.Distance != nil {
			sc.Scores.Distance = ranking.DistanceScore(*sc.Distance, maxDist)
		} else {
			sc.Scores.Distance = ranking.NeutralDistanceScore
		}
		sc.Scores.Rating = ranking.RatingScore(sc.Sitter.Rating)
		sc.Scores.Availability = ranking.AvailabilityScore(sc.AvailabilityUpdatedAt, now)
		if sc.MedianResponseTime != nil {
			sc.Scores.Response = ranking.ResponseScore(*sc.MedianResponseTime)
		} else {
			sc.Scores.Response = ranking.NeutralResponseScore
		}
		sc.Scores.RepeatClient = ranking.RepeatClientScore(sc.RepeatClientCount, sc.ReviewCount)
		sc.RankScore = ranking.Composite(sc.Scores, s.weights)
	}
}

func nullable(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
