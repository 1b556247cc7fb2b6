package sitter

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/petbnb/petbnb/internal/geocode"
)

// DefaultBackfillConcurrency bounds the geocoding fan-out for one request.
const DefaultBackfillConcurrency = 8

// BackfillResult summarizes one backfill run over a candidate batch.
type BackfillResult struct {
	Attempted int
	Resolved  int
	Failed    int
}

// Backfiller resolves missing coordinates for sitter records on demand.
// For each record with nil coordinates it geocodes the address, sets the
// in-memory coordinates for the current request, and persists them to the
// record store as a best-effort cache fill.
type Backfiller struct {
	geocoder    geocode.Geocoder
	repo        Repository
	concurrency int
	logger      *slog.Logger
}

// NewBackfiller creates a Backfiller. A non-positive concurrency falls back
// to DefaultBackfillConcurrency.
func NewBackfiller(geocoder geocode.Geocoder, repo Repository, concurrency int, logger *slog.Logger) *Backfiller {
	if concurrency <= 0 {
		concurrency = DefaultBackfillConcurrency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Backfiller{
		geocoder:    geocoder,
		repo:        repo,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Run backfills coordinates for every record in the batch that lacks them,
// mutating the records in place. Attempts run concurrently with bounded
// fan-out and are fully settled before Run returns: distance calculation
// needs the resolved coordinates this request cycle.
//
// Attempts are independent. A geocoding failure for one record is logged
// and leaves that record's coordinates nil; it never fails the batch.
// Store update failures are likewise logged and swallowed.
func (b *Backfiller) Run(ctx context.Context, batch []*Sitter) BackfillResult {
	var attempted, resolved, failed atomic.Int64

	// Plain group without context cancellation: one failed attempt must not
	// cancel the others, and worker funcs always return nil.
	var g errgroup.Group
	g.SetLimit(b.concurrency)

	for _, s := range batch {
		if s.HasCoordinates() {
			continue
		}
		if s.Address == "" {
			// Backfill precondition violated; nothing to resolve from.
			b.logger.Warn("sitter has no coordinates and no address, skipping backfill", "sitter_id", s.ID)
			continue
		}

		attempted.Add(1)
		g.Go(func() error {
			results, err := b.geocoder.Resolve(ctx, s.Address, 1)
			if err != nil || len(results) == 0 {
				failed.Add(1)
				b.logger.Warn("coordinate backfill failed",
					"sitter_id", s.ID,
					"error", err)
				return nil
			}

			lat, lng := results[0].Latitude, results[0].Longitude
			s.Latitude = &lat
			s.Longitude = &lng
			resolved.Add(1)

			if err := b.repo.UpdateCoordinates(ctx, s.ID, lat, lng); err != nil {
				// Best-effort cache fill; the in-memory coordinates above
				// are what this request actually needs.
				b.logger.Warn("failed to persist backfilled coordinates",
					"sitter_id", s.ID,
					"error", err)
			}
			return nil
		})
	}

	_ = g.Wait()

	return BackfillResult{
		Attempted: int(attempted.Load()),
		Resolved:  int(resolved.Load()),
		Failed:    int(failed.Load()),
	}
}
