package geocode

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL is how long resolved coordinates stay cached. Place
// coordinates are effectively static, so a long TTL is safe.
const DefaultCacheTTL = 24 * time.Hour

// CachedGeocoder wraps a Geocoder with a Redis read-through cache.
// Cache values are CBOR-encoded candidate lists keyed by normalized query
// and limit. Cache failures are logged and never fail resolution.
type CachedGeocoder struct {
	inner  Geocoder
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedGeocoder creates a caching wrapper around inner. A zero ttl
// falls back to DefaultCacheTTL.
func NewCachedGeocoder(inner Geocoder, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedGeocoder {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedGeocoder{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

// cacheKey normalizes the query so trivially different spellings share an
// entry. Limit is part of the key because it changes the candidate list.
func cacheKey(query string, limit int) string {
	return "geocode:" + strconv.Itoa(limit) + ":" + strings.ToLower(strings.Join(strings.Fields(query), " "))
}

// Resolve returns cached candidates when present, otherwise resolves via
// the wrapped geocoder and populates the cache.
func (g *CachedGeocoder) Resolve(ctx context.Context, query string, limit int) ([]Coordinates, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	key := cacheKey(query, limit)

	data, err := g.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var cached []Coordinates
		if decErr := cbor.Unmarshal(data, &cached); decErr == nil && len(cached) > 0 {
			return cached, nil
		}
		// Corrupt entry: drop it and fall through to the provider.
		g.logger.Warn("dropping corrupt geocode cache entry", "key", key)
		if delErr := g.rdb.Del(ctx, key).Err(); delErr != nil {
			g.logger.Debug("failed to delete corrupt cache entry", "key", key, "error", delErr)
		}
	} else if !errors.Is(err, redis.Nil) {
		g.logger.Debug("geocode cache read failed", "key", key, "error", err)
	}

	results, err := g.inner.Resolve(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	if encoded, encErr := cbor.Marshal(results); encErr == nil {
		if setErr := g.rdb.Set(ctx, key, encoded, g.ttl).Err(); setErr != nil {
			g.logger.Debug("geocode cache write failed", "key", key, "error", setErr)
		}
	}

	return results, nil
}
