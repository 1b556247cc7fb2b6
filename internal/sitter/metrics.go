package sitter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric names as constants for consistency.
const (
	MetricSearches         = "sitter_search_requests_total"
	MetricEmptyResults     = "sitter_search_empty_results_total"
	MetricSearchLatency    = "sitter_search_duration_seconds"
	MetricBackfillResolved = "sitter_backfill_resolved_total"
	MetricBackfillFailed   = "sitter_backfill_failed_total"
	MetricOriginFallbacks  = "sitter_search_origin_fallbacks_total"
)

// Metrics contains Prometheus metrics for the search engine.
// All operations are thread-safe. A nil *Metrics is a no-op, so tests can
// run the Searcher without a registry.
type Metrics struct {
	searches         prometheus.Counter
	emptyResults     prometheus.Counter
	searchLatency    prometheus.Histogram
	backfillResolved prometheus.Counter
	backfillFailed   prometheus.Counter
	originFallbacks  prometheus.Counter
}

// NewMetrics creates a Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them.
func NewMetrics() *Metrics {
	return &Metrics{
		searches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricSearches,
			Help: "Total number of sitter search requests executed",
		}),
		emptyResults: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricEmptyResults,
			Help: "Total number of sitter searches that returned zero results",
		}),
		searchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricSearchLatency,
			Help:    "Histogram of sitter search execution latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		backfillResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricBackfillResolved,
			Help: "Total number of sitter coordinates resolved by backfill",
		}),
		backfillFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricBackfillFailed,
			Help: "Total number of failed coordinate backfill attempts",
		}),
		originFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricOriginFallbacks,
			Help: "Total number of searches that fell back to the default origin after a geocoding failure",
		}),
	}
}

// Register registers all metrics with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.searches,
		m.emptyResults,
		m.searchLatency,
		m.backfillResolved,
		m.backfillFailed,
		m.originFallbacks,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) observeSearch(d time.Duration, resultCount int) {
	if m == nil {
		return
	}
	m.searches.Inc()
	m.searchLatency.Observe(d.Seconds())
	if resultCount == 0 {
		m.emptyResults.Inc()
	}
}

func (m *Metrics) observeBackfill(r BackfillResult) {
	if m == nil {
		return
	}
	m.backfillResolved.Add(float64(r.Resolved))
	m.backfillFailed.Add(float64(r.Failed))
}

func (m *Metrics) incOriginFallback() {
	if m == nil {
		return
	}
	m.originFallbacks.Inc()
}
