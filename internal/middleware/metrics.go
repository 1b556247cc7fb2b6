package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names as constants for consistency.
const (
	MetricHTTPRequestDuration = "http_request_duration_seconds"
	MetricHTTPRequestsTotal   = "http_requests_total"
	MetricRateLimitBlocked    = "rate_limit_blocked_total"
	MetricRateLimitStoreError = "rate_limit_store_errors_total"
)

// Metrics contains Prometheus metrics for middleware operations.
// All operations are thread-safe.
type Metrics struct {
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsTotal   *prometheus.CounterVec
	rateLimitBlocked    *prometheus.CounterVec
	rateLimitStoreError prometheus.Counter
}

// NewMetrics creates a Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them.
func NewMetrics() *Metrics {
	return &Metrics{
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricHTTPRequestDuration,
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.01, 0.1, 0.5, 1.0, 2.0},
			},
			[]string{"method", "path", "status"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricHTTPRequestsTotal,
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		rateLimitBlocked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricRateLimitBlocked,
				Help: "Total number of requests blocked by rate limiting",
			},
			[]string{"path"},
		),
		rateLimitStoreError: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricRateLimitStoreError,
				Help: "Total number of rate limit store errors (fail-open events)",
			},
		),
	}
}

// Register registers all metrics with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.httpRequestDuration,
		m.httpRequestsTotal,
		m.rateLimitBlocked,
		m.rateLimitStoreError,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveHTTPRequest records metrics for one completed request.
func (m *Metrics) ObserveHTTPRequest(method, path, status string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.httpRequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
}

// IncRateLimitBlocked counts one blocked request.
func (m *Metrics) IncRateLimitBlocked(path string) {
	if m == nil {
		return
	}
	m.rateLimitBlocked.WithLabelValues(path).Inc()
}

// IncRateLimitStoreError counts one store failure (the limiter fails open).
func (m *Metrics) IncRateLimitStoreError() {
	if m == nil {
		return
	}
	m.rateLimitStoreError.Inc()
}
