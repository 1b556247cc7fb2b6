package middleware

import (
	"net/http"
	"strconv"
	"time"
)

// staticRoutes are the service's known paths. Anything else is collapsed to
// a single label to keep metric cardinality bounded.
var staticRoutes = map[string]bool{
	"/":                      true,
	"/api/v1/sitters/search": true,
	"/api/geocode":           true,
	"/health":                true,
	"/ready":                 true,
	"/metrics":               true,
}

// normalizePath maps a request path onto a bounded label set.
func normalizePath(path string) string {
	if staticRoutes[path] {
		return path
	}
	return "other"
}

// HTTPMetrics records request count and duration per method/path/status.
// Health probes are excluded to keep scrape noise down.
func HTTPMetrics(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" || r.URL.Path == "/ready" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			metrics.ObserveHTTPRequest(
				r.Method,
				normalizePath(r.URL.Path),
				strconv.Itoa(rw.statusCode),
				time.Since(start).Seconds(),
			)
		})
	}
}
