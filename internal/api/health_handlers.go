package api

import (
	"context"
	"net/http"
	"time"
)

// readyCheckTimeout bounds how long a readiness probe waits on dependencies.
const readyCheckTimeout = 5 * time.Second

// HealthChecker is implemented by dependencies that can report their health.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthResponse is the response body for health and readiness probes.
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// HealthHandlers serves liveness and readiness probes.
type HealthHandlers struct {
	checkers map[string]HealthChecker
}

// NewHealthHandlers creates health handlers over the given named dependency
// checkers. A nil or empty map is fine; readiness then only reports the
// process itself.
func NewHealthHandlers(checkers map[string]HealthChecker) *HealthHandlers {
	return &HealthHandlers{checkers: checkers}
}

// Health is the liveness probe. It always reports ok while the process is
// serving requests.
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	})
}

// Ready is the readiness probe. It checks every registered dependency and
// reports 503 when any of them fails.
func (h *HealthHandlers) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
	defer cancel()

	checks := make(map[string]string, len(h.checkers))
	healthy := true
	for name, checker := range h.checkers {
		if err := checker.HealthCheck(ctx); err != nil {
			checks[name] = "unhealthy: " + err.Error()
			healthy = false
			continue
		}
		checks[name] = "ok"
	}

	status := http.StatusOK
	resp := HealthResponse{
		Status:    "ready",
		Checks:    checks,
		Timestamp: time.Now().UTC(),
	}
	if !healthy {
		status = http.StatusServiceUnavailable
		resp.Status = "not ready"
	}
	writeJSON(w, status, resp)
}
