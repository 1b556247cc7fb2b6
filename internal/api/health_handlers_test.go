package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type checkerFunc func(ctx context.Context) error

func (f checkerFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	h := NewHealthHandlers(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
}

func TestReady(t *testing.T) {
	healthy := checkerFunc(func(context.Context) error { return nil })
	broken := checkerFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		checkers   map[string]HealthChecker
		wantStatus int
	}{
		{"no dependencies", nil, http.StatusOK},
		{"all healthy", map[string]HealthChecker{"database": healthy, "redis": healthy}, http.StatusOK},
		{"one unhealthy", map[string]HealthChecker{"database": healthy, "redis": broken}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandlers(tt.checkers)

			req := httptest.NewRequest(http.MethodGet, "/ready", nil)
			rec := httptest.NewRecorder()
			h.Ready(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body)
			}

			var resp HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(resp.Checks) != len(tt.checkers) {
				t.Errorf("got %d checks, want %d", len(resp.Checks), len(tt.checkers))
			}
			if tt.wantStatus == http.StatusServiceUnavailable && resp.Status != "not ready" {
				t.Errorf("status = %q, want \"not ready\"", resp.Status)
			}
		})
	}
}
