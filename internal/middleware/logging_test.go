package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func captureLog(t *testing.T, handlerStatus int, errorCode string) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if errorCode != "" {
			SetErrorCode(r.Context(), errorCode)
		}
		w.WriteHeader(handlerStatus)
		_, _ = w.Write([]byte("body"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sitters/search", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log entry %q: %v", buf.String(), err)
	}
	return entry
}

func TestLoggingFields(t *testing.T) {
	entry := captureLog(t, http.StatusOK, "")

	if entry["method"] != "GET" {
		t.Errorf("method = %v, want GET", entry["method"])
	}
	if entry["path"] != "/api/v1/sitters/search" {
		t.Errorf("path = %v", entry["path"])
	}
	if entry["status"] != float64(http.StatusOK) {
		t.Errorf("status = %v, want 200", entry["status"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", entry["level"])
	}
	if _, ok := entry["error_code"]; ok {
		t.Error("error_code present on a 200 response")
	}
}

func TestLoggingLevels(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusBadRequest, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		entry := captureLog(t, tt.status, "")
		if entry["level"] != tt.want {
			t.Errorf("status %d logged at %v, want %v", tt.status, entry["level"], tt.want)
		}
	}
}

func TestLoggingErrorCode(t *testing.T) {
	entry := captureLog(t, http.StatusBadRequest, "validation_error")
	if entry["error_code"] != "validation_error" {
		t.Errorf("error_code = %v, want validation_error", entry["error_code"])
	}
}

func TestSetErrorCodeWithoutMiddleware(t *testing.T) {
	// Must be a silent no-op when the logging middleware is absent.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	SetErrorCode(req.Context(), "orphaned")
}

func TestResponseWriterFirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}
	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusOK)
	if rw.statusCode != http.StatusTeapot {
		t.Errorf("statusCode = %d, want first write (418) to win", rw.statusCode)
	}
}

func TestNewLogger(t *testing.T) {
	if NewLogger("production") == nil || NewLogger("development") == nil {
		t.Fatal("NewLogger returned nil")
	}
}
