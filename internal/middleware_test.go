package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoggingMiddleware_SetsRequestID(t *testing.T) {
	lm := NewLoggingMiddleware(createTestLogger(), nil)

	var seenID string
	handler := lm.Handler(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/player", nil)
	w := httptest.NewRecorder()

	handler(w, req)

	if seenID == "" {
		t.Error("expected request id in context")
	}
}

func TestLoggingMiddleware_SetsStartTime(t *testing.T) {
	lm := NewLoggingMiddleware(createTestLogger(), nil)

	var start time.Time
	handler := lm.Handler(func(w http.ResponseWriter, r *http.Request) {
		start = GetStartTime(r.Context())
	})

	req := httptest.NewRequest("GET", "/player", nil)
	handler(httptest.NewRecorder(), req)

	if start.IsZero() {
		t.Error("expected start time in context")
	}
}

func TestLoggingMiddleware_RecordsMetrics(t *testing.T) {
	metrics := NewMetricsCollector(createTestLogger())
	lm := NewLoggingMiddleware(createTestLogger(), metrics)

	handler := lm.Handler(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest("GET", "/player", nil)
	handler(httptest.NewRecorder(), req)

	metrics.mu.RLock()
	defer metrics.mu.RUnlock()

	if metrics.requestCount["/player"] != 1 {
		t.Errorf("expected 1 request recorded, got %d", metrics.requestCount["/player"])
	}
	if metrics.apiErrors["/player"] != 1 {
		t.Errorf("expected 1 error recorded, got %d", metrics.apiErrors["/player"])
	}
}

func TestResponseWriter_CapturesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusTeapot)

	if rw.statusCode != http.StatusTeapot {
		t.Errorf("expected captured status 418, got %d", rw.statusCode)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected forwarded status 418, got %d", rec.Code)
	}
}

func TestGetRequestID_Missing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	if id := GetRequestID(req.Context()); id != "" {
		t.Errorf("expected empty request id, got %s", id)
	}
}
