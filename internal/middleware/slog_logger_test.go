package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/stay-planner/internal/middleware"
)

// routedLogger builds a chi router with the logger installed the way main.go
// does it, so the matched route pattern is available to the middleware.
func routedLogger(buf *bytes.Buffer, status int) http.Handler {
	logger := slog.New(slog.NewJSONHandler(buf, nil))
	r := chi.NewRouter()
	r.Use(middleware.NewSlogLogger(logger))
	r.Get("/users/{userID}/trips/{tripID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	})
	return r
}

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestSlogLogger_logsRequestFields verifies that the SlogLogger middleware
// writes a structured JSON log line containing method, path, route, status,
// duration, and the request ID placed in context by chi's RequestID middleware.
func TestSlogLogger_logsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	h := routedLogger(&buf, http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/users/abc/trips/7", nil)
	ctx := context.WithValue(req.Context(), chimiddleware.RequestIDKey, "test-req-id")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	entry := logLine(t, &buf)
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/users/abc/trips/7", entry["path"])
	assert.Equal(t, "/users/{userID}/trips/{tripID}", entry["route"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
	assert.Equal(t, "test-req-id", entry["request_id"])
	assert.NotNil(t, entry["duration_ms"])
}

func TestSlogLogger_serverErrorsLogAtError(t *testing.T) {
	var buf bytes.Buffer
	h := routedLogger(&buf, http.StatusInternalServerError)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/abc/trips/7", nil))

	assert.Equal(t, "ERROR", logLine(t, &buf)["level"])
}

func TestSlogLogger_unmatchedRoute(t *testing.T) {
	var buf bytes.Buffer
	h := routedLogger(&buf, http.StatusOK)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unmatched", logLine(t, &buf)["route"])
}
