package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/stay-planner/internal/metrics"
)

// NewMetricsHandler records a request count and latency per route pattern.
// Labelling by pattern instead of raw path keeps user and trip IDs out of
// the label set.
func NewMetricsHandler(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			m.ObserveHTTP(r.Method, routePattern(r), ww.Status(), time.Since(start))
		})
	}
}
