// Package metrics holds the Prometheus collectors for the Stay Planner API and
// alert sweep. A nil *Metrics is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups every collector the application records.
type Metrics struct {
	// Calculation latency by kind: schengen, forecast, availability, residency, ...
	CalcLatency *prometheus.HistogramVec

	// Remaining Schengen days seen by status calculations.
	RemainingDays prometheus.Histogram

	// Trips rejected for overlapping another trip.
	TripConflicts prometheus.Counter

	// Alert sweep outcomes: sent, duplicate, skipped, error.
	AlertOutcomes *prometheus.CounterVec

	// HTTP requests by method, route pattern and status code.
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec
}

// New registers all collectors with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CalcLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stayplanner_calculation_duration_seconds",
			Help:    "Duration of compliance calculations including trip loading",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"calc"}),

		RemainingDays: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "stayplanner_schengen_remaining_days",
			Help:    "Remaining Schengen days returned by status calculations",
			Buckets: []float64{0, 3, 7, 15, 30, 45, 60, 75, 90},
		}),

		TripConflicts: f.NewCounter(prometheus.CounterOpts{
			Name: "stayplanner_trip_conflicts_total",
			Help: "Trips rejected because they overlap an existing trip",
		}),

		AlertOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "stayplanner_alerts_total",
			Help: "Alert sweep outcomes per user",
		}, []string{"outcome"}),

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "stayplanner_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		HTTPLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stayplanner_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// ObserveCalc records how long one calculation took.
func (m *Metrics) ObserveCalc(calc string, d time.Duration) {
	if m != nil {
		m.CalcLatency.WithLabelValues(calc).Observe(d.Seconds())
	}
}

// ObserveRemaining records the remaining allowance of a status result.
func (m *Metrics) ObserveRemaining(days int) {
	if m != nil {
		m.RemainingDays.Observe(float64(days))
	}
}

// IncTripConflict counts one rejected trip.
func (m *Metrics) IncTripConflict() {
	if m != nil {
		m.TripConflicts.Inc()
	}
}

// IncAlert counts one alert sweep outcome.
func (m *Metrics) IncAlert(outcome string) {
	if m != nil {
		m.AlertOutcomes.WithLabelValues(outcome).Inc()
	}
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.HTTPLatency.WithLabelValues(route).Observe(d.Seconds())
	}
}
