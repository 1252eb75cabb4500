// Package metrics provides Prometheus instrumentation for the prop engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// LegEvaluations counts leg evaluations by outcome
	// (ok, not_found, invalid, error).
	LegEvaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prop_leg_evaluations_total",
		Help: "Total number of leg evaluations",
	}, []string{"outcome"})

	// LegLatency tracks leg evaluation latency.
	LegLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "prop_leg_evaluation_seconds",
		Help:    "Leg evaluation latency in seconds",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	})

	// InsufficientData counts legs scored with the fallback std.
	InsufficientData = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prop_insufficient_data_total",
		Help: "Legs scored with the coefficient-of-variation fallback",
	})

	// Parlays counts composed parlays by recommendation.
	Parlays = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prop_parlays_total",
		Help: "Total number of parlays composed",
	}, []string{"recommendation"})

	// ParlayLegs observes the number of legs per parlay request.
	ParlayLegs = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "prop_parlay_legs",
		Help:    "Legs per parlay request",
		Buckets: prometheus.LinearBuckets(1, 1, 10),
	})

	// IngestedRecords counts game records ingested from Kafka.
	IngestedRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prop_ingested_game_records_total",
		Help: "Game records ingested",
	})

	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prop_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "prop_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request metrics. pathLabel maps a request to a
// low-cardinality label (e.g. the matched route pattern).
func Middleware(pathLabel func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrapped, r)
			duration := time.Since(start).Seconds()

			path := pathLabel(r)
			HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
			HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
