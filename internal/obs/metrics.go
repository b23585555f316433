// Package obs exposes Prometheus metrics for the HTTP surface and the
// connection lifecycle.
package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	connectionTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "connection_transitions_total",
			Help: "Connection lifecycle transitions by outcome.",
		},
		[]string{"transition", "outcome"},
	)

	onboardingCompletions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "onboarding_completions_total",
			Help: "Users whose onboarding reached the completed state.",
		},
	)
)

// Init registers the metrics in the default registry.
func Init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, connectionTransitions, onboardingCompletions)
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordTransition counts one connection lifecycle transition attempt.
// outcome is "ok" or "rejected".
func RecordTransition(transition string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	connectionTransitions.WithLabelValues(transition, outcome).Inc()
}

// RecordOnboardingCompletion counts a completed onboarding.
func RecordOnboardingCompletion() {
	onboardingCompletions.Inc()
}

// Instrument wraps an HTTP handler with request counting and latency.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		status := strconv.Itoa(sw.code)
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
