// Package metrics defines the Prometheus metrics of the remy-site server.
//
// Metrics live in a dedicated registry served by [Handler] on /metrics.
// Naming follows Prometheus conventions:
//   - remy_ prefix for all custom metrics
//   - _total suffix for counters
//   - _seconds suffix for duration histograms
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds every metric of the process.
	Registry = prometheus.NewRegistry()

	// AuthDecisionsTotal counts gate decisions by outcome
	// ("allowed", "unauthorized", "forbidden").
	AuthDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remy_auth_decisions_total",
			Help: "Total number of authorization decisions by outcome.",
		},
		[]string{"outcome"},
	)

	// LoginsTotal counts login and registration attempts by result.
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remy_logins_total",
			Help: "Total number of login and registration attempts by result.",
		},
		[]string{"result"},
	)

	// HTTPRequestDurationSeconds is a histogram of handled requests.
	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "remy_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds by method and status code.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "code"},
	)
)

// Login results.
const (
	LoginSucceeded  = "success"
	LoginFailed     = "failure"
	LoginRegistered = "registered"
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		AuthDecisionsTotal,
		LoginsTotal,
		HTTPRequestDurationSeconds,
	)
}

// RecordAuthDecision records one gate decision.
func RecordAuthDecision(outcome string) {
	AuthDecisionsTotal.WithLabelValues(outcome).Inc()
}

// RecordLogin records one login or registration attempt.
func RecordLogin(result string) {
	LoginsTotal.WithLabelValues(result).Inc()
}

// RecordHTTPRequest records a finished request.
func RecordHTTPRequest(method string, status int, duration time.Duration) {
	HTTPRequestDurationSeconds.WithLabelValues(method, strconv.Itoa(status)).Observe(duration.Seconds())
}

// Handler serves [Registry] in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
