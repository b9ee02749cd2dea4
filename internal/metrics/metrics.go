// Package metrics hold Prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobposter",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jobposter",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	// ApplicationsSubmitted counts applications created.
	ApplicationsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jobposter",
			Subsystem: "ledger",
			Name:      "applications_submitted_total",
			Help:      "Total number of applications created.",
		},
	)

	// ApplicationTransitions counts successful status changes by target status.
	ApplicationTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobposter",
			Subsystem: "ledger",
			Name:      "status_transitions_total",
			Help:      "Total number of application status transitions.",
		},
		[]string{"status"},
	)

	// RejectedOperations counts ledger and catalog operations refused, by error kind.
	RejectedOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobposter",
			Subsystem: "ledger",
			Name:      "rejected_operations_total",
			Help:      "Total number of operations rejected by validation, policy or state machine.",
		},
		[]string{"operation", "kind"},
	)

	// JobsPosted counts jobs created.
	JobsPosted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jobposter",
			Subsystem: "catalog",
			Name:      "jobs_posted_total",
			Help:      "Total number of jobs posted.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		ApplicationsSubmitted,
		ApplicationTransitions,
		RejectedOperations,
		JobsPosted,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveRequest record one handled HTTP request.
func ObserveRequest(method, route, status string, seconds float64) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}
