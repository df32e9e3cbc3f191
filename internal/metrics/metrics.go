// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPRequests counts handled requests by route template and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "loans",
	Name:      "http_requests_total",
	Help:      "HTTP requests handled, by method, route and status.",
}, []string{"method", "route", "status"})

// HTTPDuration observes request latency by route template.
var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "loans",
	Name:      "http_request_duration_seconds",
	Help:      "HTTP request latency in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route"})

// Calculations counts amortization runs by outcome (ok, rejected).
var Calculations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "loans",
	Name:      "calculations_total",
	Help:      "Loan calculations performed, by outcome.",
}, []string{"outcome"})

// ScenariosPruned counts scenarios removed by the retention job.
var ScenariosPruned = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "loans",
	Name:      "scenarios_pruned_total",
	Help:      "Loan scenarios deleted by the retention job.",
})

const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
)
