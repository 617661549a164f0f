// Package metrics registers the site's Prometheus collectors against the
// default registry. They are exposed on GET /metrics.
//
// HTTP metrics are labelled by the gin route template (c.FullPath()), never
// by the raw URL, so query strings such as ?name= cannot grow label cardinality.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route template, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, by method and route template.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// RegistrationsTotal counts submissions by outcome: accepted, invalid, failed.
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Registration submissions, by outcome.",
		},
		[]string{"outcome"},
	)

	// AttendanceRequestsTotal counts outbound calls to the attendance service.
	AttendanceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendance_service_requests_total",
			Help: "Requests sent to the attendance service, by operation and result.",
		},
		[]string{"operation", "result"},
	)
)

const (
	OutcomeAccepted = "accepted"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"

	ResultOK    = "ok"
	ResultError = "error"
)
