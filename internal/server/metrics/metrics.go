// Package metrics holds the Prometheus collectors of the auth server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for AuthRequests.
const (
	OutcomeSuccess            = "success"
	OutcomeValidationError    = "validation_error"
	OutcomeConflict           = "conflict"
	OutcomeNotFound           = "not_found"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeForbidden          = "forbidden"
	OutcomeUnauthorized       = "unauthorized"
	OutcomeError              = "error"
)

// AuthRequests counts auth operations by operation name and outcome.
var AuthRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gophauth_auth_requests_total",
		Help: "Total number of authentication requests",
	},
	[]string{"operation", "outcome"},
)

// HTTPRequestDuration observes request latency per route.
var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "gophauth_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)

// RegisterMetrics registers the collectors with reg. Panics on duplicate
// registration, following prometheus convention.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(AuthRequests)
	reg.MustRegister(HTTPRequestDuration)
}

func RecordAuth(operation, outcome string) {
	AuthRequests.WithLabelValues(operation, outcome).Inc()
}

func RecordHTTPRequest(method, route, status string, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}
