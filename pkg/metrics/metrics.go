// Package metrics holds the Prometheus instruments shared across the
// application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// HTTPRequestDuration observes request latency partitioned by method and
// response status. It is registered on the default registerer and exposed
// through the metrics endpoint.
var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint: gochecknoglobals
	Namespace: "stays",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency in seconds.",
	Buckets:   DefaultBuckets,
}, []string{"method", "status"})
