package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPRequestsTotal counts handled HTTP requests by method, path and status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "snapfeed_http_requests_total",
		Help: "Total number of HTTP requests handled.",
	},
	[]string{"method", "path", "status"},
)

// HTTPRequestDuration observes request latency by method and path.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "snapfeed_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

// InteractionsTotal counts like/comment/delete operations by kind and outcome.
var InteractionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "snapfeed_interactions_total",
		Help: "Total number of interaction operations.",
	},
	[]string{"kind", "outcome"},
)
