// Package metrics holds the Prometheus collectors exported on the metrics listener.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bakery",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bakery",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	GateDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bakery",
		Name:      "access_gate_decisions_total",
		Help:      "Access gate outcomes.",
	}, []string{"outcome"})

	AssetOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bakery",
		Name:      "asset_operations_total",
		Help:      "Image asset store/delete operations by result.",
	}, []string{"op", "result"})

	SessionsSwept = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bakery",
		Name:      "sessions_swept_total",
		Help:      "Expired session tokens removed by the sweeper.",
	})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
