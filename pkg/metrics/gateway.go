package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	GatewayRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "molliepay",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Outbound Mollie API request latency in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "status_code"},
	)

	GatewayRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "molliepay",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Total number of outbound Mollie API requests",
		},
		[]string{"operation", "status_code"},
	)
)

func init() {
	Registry.MustRegister(GatewayRequestDuration, GatewayRequestsTotal)
}
