package metrics

import "github.com/prometheus/client_golang/prometheus"

// Picking Prometheus metrics.
var (
	PicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "europa",
			Name:      "picks_total",
			Help:      "Surface pick requests by outcome",
		},
		[]string{"outcome"}, // "hit" / "miss" / "throttled"
	)
)

var pickMetricsRegistered bool

// RegisterPickMetrics registers Prometheus picking metrics. Must be called once from main.
func RegisterPickMetrics() {
	if pickMetricsRegistered {
		return
	}
	prometheus.MustRegister(PicksTotal)
	pickMetricsRegistered = true
}
