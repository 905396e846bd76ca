package metrics

import "github.com/prometheus/client_golang/prometheus"

// Namespace prefixes every pokedex metric.
const Namespace = "pokedex"

// Upstream source and roster cache metrics.
var (
	SourceRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "source_requests_total",
			Help:      "GraphQL source requests by operation and outcome",
		},
		[]string{"operation", "status"}, // status: ok / network / data / not_found
	)

	SourceRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "source_request_duration_seconds",
			Help:      "GraphQL source request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	RosterCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "roster_cache_total",
			Help:      "Roster cache lookups by tier and result",
		},
		[]string{"tier", "result"}, // tier: local / remote; result: hit / miss / error
	)

	RosterSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "roster_size",
			Help:      "Number of creatures in the last fetched roster",
		},
	)
)

var rosterMetricsRegistered bool

// RegisterRosterMetrics registers source and cache metrics. Must be called once from main.
func RegisterRosterMetrics() {
	if rosterMetricsRegistered {
		return
	}
	prometheus.MustRegister(SourceRequestsTotal)
	prometheus.MustRegister(SourceRequestDuration)
	prometheus.MustRegister(RosterCacheTotal)
	prometheus.MustRegister(RosterSize)
	rosterMetricsRegistered = true
}
