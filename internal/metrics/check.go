package metrics

import "github.com/prometheus/client_golang/prometheus"

// Similarity-check Prometheus metrics.
var (
	CheckRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "titledex",
			Name:      "check_requests_total",
			Help:      "Total number of similarity checks",
		},
		[]string{"corpus", "status"},
	)

	CheckDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "titledex",
			Name:      "check_duration_seconds",
			Help:      "Similarity check duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"corpus"},
	)

	CheckRiskTierTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "titledex",
			Name:      "check_risk_tier_total",
			Help:      "Check outcomes by risk tier",
		},
		[]string{"corpus", "tier"},
	)

	CorpusSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "titledex",
			Name:      "corpus_size",
			Help:      "Number of titles in a stored corpus",
		},
		[]string{"corpus"},
	)

	CorpusLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "titledex",
			Name:      "corpus_loads_total",
			Help:      "Total corpus replacements by source",
		},
		[]string{"corpus", "source"}, // "csv" / "url" / "defaults"
	)

	StatsCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "titledex",
			Name:      "stats_cache_total",
			Help:      "Dashboard stats cache lookups by result",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var checkMetricsRegistered bool

// RegisterCheckMetrics registers Prometheus check metrics. Must be called once from main.
func RegisterCheckMetrics() {
	if checkMetricsRegistered {
		return
	}
	prometheus.MustRegister(CheckRequestsTotal)
	prometheus.MustRegister(CheckDuration)
	prometheus.MustRegister(CheckRiskTierTotal)
	prometheus.MustRegister(CorpusSize)
	prometheus.MustRegister(CorpusLoadsTotal)
	prometheus.MustRegister(StatsCacheTotal)
	checkMetricsRegistered = true
}
