package metrics

import "github.com/prometheus/client_golang/prometheus"

// Sync and search pipeline metrics.
var (
	SyncProductsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prodsearch",
			Name:      "sync_products_total",
			Help:      "Products processed by sync cycles",
		},
		[]string{"result"}, // "indexed" / "skipped"
	)

	SyncDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "prodsearch",
			Name:      "sync_duration_seconds",
			Help:      "Full sync cycle duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prodsearch",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"status"}, // "success" / "error"
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers sync and search metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(SyncProductsTotal)
	prometheus.MustRegister(SyncDuration)
	prometheus.MustRegister(SearchRequestsTotal)
	pipelineMetricsRegistered = true
}
