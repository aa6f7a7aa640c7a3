// Package observability provides Prometheus metrics for batch monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the backtest batch metrics. Each instance carries its own
// registry so parallel test runners never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	// Batch metrics
	AssetsProcessed    prometheus.Counter
	AssetsFaulted      prometheus.Counter
	AssetsQualified    *prometheus.CounterVec
	PositionsSimulated *prometheus.CounterVec
	PositionsPersisted prometheus.Counter

	// Latency metrics
	AssetDuration prometheus.Histogram
	BatchDuration prometheus.Histogram
}

// NewMetrics creates a Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "solana_launch_backtest"
	}

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		AssetsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "assets_processed_total",
			Help:      "Total number of launches replayed to completion",
		}),
		AssetsFaulted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "assets_faulted_total",
			Help:      "Total number of launches skipped after a fault",
		}),
		AssetsQualified: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "assets_qualified_total",
			Help:      "Total number of launches whose score qualified, by bracket",
		}, []string{"bracket"}),
		PositionsSimulated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "positions_simulated_total",
			Help:      "Total number of simulated positions by strategy",
		}, []string{"strategy"}),
		PositionsPersisted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "positions_persisted_total",
			Help:      "Total number of positions written to storage",
		}),

		AssetDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "asset_duration_seconds",
			Help:      "Per-asset replay duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "duration_seconds",
			Help:      "Whole-batch duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr. Blocks until the listener fails.
func (m *Metrics) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return http.ListenAndServe(addr, mux)
}
