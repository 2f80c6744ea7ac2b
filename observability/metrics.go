package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PoolMetrics records pool operation activity for scraping.
type PoolMetrics struct {
	operations     *prometheus.CounterVec
	oracleFailures *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

var (
	poolMetricsOnce sync.Once
	poolRegistry    *PoolMetrics
)

// Pool returns the lazily-initialised metrics registry used to record pool
// engine activity.
func Pool() *PoolMetrics {
	poolMetricsOnce.Do(func() {
		poolRegistry = &PoolMetrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "anchor",
				Subsystem: "pool",
				Name:      "operations_total",
				Help:      "Total pool operations segmented by operation and outcome.",
			}, []string{"op", "outcome"}),
			oracleFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "anchor",
				Subsystem: "pool",
				Name:      "oracle_failures_total",
				Help:      "Total rejected price-feed fetches segmented by feed.",
			}, []string{"feed"}),
			latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "anchor",
				Subsystem: "pool",
				Name:      "operation_duration_seconds",
				Help:      "Latency distribution for pool operations.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"op"}),
		}
		prometheus.MustRegister(
			poolRegistry.operations,
			poolRegistry.oracleFailures,
			poolRegistry.latency,
		)
	})
	return poolRegistry
}

// RecordOperation counts one operation outcome and observes its latency.
func (m *PoolMetrics) RecordOperation(op, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, outcome).Inc()
	m.latency.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordOracleFailure counts one rejected feed fetch.
func (m *PoolMetrics) RecordOracleFailure(feed string) {
	if m == nil {
		return
	}
	m.oracleFailures.WithLabelValues(feed).Inc()
}
