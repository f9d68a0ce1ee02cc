// Package metrics instruments the cache store and the rate provider with
// Prometheus collectors. A CLI run has no scrape endpoint, so the registry is
// exported in the node_exporter textfile format at the end of the run.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fxconv"

type Metrics struct {
	registry *prometheus.Registry

	CacheReadsTotal         *prometheus.CounterVec
	CacheWritesTotal        *prometheus.CounterVec
	RemoteRequestsTotal     *prometheus.CounterVec
	RemoteRequestDuration   *prometheus.HistogramVec
	LastRunTimestampSeconds prometheus.Gauge
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		CacheReadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_reads_total",
				Help:      "Cache reads by namespace and outcome (hit, miss, corrupted).",
			},
			[]string{"namespace", "outcome"},
		),

		CacheWritesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_writes_total",
				Help:      "Cache writes by namespace and outcome (ok, failed).",
			},
			[]string{"namespace", "outcome"},
		),

		RemoteRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "remote_requests_total",
				Help:      "Requests to the rate service by provider, endpoint and result kind.",
			},
			[]string{"provider", "endpoint", "kind"},
		),

		RemoteRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "remote_request_duration_seconds",
				Help:      "Rate service request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"provider", "endpoint"},
		),

		LastRunTimestampSeconds: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix timestamp of the last completed run.",
			},
		),
	}
}

// WriteTextfile stamps the run time and writes the registry to path.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	m.LastRunTimestampSeconds.SetToCurrentTime()
	return prometheus.WriteToTextfile(path, m.registry)
}
