package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "woest_sondes"

// Metrics holds the Prometheus counters, histograms, and gauges for a conversion run.
type Metrics struct {
	FilesDiscovered prometheus.Counter
	FilesConverted  prometheus.Counter
	FilesFailed     *prometheus.CounterVec // labels: stage={extract,transform,load}
	RowsWritten     prometheus.Counter
	RowsDropped     prometheus.Counter
	RunInProgress   prometheus.Gauge

	FileDuration prometheus.Histogram
	ProfileRows  prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics creates pipeline metrics registered with a dedicated registry.
// A batch run has no scrape endpoint; WriteTextfile flushes the registry to disk.
func NewMetrics() *Metrics {
	m := newMetrics()
	m.registry.MustRegister(
		m.FilesDiscovered,
		m.FilesConverted,
		m.FilesFailed,
		m.RowsWritten,
		m.RowsDropped,
		m.RunInProgress,
		m.FileDuration,
		m.ProfileRows,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can inspect
// collectors with testutil without sharing state.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FilesDiscovered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_discovered_total",
			Help:      "Raw EDT files found by discovery.",
		}),
		FilesConverted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_converted_total",
			Help:      "Raw files written successfully as NetCDF.",
		}),
		FilesFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_failed_total",
			Help:      "Raw files skipped after an error, by failing stage.",
		}, []string{"stage"}),
		RowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_written_total",
			Help:      "Profile samples written along the time dimension.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Data rows discarded for an empty time of day.",
		}),
		RunInProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_in_progress",
			Help:      "1 while a conversion run is active, 0 otherwise.",
		}),
		FileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "file_duration_seconds",
			Help:      "Duration of a single file extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		ProfileRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "profile_rows",
			Help:      "Samples per converted profile.",
			Buckets:   []float64{100, 500, 1000, 2500, 5000, 7500, 10000},
		}),
		registry: prometheus.NewRegistry(),
	}
}

// WriteTextfile writes the registered metrics in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
