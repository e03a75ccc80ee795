// Package metrics exposes Prometheus collectors for a scrape run.
//
// A run is a short-lived batch job, so collectors live in their own registry
// and are flushed to a node_exporter textfile at the end of the run.
package metrics

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors for one process.
type Metrics struct {
	registry *prometheus.Registry

	rowsExtracted  prometheus.Gauge
	spanFills      prometheus.Counter
	paddedCells    prometheus.Counter
	rowsStored     *prometheus.GaugeVec
	fetchDuration  *prometheus.HistogramVec
	runSuccess     prometheus.Gauge
	lastRunSeconds prometheus.Gauge
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		rowsExtracted: factory.NewGauge(prometheus.GaugeOpts{
			Name: "draftpicks_rows_extracted",
			Help: "Data rows found in the target table on the last run.",
		}),
		spanFills: factory.NewCounter(prometheus.CounterOpts{
			Name: "draftpicks_span_fills_total",
			Help: "Grid slots filled from a pending rowspan.",
		}),
		paddedCells: factory.NewCounter(prometheus.CounterOpts{
			Name: "draftpicks_padded_cells_total",
			Help: "Grid slots padded with an empty string.",
		}),
		rowsStored: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "draftpicks_rows_stored",
			Help: "Rows written by the last successful refresh, labeled by table.",
		}, []string{"table"}),
		fetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "draftpicks_fetch_duration_seconds",
			Help:    "Histogram of source document fetch latencies, labeled by site.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"site"}),
		runSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Name: "draftpicks_run_success",
			Help: "1 if the last run refreshed the store, 0 otherwise.",
		}),
		lastRunSeconds: factory.NewGauge(prometheus.GaugeOpts{
			Name: "draftpicks_last_run_timestamp_seconds",
			Help: "Unix time the last run finished.",
		}),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFetch records how long the source fetch took.
func (m *Metrics) ObserveFetch(rawURL string, d time.Duration) {
	m.fetchDuration.WithLabelValues(SanitizeSite(rawURL)).Observe(d.Seconds())
}

// ObserveGrid records reconstruction counts.
func (m *Metrics) ObserveGrid(rows, spanFills, padded int) {
	m.rowsExtracted.Set(float64(rows))
	m.spanFills.Add(float64(spanFills))
	m.paddedCells.Add(float64(padded))
}

// ObserveStored records a committed refresh.
func (m *Metrics) ObserveStored(table string, rows int) {
	m.rowsStored.WithLabelValues(table).Set(float64(rows))
}

// ObserveRun marks the end of a run.
func (m *Metrics) ObserveRun(success bool, at time.Time) {
	if success {
		m.runSuccess.Set(1)
	} else {
		m.runSuccess.Set(0)
	}
	m.lastRunSeconds.Set(float64(at.Unix()))
}

// WriteTextfile writes every collector in the text exposition format.
// The file is written atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// SanitizeSite sanitizes a URL to extract a lowercase hostname.
// It returns "unknown" if the URL is invalid.
func SanitizeSite(rawURL string) string {
	if !strings.HasPrefix(rawURL, "http") {
		rawURL = "http://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.ToLower(u.Hostname())
}
