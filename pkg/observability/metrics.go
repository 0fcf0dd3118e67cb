package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics recorded by an analysis
type Metrics struct {
	// Scan metrics
	FilesScannedTotal      prometheus.Counter
	FilesSkippedTotal      prometheus.Counter
	FileReadFailuresTotal  prometheus.Counter
	ImportCacheHitsTotal   prometheus.Counter
	ImportCacheMissesTotal prometheus.Counter

	// Graph metrics
	GraphPackages prometheus.Gauge
	GraphEdges    prometheus.Gauge

	// Result metrics
	CyclesFound      prometheus.Gauge
	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
}

// NewMetrics creates all metrics and registers them with registry
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		FilesScannedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pkgcycle_files_scanned_total",
			Help: "Total number of compilation units scanned",
		}),
		FilesSkippedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pkgcycle_files_skipped_total",
			Help: "Compilation units skipped because their package is excluded or the default package",
		}),
		FileReadFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pkgcycle_file_read_failures_total",
			Help: "Compilation units that could not be read and contributed no edges",
		}),
		ImportCacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pkgcycle_import_cache_hits_total",
			Help: "Parse results served from the import cache",
		}),
		ImportCacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pkgcycle_import_cache_misses_total",
			Help: "Files parsed because the import cache had no valid entry",
		}),
		GraphPackages: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pkgcycle_graph_packages",
			Help: "Declaring packages in the last dependency graph",
		}),
		GraphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pkgcycle_graph_edges",
			Help: "Distinct package edges in the last dependency graph",
		}),
		CyclesFound: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pkgcycle_cycles_found",
			Help: "Cycles reported by the last analysis",
		}),
		AnalysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pkgcycle_analyses_total",
				Help: "Analyses run, by outcome",
			},
			[]string{"status"},
		),
		AnalysisDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pkgcycle_analysis_duration_seconds",
				Help:    "Duration of analysis phases in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 9),
			},
			[]string{"phase"},
		),
	}

	if registry != nil {
		registry.MustRegister(
			m.FilesScannedTotal,
			m.FilesSkippedTotal,
			m.FileReadFailuresTotal,
			m.ImportCacheHitsTotal,
			m.ImportCacheMissesTotal,
			m.GraphPackages,
			m.GraphEdges,
			m.CyclesFound,
			m.AnalysesTotal,
			m.AnalysisDuration,
		)
	}

	return m
}

// RecordPhase records how long an analysis phase took
func (m *Metrics) RecordPhase(phase string, d time.Duration) {
	if m == nil {
		return
	}
	m.AnalysisDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// RecordScan records per-file extraction outcomes
func (m *Metrics) RecordScan(scanned, skipped, readFailures int) {
	if m == nil {
		return
	}
	m.FilesScannedTotal.Add(float64(scanned))
	m.FilesSkippedTotal.Add(float64(skipped))
	m.FileReadFailuresTotal.Add(float64(readFailures))
}

// RecordCacheLookup records one import cache lookup
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.ImportCacheHitsTotal.Inc()
	} else {
		m.ImportCacheMissesTotal.Inc()
	}
}

// RecordGraph records the size of the dependency graph
func (m *Metrics) RecordGraph(packages, edges int) {
	if m == nil {
		return
	}
	m.GraphPackages.Set(float64(packages))
	m.GraphEdges.Set(float64(edges))
}

// RecordResult records the outcome of an analysis
func (m *Metrics) RecordResult(status string, cycles int) {
	if m == nil {
		return
	}
	m.CyclesFound.Set(float64(cycles))
	m.AnalysesTotal.WithLabelValues(status).Inc()
}

// WriteTextfile writes every metric in gatherer to path in the Prometheus
// text exposition format. The file is replaced atomically.
func WriteTextfile(gatherer prometheus.Gatherer, path string) error {
	return prometheus.WriteToTextfile(path, gatherer)
}
