package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for extraction and the artifact cache.
type Metrics struct {
	RecordsExtracted     *prometheus.CounterVec   // labels: category
	SheetsSkipped        *prometheus.CounterVec   // labels: category
	CellCoercionWarnings *prometheus.CounterVec   // labels: category
	CoordinateFallbacks  *prometheus.CounterVec   // labels: category
	CacheLookups         *prometheus.CounterVec   // labels: category, result={hit,miss}
	ExtractionDuration   *prometheus.HistogramVec // labels: category
	ArtifactWrites       *prometheus.CounterVec   // labels: category, outcome={success,error}
}

const namespace = "bessdata"

func newMetrics(withHelp bool) *Metrics {
	help := func(s string) string {
		if withHelp {
			return s
		}
		return ""
	}
	return &Metrics{
		RecordsExtracted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_extracted_total",
			Help:      help("Canonical records produced from the workbook."),
		}, []string{"category"}),
		SheetsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sheets_skipped_total",
			Help:      help("Registered sheets skipped because they could not be read."),
		}, []string{"category"}),
		CellCoercionWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cell_coercion_warnings_total",
			Help:      help("Numeric cells that failed coercion and degraded to null."),
		}, []string{"category"}),
		CoordinateFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coordinate_fallbacks_total",
			Help:      help("Records whose coordinates came from the region default."),
		}, []string{"category"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      help("Artifact cache lookups by category and result."),
		}, []string{"category", "result"}),
		ExtractionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_duration_seconds",
			Help:      help("Duration of a workbook extraction for one category."),
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"category"}),
		ArtifactWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifact_writes_total",
			Help:      help("Cache artifact writes by category and outcome."),
		}, []string{"category", "outcome"}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics(true)
	prometheus.MustRegister(
		m.RecordsExtracted,
		m.SheetsSkipped,
		m.CellCoercionWarnings,
		m.CoordinateFallbacks,
		m.CacheLookups,
		m.ExtractionDuration,
		m.ArtifactWrites,
	)
	return m
}

// NewUnregisteredMetrics creates Metrics that are not exported anywhere,
// for callers that do not serve /metrics.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics(true)
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics(false)
}
