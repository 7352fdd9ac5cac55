package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchSeconds *prometheus.HistogramVec
	sourceRows   *prometheus.GaugeVec
	errorsTotal  *prometheus.CounterVec
	exportsTotal prometheus.Counter
	exportRows   prometheus.Histogram
	chartsTotal  *prometheus.CounterVec
}

// New creates a recorder registered on the default Prometheus registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder registered on reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		fetchSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "greeksboard_source_fetch_seconds",
				Help:    "Duration of one full read of the record source",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"source"},
		),
		sourceRows: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "greeksboard_source_rows",
				Help: "Rows returned by the last source read",
			},
			[]string{"source"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "greeksboard_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		exportsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "greeksboard_exports_total",
				Help: "CSV exports served",
			},
		),
		exportRows: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "greeksboard_export_rows",
				Help:    "Rows per CSV export",
				Buckets: prometheus.ExponentialBuckets(10, 4, 6),
			},
		),
		chartsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "greeksboard_charts_rendered_total",
				Help: "Charts rendered by metric and side",
			},
			[]string{"metric", "side"},
		),
	}
}

// RecordFetch records one source read.
func (r *Recorder) RecordFetch(source string, rows int, seconds float64) {
	r.fetchSeconds.WithLabelValues(source).Observe(seconds)
	r.sourceRows.WithLabelValues(source).Set(float64(rows))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordExport(rows int) {
	r.exportsTotal.Inc()
	r.exportRows.Observe(float64(rows))
}

func (r *Recorder) RecordChart(metric, side string) {
	r.chartsTotal.WithLabelValues(metric, side).Inc()
}
