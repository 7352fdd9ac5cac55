package models

import "time"

// DateKey is a calendar date (YYYY-MM-DD) derived from a row timestamp.
type DateKey string

// Record is one source row keyed by header name. Cells keep the text the source produced.
type Record map[string]string

// RecordSet is the raw result of one source read.
type RecordSet struct {
	Columns []string // header order
	Records []Record
}

// Empty reports whether the source returned no data rows.
func (rs *RecordSet) Empty() bool { return rs == nil || len(rs.Records) == 0 }

// Row is a normalized record.
type Row struct {
	Timestamp time.Time
	HasTime   bool    // false when the timestamp cell was missing or unparseable
	Date      DateKey // empty when HasTime is false
	Cells     Record
}

// Frame is the read-only table built from a RecordSet.
type Frame struct {
	Columns []string
	Rows    []Row
}

// MetricColumns holds the CE and PE columns plotted for one metric.
type MetricColumns struct {
	Metric string
	CE     []string
	PE     []string
}

// Columns returns the CE or PE group.
func (m MetricColumns) Columns(side Side) []string {
	if side == SidePE {
		return m.PE
	}
	return m.CE
}

// Schema maps every metric to its CE/PE column groups, in metric order.
type Schema struct {
	Metrics []MetricColumns
}

// Lookup returns the column groups of a metric.
func (s Schema) Lookup(metric string) (MetricColumns, bool) {
	for _, m := range s.Metrics {
		if m.Metric == metric {
			return m, true
		}
	}
	return MetricColumns{}, false
}

// YRange is the shared y-axis extent of a metric's CE and PE charts.
type YRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Series is one plotted column: numeric points ordered by time.
type Series struct {
	Name   string
	Times  []time.Time
	Values []float64
}
