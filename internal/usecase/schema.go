package usecase

import (
	"math"
	"sort"
	"strings"

	"GreeksBoard/internal/domain/models"
	"GreeksBoard/pkg/util"
)

// MatchesGroup reports whether column belongs to the side group of metric,
// i.e. matches <SIDE>_*_<metric> with prefix and suffix not overlapping.
func MatchesGroup(column string, side models.Side, metric string) bool {
	prefix := side.Prefix()
	suffix := "_" + metric
	return len(column) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(column, prefix) &&
		strings.HasSuffix(column, suffix)
}

// DeriveSchema groups columns by naming convention, keeping source order.
func DeriveSchema(columns []string, metrics []string) models.Schema {
	s := models.Schema{Metrics: make([]models.MetricColumns, 0, len(metrics))}
	for _, m := range metrics {
		s.Metrics = append(s.Metrics, deriveMetric(columns, m))
	}
	return s
}

func deriveMetric(columns []string, metric string) models.MetricColumns {
	mc := models.MetricColumns{Metric: metric, CE: []string{}, PE: []string{}}
	for _, c := range columns {
		switch {
		case MatchesGroup(c, models.SideCE, metric):
			mc.CE = append(mc.CE, c)
		case MatchesGroup(c, models.SidePE, metric):
			mc.PE = append(mc.PE, c)
		}
	}
	return mc
}

// ResolveSchema maps every metric to the columns plotted for it.
// A metric present in declared uses its declared columns that exist in the frame, in declared order;
// other metrics fall back to DeriveSchema.
func ResolveSchema(declared models.Schema, columns []string, metrics []string) models.Schema {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}
	keep := func(cols []string) []string {
		out := make([]string, 0, len(cols))
		for _, c := range cols {
			if _, ok := present[c]; ok {
				out = append(out, c)
			}
		}
		return out
	}

	s := models.Schema{Metrics: make([]models.MetricColumns, 0, len(metrics))}
	for _, m := range metrics {
		if d, ok := declared.Lookup(m); ok {
			s.Metrics = append(s.Metrics, models.MetricColumns{Metric: m, CE: keep(d.CE), PE: keep(d.PE)})
			continue
		}
		s.Metrics = append(s.Metrics, deriveMetric(columns, m))
	}
	return s
}

// YRange returns the min and max over all numeric cells of columns.
// Blank and non-numeric cells are skipped; nil means there was no value at all.
func YRange(rows []models.Row, columns []string) *models.YRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	found := false
	for _, r := range rows {
		for _, c := range columns {
			v, ok := util.ParseFloat(r.Cells[c])
			if !ok {
				continue
			}
			found = true
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if !found {
		return nil
	}
	return &models.YRange{Min: lo, Max: hi}
}

// BuildSeries extracts one time-ordered series per column. Rows without time and
// non-numeric cells contribute no point.
func BuildSeries(rows []models.Row, columns []string) []models.Series {
	timed := make([]models.Row, 0, len(rows))
	for _, r := range rows {
		if r.HasTime {
			timed = append(timed, r)
		}
	}
	sort.SliceStable(timed, func(i, j int) bool { return timed[i].Timestamp.Before(timed[j].Timestamp) })

	out := make([]models.Series, 0, len(columns))
	for _, c := range columns {
		s := models.Series{Name: c}
		for _, r := range timed {
			v, ok := util.ParseFloat(r.Cells[c])
			if !ok {
				continue
			}
			s.Times = append(s.Times, r.Timestamp)
			s.Values = append(s.Values, v)
		}
		out = append(out, s)
	}
	return out
}
