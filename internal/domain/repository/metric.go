package repository

import "strings"

// DefaultMetrics are the greek metrics plotted when none are configured.
var DefaultMetrics = []string{"ltp", "delta", "gamma", "theta"}

// IsKnownMetric returns true if metric is one of the configured metrics.
func IsKnownMetric(metrics []string, metric string) bool {
	for _, m := range metrics {
		if m == metric {
			return true
		}
	}
	return false
}

// NormalizeMetric converts raw input to a metric name (lower case, trimmed).
func NormalizeMetric(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
