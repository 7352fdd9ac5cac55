package util

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date key format used across the dashboard.
const DateLayout = "2006-01-02"

// timeLayouts are tried in order. Zone-less layouts parse as UTC wall clock.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	DateLayout,
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	// Sheets en_US display format, month and day unpadded
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

// ParseTime tries the known timestamp layouts and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0).UTC(), true
	}
	return time.Time{}, false
}

// DateOf returns the calendar date of t in its own location, formatted as YYYY-MM-DD.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}
