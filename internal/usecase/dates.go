package usecase

import (
	"sort"

	"GreeksBoard/internal/domain/models"
)

// DefaultMaxDates caps the date picker.
const DefaultMaxDates = 30

// AvailableDates returns the distinct dates of the frame, most recent first, at most limit of them.
func AvailableDates(f models.Frame, limit int) []models.DateKey {
	if limit <= 0 {
		limit = DefaultMaxDates
	}

	seen := make(map[models.DateKey]struct{})
	dates := make([]models.DateKey, 0)
	for _, r := range f.Rows {
		if r.Date == "" {
			continue
		}
		if _, ok := seen[r.Date]; ok {
			continue
		}
		seen[r.Date] = struct{}{}
		dates = append(dates, r.Date)
	}

	// YYYY-MM-DD sorts chronologically as text
	sort.Slice(dates, func(i, j int) bool { return dates[i] > dates[j] })
	if len(dates) > limit {
		dates = dates[:limit]
	}
	return dates
}

// SelectDate returns the requested date, or the most recent available one when none was asked for.
// ok is false when the result is not one of available, e.g. a date beyond the cap.
func SelectDate(available []models.DateKey, requested models.DateKey) (date models.DateKey, ok bool) {
	if requested == "" {
		if len(available) == 0 {
			return "", false
		}
		return available[0], true
	}
	for _, d := range available {
		if d == requested {
			return requested, true
		}
	}
	return requested, false
}

// FilterByDate returns the rows of date in source order.
func FilterByDate(f models.Frame, date models.DateKey) []models.Row {
	rows := make([]models.Row, 0)
	if date == "" {
		return rows
	}
	for _, r := range f.Rows {
		if r.Date == date {
			rows = append(rows, r)
		}
	}
	return rows
}
