package models

import "time"

// Status is the outcome of one dashboard pass.
type Status string

const (
	StatusOK     Status = "ok"
	StatusNoData Status = "no_data" // source returned no rows
	StatusNoRows Status = "no_rows" // selected date has no rows
)

// Panel is one (metric, side) chart of the dashboard.
type Panel struct {
	Metric  string
	Caption string
	Side    Side
	Title   string
	Columns []string
	YRange  *YRange // nil when no numeric value exists for the metric
	Series  []Series
}

// Dashboard is the view model produced by one straight-line pass over the source.
// No transport concerns here.
type Dashboard struct {
	Title      string
	Status     Status
	Message    string
	Dates      []DateKey
	Selected   DateKey
	Columns    []string
	Rows       []Row
	Panels     []Panel
	ExportName string
	LoadedAt   time.Time
}

// Event types published to the events topic.
const (
	EventSnapshotLoaded = "snapshot_loaded"
	EventExportServed   = "export_served"
)

// DashboardEvent is a notification about dashboard activity.
type DashboardEvent struct {
	ID     string    `json:"id"`
	Type   string    `json:"type"`
	Source string    `json:"source"`
	Date   DateKey   `json:"date,omitempty"`
	Rows   int       `json:"rows"`
	Dates  int       `json:"dates,omitempty"`
	At     time.Time `json:"at"`
}
