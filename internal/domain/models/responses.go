package models

import "time"

// JSON shapes of the dashboard API.

type DatesResponse struct {
	Dates    []DateKey `json:"dates"`
	Selected DateKey   `json:"selected,omitempty"`
}

type PanelResponse struct {
	Metric  string   `json:"metric"`
	Side    Side     `json:"side"`
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
	YRange  *YRange  `json:"y_range,omitempty"`
	Chart   string   `json:"chart"`
}

type GreeksResponse struct {
	Status   Status              `json:"status"`
	Message  string              `json:"message,omitempty"`
	Date     DateKey             `json:"date,omitempty"`
	Dates    []DateKey           `json:"dates"`
	Columns  []string            `json:"columns"`
	Rows     []map[string]string `json:"rows"`
	Panels   []PanelResponse     `json:"panels"`
	Export   string              `json:"export,omitempty"`
	LoadedAt time.Time           `json:"loaded_at"`
}
