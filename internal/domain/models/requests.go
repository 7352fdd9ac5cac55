package models

// Requests for dashboard HTTP endpoints. Defined in domain for consistency and reuse.

type DashboardRequest struct {
	Date string `query:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type ChartRequest struct {
	Metric string `param:"metric" json:"metric" validate:"required,max=32"`
	Side   string `param:"side" json:"side" validate:"required,oneof=ce pe CE PE"`
	Date   string `query:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
	Format string `query:"format" json:"format" default:"png" validate:"oneof=png svg"`
}
