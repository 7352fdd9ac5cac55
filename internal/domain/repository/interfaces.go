package repository

import (
	"context"

	"GreeksBoard/internal/domain/models"
)

// RecordSource reads the full greeks record set in one call.
type RecordSource interface {
	Name() string
	Fetch(ctx context.Context) (*models.RecordSet, error)
}

// EventPublisher publishes dashboard activity events.
type EventPublisher interface {
	Publish(ctx context.Context, ev models.DashboardEvent) error
	Close() error
}

type Metrics interface {
	RecordFetch(source string, rows int, seconds float64)
	RecordError(kind string)
	RecordExport(rows int)
	RecordChart(metric string, side string)
}
