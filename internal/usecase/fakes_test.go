package usecase

import (
	"context"
	"sync"

	"GreeksBoard/internal/domain/models"
)

type fakeSource struct {
	rs    *models.RecordSet
	err   error
	calls int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Fetch(context.Context) (*models.RecordSet, error) {
	f.calls++
	return f.rs, f.err
}

type fakeMetrics struct {
	mu      sync.Mutex
	fetches int
	errors  map[string]int
	exports int
	charts  map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{errors: map[string]int{}, charts: map[string]int{}}
}

func (m *fakeMetrics) RecordFetch(string, int, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}

func (m *fakeMetrics) RecordExport(int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exports++
}

func (m *fakeMetrics) RecordChart(metric, side string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.charts[metric+"/"+side]++
}

type fakePublisher struct {
	mu     sync.Mutex
	events []models.DashboardEvent
}

func (p *fakePublisher) Publish(_ context.Context, ev models.DashboardEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

// recordSet builds a record set from a header and rows of cells.
func recordSet(columns []string, rows ...[]string) *models.RecordSet {
	rs := &models.RecordSet{Columns: columns}
	for _, row := range rows {
		rec := models.Record{}
		for i, c := range columns {
			if i < len(row) {
				rec[c] = row[i]
			} else {
				rec[c] = ""
			}
		}
		rs.Records = append(rs.Records, rec)
	}
	return rs
}
