package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"GreeksBoard/internal/domain/models"
	drepo "GreeksBoard/internal/domain/repository"
	"GreeksBoard/internal/service/charts"
	applogger "GreeksBoard/pkg/logger"
	"GreeksBoard/pkg/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// MessageNoData is shown when the source holds no rows at all.
const MessageNoData = "No historical data found in Google Sheets yet."

var (
	ErrSource        = errors.New("fetch records")
	ErrNoData        = errors.New("no data")
	ErrNoRows        = errors.New("no rows for date")
	ErrUnknownMetric = errors.New("unknown metric")
	ErrNoColumns     = errors.New("no columns for metric side")
)

// NoRowsMessage is shown when the selected date has no rows.
func NoRowsMessage(date models.DateKey) string {
	return fmt.Sprintf("No data found for %s", date)
}

// DashboardConfig holds the presentation settings of the dashboard.
type DashboardConfig struct {
	Title    string
	MaxDates int
	Metrics  []string
	Captions map[string]string
	Schema   models.Schema // declared columns; metrics not listed are derived from names
}

// Caption returns the display name of a metric.
func (c DashboardConfig) Caption(metric string) string {
	if v := c.Captions[metric]; v != "" {
		return v
	}
	return metric
}

// Export is a rendered CSV download.
type Export struct {
	Filename string
	Date     models.DateKey
	Rows     int
	Data     []byte
}

// Chart is a rendered chart image.
type Chart struct {
	Panel       models.Panel
	ContentType string
	Data        []byte
}

// DashboardUseCase runs the read, normalize, select, classify pipeline once per call.
// Nothing is kept between calls.
type DashboardUseCase struct {
	source   drepo.RecordSource
	events   drepo.EventPublisher
	metrics  drepo.Metrics
	renderer *charts.Renderer
	tracer   *tracing.Provider
	log      *applogger.Logger
	cfg      DashboardConfig
	now      func() time.Time

	mu     sync.Mutex
	closed bool // set by Close; later events are dropped
	wg     sync.WaitGroup
}

// NewDashboardUseCase creates the dashboard pipeline. events and tracer may be nil.
func NewDashboardUseCase(
	source drepo.RecordSource,
	events drepo.EventPublisher,
	metrics drepo.Metrics,
	renderer *charts.Renderer,
	tracer *tracing.Provider,
	log *applogger.Logger,
	cfg DashboardConfig,
) *DashboardUseCase {
	if len(cfg.Metrics) == 0 {
		cfg.Metrics = drepo.DefaultMetrics
	}
	if cfg.MaxDates <= 0 {
		cfg.MaxDates = DefaultMaxDates
	}
	if log == nil {
		log = applogger.Nop()
	}
	return &DashboardUseCase{
		source:   source,
		events:   events,
		metrics:  metrics,
		renderer: renderer,
		tracer:   tracer,
		log:      log,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Config returns the presentation settings.
func (u *DashboardUseCase) Config() DashboardConfig { return u.cfg }

// Build produces the dashboard for the requested date, the most recent date when empty.
// Empty states are reported through Dashboard.Status, not as errors.
func (u *DashboardUseCase) Build(ctx context.Context, requested models.DateKey) (*models.Dashboard, error) {
	ctx, span := u.tracer.Start(ctx, "dashboard.build")
	defer span.End()

	rs, err := u.fetch(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	d := &models.Dashboard{Title: u.cfg.Title, LoadedAt: u.now()}
	if rs.Empty() {
		u.publish(models.DashboardEvent{Type: models.EventSnapshotLoaded})
		d.Status = models.StatusNoData
		d.Message = MessageNoData
		return d, nil
	}

	frame := NormalizeFrame(rs)
	d.Columns = frame.Columns
	d.Dates = AvailableDates(frame, u.cfg.MaxDates)
	u.publish(models.DashboardEvent{Type: models.EventSnapshotLoaded, Rows: len(frame.Rows), Dates: len(d.Dates)})
	selected, listed := SelectDate(d.Dates, requested)
	d.Selected = selected
	d.Rows = []models.Row{}
	if listed {
		d.Rows = FilterByDate(frame, selected)
	}
	span.SetAttributes(
		attribute.Int("rows.total", len(frame.Rows)),
		attribute.Int("dates", len(d.Dates)),
		attribute.String("date", string(d.Selected)),
		attribute.Int("rows.selected", len(d.Rows)),
	)
	u.log.Debug("frame normalized",
		applogger.Strings("columns", frame.Columns),
		applogger.Int("rows", len(frame.Rows)),
		applogger.Int("dates", len(d.Dates)),
		applogger.String("date", string(d.Selected)),
		applogger.Int("selected", len(d.Rows)),
	)

	if len(d.Rows) == 0 {
		d.Status = models.StatusNoRows
		if d.Selected == "" {
			// rows exist but none has a usable timestamp
			d.Status = models.StatusNoData
			d.Message = MessageNoData
			return d, nil
		}
		d.Message = NoRowsMessage(d.Selected)
		return d, nil
	}

	d.Status = models.StatusOK
	d.ExportName = ExportFilename(d.Selected)
	d.Panels = u.panels(frame.Columns, d.Rows)
	return d, nil
}

func (u *DashboardUseCase) panels(columns []string, rows []models.Row) []models.Panel {
	schema := ResolveSchema(u.cfg.Schema, columns, u.cfg.Metrics)
	panels := make([]models.Panel, 0, 2*len(schema.Metrics))
	for _, mc := range schema.Metrics {
		if len(mc.CE) == 0 && len(mc.PE) == 0 {
			continue
		}
		caption := u.cfg.Caption(mc.Metric)
		shared := YRange(rows, append(append([]string{}, mc.CE...), mc.PE...))
		for _, side := range models.Sides {
			cols := mc.Columns(side)
			if len(cols) == 0 {
				continue
			}
			panels = append(panels, models.Panel{
				Metric:  mc.Metric,
				Caption: caption,
				Side:    side,
				Title:   fmt.Sprintf("%s %s Time Series", side.Label(), caption),
				Columns: cols,
				YRange:  shared,
				Series:  BuildSeries(rows, cols),
			})
		}
	}
	return panels
}

// Export renders the selected date's rows as CSV.
func (u *DashboardUseCase) Export(ctx context.Context, requested models.DateKey) (*Export, error) {
	d, err := u.Build(ctx, requested)
	if err != nil {
		return nil, err
	}
	if err := emptyErr(d); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, d.Columns, d.Rows); err != nil {
		u.metrics.RecordError("export")
		return nil, err
	}
	u.metrics.RecordExport(len(d.Rows))
	u.publish(models.DashboardEvent{Type: models.EventExportServed, Date: d.Selected, Rows: len(d.Rows)})

	return &Export{Filename: d.ExportName, Date: d.Selected, Rows: len(d.Rows), Data: buf.Bytes()}, nil
}

// Chart renders one (metric, side) chart of the selected date.
func (u *DashboardUseCase) Chart(ctx context.Context, requested models.DateKey, metric string, side models.Side, format charts.Format) (*Chart, error) {
	metric = drepo.NormalizeMetric(metric)
	if !drepo.IsKnownMetric(u.cfg.Metrics, metric) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, metric)
	}

	d, err := u.Build(ctx, requested)
	if err != nil {
		return nil, err
	}
	if err := emptyErr(d); err != nil {
		return nil, err
	}

	for _, p := range d.Panels {
		if p.Metric != metric || p.Side != side {
			continue
		}
		data, err := u.RenderPanel(p, format)
		if err != nil {
			return nil, err
		}
		return &Chart{Panel: p, ContentType: format.ContentType(), Data: data}, nil
	}
	return nil, fmt.Errorf("%w: %s %s", ErrNoColumns, side, metric)
}

// RenderPanel draws a panel built by Build.
func (u *DashboardUseCase) RenderPanel(p models.Panel, format charts.Format) ([]byte, error) {
	data, err := u.renderer.RenderBytes(charts.Spec{
		Title:  p.Title,
		XLabel: "Time",
		YLabel: p.Caption,
		Series: p.Series,
		YRange: p.YRange,
	}, format)
	if err != nil {
		if !errors.Is(err, charts.ErrNoPoints) {
			u.metrics.RecordError("chart")
		}
		return nil, err
	}
	u.metrics.RecordChart(p.Metric, string(p.Side))
	return data, nil
}

// Close stops accepting events and waits for in-flight publishing.
func (u *DashboardUseCase) Close() {
	u.mu.Lock()
	u.closed = true
	u.mu.Unlock()
	u.wg.Wait()
}

func (u *DashboardUseCase) fetch(ctx context.Context) (*models.RecordSet, error) {
	ctx, span := u.tracer.Start(ctx, "dashboard.fetch")
	defer span.End()

	start := time.Now()
	rs, err := u.source.Fetch(ctx)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		u.metrics.RecordError("source")
		fields := []applogger.Field{
			applogger.String("source", u.source.Name()),
			applogger.Duration("duration_ms", elapsed),
			applogger.Error(err),
		}
		if traceID, _, ok := tracing.IDs(ctx); ok {
			fields = append(fields, applogger.String("trace_id", traceID))
		}
		u.log.Error("fetch records failed", fields...)
		return nil, fmt.Errorf("%w: %w", ErrSource, err)
	}
	if rs == nil {
		rs = &models.RecordSet{}
	}

	u.metrics.RecordFetch(u.source.Name(), len(rs.Records), elapsed.Seconds())
	u.log.Info("records fetched",
		applogger.String("source", u.source.Name()),
		applogger.Int("rows", len(rs.Records)),
		applogger.Int("columns", len(rs.Columns)),
		applogger.Duration("duration_ms", elapsed),
	)
	span.SetAttributes(attribute.Int("rows", len(rs.Records)))
	return rs, nil
}

// publish sends ev in the background; failures are logged only.
func (u *DashboardUseCase) publish(ev models.DashboardEvent) {
	if u.events == nil {
		return
	}
	ev.ID = uuid.NewString()
	ev.Source = u.source.Name()
	ev.At = u.now().UTC()

	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		u.log.Debug("event dropped after close", applogger.String("type", ev.Type))
		return
	}
	u.wg.Add(1)
	u.mu.Unlock()

	go func() {
		defer u.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := u.events.Publish(ctx, ev); err != nil {
			u.metrics.RecordError("event")
			u.log.Warn("publish event failed", applogger.String("type", ev.Type), applogger.Error(err))
		}
	}()
}

func emptyErr(d *models.Dashboard) error {
	switch d.Status {
	case models.StatusNoData:
		return fmt.Errorf("%w: %s", ErrNoData, d.Message)
	case models.StatusNoRows:
		return fmt.Errorf("%w: %s", ErrNoRows, d.Message)
	}
	return nil
}
