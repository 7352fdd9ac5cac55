package di

import (
	"context"
	"fmt"

	"GreeksBoard/internal/domain/models"
	"GreeksBoard/internal/domain/repository"
	"GreeksBoard/internal/handler/api"
	"GreeksBoard/internal/handler/web"
	internalrepo "GreeksBoard/internal/repository"
	"GreeksBoard/internal/service/charts"
	"GreeksBoard/internal/service/credentials"
	"GreeksBoard/internal/service/ratelimit"
	"GreeksBoard/internal/service/sheets"
	"GreeksBoard/internal/usecase"
	"GreeksBoard/pkg/cache"
	pkgch "GreeksBoard/pkg/clickhouse"
	"GreeksBoard/pkg/config"
	xhttp "GreeksBoard/pkg/http"
	pkgkafka "GreeksBoard/pkg/kafka"
	applogger "GreeksBoard/pkg/logger"
	"GreeksBoard/pkg/metrics"
	"GreeksBoard/pkg/server"
	"GreeksBoard/pkg/tracing"

	"github.com/labstack/echo/v4"
)

// Version is reported as the service version on exported spans.
var Version = "dev"

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideTracer creates the span exporter. Disabled tracing yields no-op spans.
func ProvideTracer(cfg *config.Config) (*tracing.Provider, error) {
	p, err := tracing.New(cfg.Tracing, Version)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}
	return p, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCredentialLoader reads the service-account document from the configured variable.
func ProvideCredentialLoader(cfg *config.Config) *credentials.Loader {
	return credentials.NewLoader(cfg.Source.CredentialEnv)
}

// ProvideClickHouseClient creates a ClickHouse client when it is the configured source.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Source.Type != "clickhouse" {
		return nil, nil
	}
	client, err := pkgch.NewClient(cfg.Source.ClickHouse.Config)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideCache creates the snapshot cache. Type none yields nil.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Type {
	case "memory":
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize)), nil
	case "redis":
		c, err := cache.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	default:
		return nil, nil
	}
}

// ProvideRecordSource creates the configured source, wrapped by the snapshot cache when one is set up.
func ProvideRecordSource(
	cfg *config.Config,
	loader *credentials.Loader,
	ch *pkgch.Client,
	c cache.Service,
	l *applogger.Logger,
) (repository.RecordSource, error) {
	var (
		src    repository.RecordSource
		target string
	)
	switch cfg.Source.Type {
	case "clickhouse":
		s, err := internalrepo.NewCHSource(ch, cfg.Source.ClickHouse.Table)
		if err != nil {
			return nil, err
		}
		s.SetLogger(l)
		src, target = s, cfg.Source.ClickHouse.Database+"."+cfg.Source.ClickHouse.Table
	default:
		src = sheets.New(loader, cfg.Source.Sheets.Spreadsheet,
			sheets.WithTimeout(cfg.Source.Timeout),
			sheets.WithLogger(l),
		)
		target = cfg.Source.Sheets.Spreadsheet
	}

	if c == nil || cfg.Cache.TTL <= 0 {
		return src, nil
	}
	return internalrepo.NewCachedSource(src, c, target, cfg.Cache.TTL, l), nil
}

// ProvideKafkaProducer creates a Kafka producer when events are enabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Events.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(cfg.Events.ProducerConfig)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideEventPublisher creates the dashboard event publisher.
func ProvideEventPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.EventPublisher {
	if producer == nil {
		return internalrepo.NoopPublisher{}
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Events.Topic)
}

// ProvideRenderer creates the chart renderer.
func ProvideRenderer(cfg *config.Config) *charts.Renderer {
	return charts.New(cfg.Dashboard.Chart.Width, cfg.Dashboard.Chart.Height)
}

// ProvideDashboardConfig converts the presentation settings and the declared schema.
func ProvideDashboardConfig(cfg *config.Config) usecase.DashboardConfig {
	var schema models.Schema
	for _, m := range cfg.Dashboard.Metrics {
		sides, ok := cfg.Schema[m]
		if !ok {
			continue
		}
		schema.Metrics = append(schema.Metrics, models.MetricColumns{Metric: m, CE: sides.CE, PE: sides.PE})
	}
	return usecase.DashboardConfig{
		Title:    cfg.Dashboard.Title,
		MaxDates: cfg.Dashboard.MaxDates,
		Metrics:  cfg.Dashboard.Metrics,
		Captions: cfg.Dashboard.Captions,
		Schema:   schema,
	}
}

// ProvideDashboardUseCase creates the dashboard pipeline.
func ProvideDashboardUseCase(
	source repository.RecordSource,
	events repository.EventPublisher,
	m repository.Metrics,
	renderer *charts.Renderer,
	tracer *tracing.Provider,
	l *applogger.Logger,
	dc usecase.DashboardConfig,
) *usecase.DashboardUseCase {
	return usecase.NewDashboardUseCase(source, events, m, renderer, tracer, l, dc)
}

// ProvideRateLimiter guards routes that read the source. Disabled yields nil.
func ProvideRateLimiter(cfg *config.Config) echo.MiddlewareFunc {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec).Middleware()
}

// ProvideHandlers registers the page and the JSON API.
func ProvideHandlers(l *applogger.Logger, uc *usecase.DashboardUseCase, limiter echo.MiddlewareFunc) xhttp.Handler {
	return xhttp.Handlers{
		web.NewDashboardHandler(l, uc, limiter),
		api.NewGreeksHandler(l, uc, limiter),
	}
}

// ProvideApp creates the application server and registers resources to release on shutdown.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	h xhttp.Handler,
	uc *usecase.DashboardUseCase,
	events repository.EventPublisher,
	c cache.Service,
	ch *pkgch.Client,
	tracer *tracing.Provider,
) *server.App {
	app := server.New(cfg, l, h)
	app.OnShutdown("tracer", tracer.Shutdown)
	if ch != nil {
		app.OnShutdown("clickhouse", func(context.Context) error { return ch.Close() })
	}
	if c != nil {
		app.OnShutdown("cache", func(context.Context) error { return c.Close() })
	}
	app.OnShutdown("events", func(context.Context) error { return events.Close() })
	// in-flight events finish before the publisher closes
	app.OnShutdown("dashboard", func(context.Context) error { uc.Close(); return nil })
	return app
}
