package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"GreeksBoard/pkg/config"
	xhttp "GreeksBoard/pkg/http"
	applogger "GreeksBoard/pkg/logger"
)

type closer struct {
	name string
	fn   func(ctx context.Context) error
}

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	handler    xhttp.Handler
	httpServer *xhttp.Server
	closers    []closer
}

// New creates a new App serving handler.
func New(cfg *config.Config, log *applogger.Logger, handler xhttp.Handler) *App {
	if log == nil {
		log = applogger.Nop()
	}
	return &App{cfg: cfg, log: log, handler: handler}
}

// OnShutdown registers fn to run after the HTTP server stopped.
// Functions run in reverse registration order.
func (a *App) OnShutdown(name string, fn func(ctx context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

// Server builds the HTTP server on first use.
func (a *App) Server() *xhttp.Server {
	if a.httpServer == nil {
		sc := a.cfg.Server
		if a.cfg.Metrics.Enabled {
			sc.MetricsPath = a.cfg.Metrics.Path
		}
		a.httpServer = xhttp.NewServer(a.handler, sc, a.log)
	}
	return a.httpServer
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Server().Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("dashboard started",
		applogger.String("env", a.cfg.Environment),
		applogger.String("source", a.cfg.Source.Type),
		applogger.Int("port", a.cfg.Server.Port),
	)

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.Shutdown(context.Background())
}

// Shutdown stops the HTTP server and releases every registered resource.
func (a *App) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	var firstErr error
	if a.httpServer != nil {
		if err := a.httpServer.Stop(shutdownCtx); err != nil {
			a.log.Error("http shutdown error", applogger.Error(err))
			firstErr = err
		}
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.fn(shutdownCtx); err != nil {
			a.log.Warn("close error", applogger.String("resource", c.name), applogger.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	a.log.Info("shutdown complete")
	return firstErr
}
