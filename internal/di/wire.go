//go:build wireinject
// +build wireinject

package di

import (
	"GreeksBoard/pkg/config"
	"GreeksBoard/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideTracer,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideCache,
		ProvideKafkaProducer,

		// Repositories
		ProvideCredentialLoader,
		ProvideRecordSource,
		ProvideEventPublisher,

		// Use cases
		ProvideRenderer,
		ProvideDashboardConfig,
		ProvideDashboardUseCase,

		// HTTP
		ProvideRateLimiter,
		ProvideHandlers,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
