//go:build wireinject
// +build wireinject

package di

import (
	"MarketIntel/pkg/config"
	"MarketIntel/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideRedisClient,
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaPublisher,
		ProvideEventPublisher,

		// Repositories
		ProvideCompetitorStore,
		ProvideTrendStore,
		ProvideMentionStore,
		ProvideReportStore,
		ProvideCache,

		// Use cases
		ProvideEmbeddingPool,
		ProvideEventProcessor,
		ProvideMarketAnalyzer,
		ProvideCompetitorService,

		// Transport
		ProvideLimiter,
		ProvideHandlers,
		ProvideHTTPServer,
		ProvideKafkaConsumer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}

// InitializeTrendTool wires the trend store for the import command.
func InitializeTrendTool(cfg *config.Config) (*TrendTool, error) {
	wire.Build(
		ProvideRedisClient,
		ProvideTrendStore,
		ProvideTrendTool,
	)
	return &TrendTool{}, nil
}
