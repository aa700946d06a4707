//go:build wireinject
// +build wireinject

package di

import (
	"EconPull/pkg/config"
	"EconPull/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideCache,

		// Repositories
		ProvideDatasetStore,
		ProvidePublisher,
		ProvidePageSource,
		ProvidePriceSource,
		ProvideDetailSource,

		// Services
		ProvideDateTimeResolver,
		ProvideReconstructor,
		ProvideExtractor,

		// Use cases
		ProvideReconstructUseCase,
		ProvideEnrichUseCase,
		ProvidePriceAligner,
		ProvidePipeline,
		ProvideRowsHandler,
		ProvideJobQueue,

		// HTTP
		ProvideHTTPHandler,

		// Application
		ProvideApp,
	)
	return &server.App{}, nil
}
