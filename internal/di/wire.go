//go:build wireinject
// +build wireinject

package di

import (
	"ArgPulse/internal/usecase"
	"ArgPulse/pkg/config"
	"ArgPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Sources and repositories
		ProvideIndicatorSource,
		ProvideNewsSource,
		ProvideHistoryStore,
		ProvidePostPublisher,
		ProvidePollStore,

		// Engines and use cases
		ProvideScoreEngine,
		ProvideNarrativeEngine,
		ProvideDashboardUseCase,
		usecase.NewPollUseCase,
		ProvideArchiver,
		ProvidePostEventsHandler,

		// Transport
		ProvideHandlers,
		ProvideHTTPServer,
		ProvideApp,
	)
	return &server.App{}, nil
}
