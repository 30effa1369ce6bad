//go:build wireinject
// +build wireinject

package di

import (
	"FundLens/pkg/config"
	"FundLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Data layer
		ProvideFundStore,

		// Engine components
		ProvideSimulator,
		ProvidePricer,
		ProvideEstimator,
		ProvideSolver,
		ProvideForecaster,

		// Use cases
		ProvideAdvisor,

		// Application shell
		ProvideApp,
	)
	return &server.App{}, nil
}
