package di

import (
	"FundLens/internal/domain/repository"
	"FundLens/internal/engine/bayes"
	"FundLens/internal/engine/optimizer"
	"FundLens/internal/engine/pricing"
	"FundLens/internal/engine/simulation"
	"FundLens/internal/engine/volatility"
	"FundLens/internal/service/statstore"
	"FundLens/internal/usecase"
	"FundLens/pkg/config"
	"FundLens/pkg/logger"
	"FundLens/pkg/metrics"
	"FundLens/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		TimeFormat: cfg.Logger.TimeFormat,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideFundStore loads the fund statistics snapshot.
func ProvideFundStore(cfg *config.Config, log *logger.Logger) (repository.FundStore, error) {
	return statstore.New(cfg, log)
}

// ProvideSimulator creates the Monte Carlo simulator.
func ProvideSimulator(cfg *config.Config, log *logger.Logger, m repository.Metrics) *simulation.Simulator {
	return simulation.NewSimulator(cfg, log, m)
}

// ProvidePricer creates the closed-form pricer.
func ProvidePricer(cfg *config.Config, log *logger.Logger, m repository.Metrics) *pricing.Pricer {
	return pricing.NewPricer(cfg, log, m)
}

// ProvideEstimator creates the Black-Litterman estimator.
func ProvideEstimator(cfg *config.Config, log *logger.Logger) *bayes.Estimator {
	return bayes.NewEstimator(cfg, log)
}

// ProvideSolver creates the portfolio optimizer.
func ProvideSolver(cfg *config.Config, log *logger.Logger, m repository.Metrics) *optimizer.Solver {
	return optimizer.NewSolver(cfg, log, m)
}

// ProvideForecaster creates the GARCH volatility forecaster.
func ProvideForecaster(log *logger.Logger) *volatility.Forecaster {
	return volatility.NewForecaster(log)
}

// ProvideAdvisor creates the recommendation use case.
func ProvideAdvisor(
	cfg *config.Config,
	store repository.FundStore,
	simulator *simulation.Simulator,
	pricer *pricing.Pricer,
	estimator *bayes.Estimator,
	solver *optimizer.Solver,
	forecaster *volatility.Forecaster,
	log *logger.Logger,
	m repository.Metrics,
) *usecase.Advisor {
	return usecase.NewAdvisor(cfg, store, simulator, pricer, estimator, solver, forecaster, log, m)
}

// ProvideApp creates the application shell.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	advisor *usecase.Advisor,
	simulator *simulation.Simulator,
	pricer *pricing.Pricer,
	store repository.FundStore,
) *server.App {
	return server.New(cfg, log, advisor, simulator, pricer, store)
}
