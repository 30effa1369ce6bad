// Package server hosts the application shell: it resolves one named
// analytics operation against the engine and writes the JSON result. The
// portal's web layer lives elsewhere; this shell is what batch jobs and
// local runs go through.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"FundLens/internal/domain/models"
	"FundLens/internal/domain/repository"
	"FundLens/internal/engine"
	"FundLens/internal/engine/pricing"
	"FundLens/internal/engine/simulation"
	"FundLens/internal/usecase"
	"FundLens/pkg/config"
	"FundLens/pkg/logger"
)

// App bundles the wired engine components behind a single dispatch point.
type App struct {
	cfg       *config.Config
	log       *logger.Logger
	advisor   *usecase.Advisor
	simulator *simulation.Simulator
	pricer    *pricing.Pricer
	store     repository.FundStore
}

// New creates the application shell.
func New(
	cfg *config.Config,
	log *logger.Logger,
	advisor *usecase.Advisor,
	simulator *simulation.Simulator,
	pricer *pricing.Pricer,
	store repository.FundStore,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		advisor:   advisor,
		simulator: simulator,
		pricer:    pricer,
		store:     store,
	}
}

// Execute runs one named operation with a JSON payload.
func (a *App) Execute(ctx context.Context, op string, payload []byte) (interface{}, error) {
	switch op {
	case "simulate":
		var req models.SimulationRequest
		if err := decode(payload, &req); err != nil {
			return nil, err
		}
		return a.simulator.Predict(req)

	case "stress":
		var req models.StressRequest
		if err := decode(payload, &req); err != nil {
			return nil, err
		}
		return a.simulator.StressTest(req)

	case "risk_premium":
		var req models.PricingRequest
		if err := decode(payload, &req); err != nil {
			return nil, err
		}
		return a.pricer.RiskPremium(req)

	case "greeks":
		var req models.GreeksRequest
		if err := decode(payload, &req); err != nil {
			return nil, err
		}
		return a.pricer.Greeks(req)

	case "recommend":
		var req models.RecommendationRequest
		if err := decode(payload, &req); err != nil {
			return nil, err
		}
		return a.advisor.Recommend(ctx, req)

	case "risk_parity":
		var req models.RecommendationRequest
		if err := decode(payload, &req); err != nil {
			return nil, err
		}
		return a.advisor.RiskParity(req)

	case "insights":
		var req models.InsightsRequest
		if err := decode(payload, &req); err != nil {
			return nil, err
		}
		return a.advisor.Insights(req)

	case "funds":
		return a.advisor.Funds(), nil
	}
	return nil, engine.InvalidParameterf("operation", "unknown operation %q", op)
}

// Run executes one operation under a signal-aware context and streams the
// result as indented JSON.
func (a *App) Run(op string, payload []byte, out io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.log.Info("executing operation",
		logger.String("operation", op),
		logger.String("environment", a.cfg.Environment),
		logger.Int("funds", a.store.Len()),
	)

	result, err := a.Execute(ctx, op, payload)
	if err != nil {
		a.log.Error("operation failed", logger.String("operation", op), logger.Error(err))
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func decode(payload []byte, v interface{}) error {
	if len(payload) == 0 {
		return engine.InvalidParameter("request", "request payload is empty")
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return engine.InvalidParameter("request", fmt.Sprintf("malformed request payload: %v", err))
	}
	return nil
}
