package server

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"FundLens/internal/domain/models"
	"FundLens/internal/engine"
	"FundLens/internal/engine/bayes"
	"FundLens/internal/engine/optimizer"
	"FundLens/internal/engine/pricing"
	"FundLens/internal/engine/simulation"
	"FundLens/internal/engine/volatility"
	"FundLens/internal/service/statstore"
	"FundLens/internal/usecase"
	"FundLens/pkg/config"
	"FundLens/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordSimulation(string)          {}
func (nopMetrics) RecordSolverOutcome(string, bool) {}
func (nopMetrics) RecordError(string)               {}
func (nopMetrics) RecordLatency(string, float64)    {}

func testApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{}
	cfg.Environment = "test"
	cfg.Simulation.MaxPaths = 10000
	cfg.Simulation.MaxHorizonDays = 252
	cfg.Simulation.SamplePaths = 10
	cfg.Solver.PenaltyWeight = 1000
	cfg.Solver.MaxRuntime = 30 * time.Second
	cfg.Solver.FrontierPoints = 5
	cfg.Solver.MinWeightFloor = 0.01
	cfg.BlackLitterman.Tau = 0.05
	cfg.BlackLitterman.RiskAversion = 2.5
	cfg.Market.RiskFreeRate = 0.06
	cfg.Market.DefaultCorrelation = 0.5
	cfg.Market.AllocationCutoff = 0.01
	cfg.Funds.SyntheticHistory = true
	cfg.Funds.SyntheticSeed = 42

	log := logger.Nop()
	m := nopMetrics{}
	store, err := statstore.New(cfg, log)
	if err != nil {
		t.Fatalf("statstore.New() error = %v", err)
	}
	sim := simulation.NewSimulator(cfg, log, m)
	pricer := pricing.NewPricer(cfg, log, m)
	advisor := usecase.NewAdvisor(cfg, store, sim, pricer,
		bayes.NewEstimator(cfg, log), optimizer.NewSolver(cfg, log, m),
		volatility.NewForecaster(log), log, m)
	return New(cfg, log, advisor, sim, pricer, store)
}

func TestExecuteSimulate(t *testing.T) {
	app := testApp(t)
	payload := []byte(`{"initial_value": 100000, "annual_return_pct": 10, "annual_volatility_pct": 15, "horizon_days": 20, "paths": 100, "seed": 1}`)

	out, err := app.Execute(context.Background(), "simulate", payload)
	if err != nil {
		t.Fatalf("Execute(simulate) error = %v", err)
	}
	result, ok := out.(models.SimulationResult)
	if !ok {
		t.Fatalf("Execute(simulate) returned %T", out)
	}
	if result.Statistics.Mean <= 0 {
		t.Fatalf("mean = %v, want positive", result.Statistics.Mean)
	}
}

func TestExecuteFundsWithoutPayload(t *testing.T) {
	app := testApp(t)
	out, err := app.Execute(context.Background(), "funds", nil)
	if err != nil {
		t.Fatalf("Execute(funds) error = %v", err)
	}
	funds, ok := out.([]models.InstrumentStats)
	if !ok || len(funds) == 0 {
		t.Fatalf("Execute(funds) = %T with %v entries", out, len(funds))
	}
}

func TestExecuteUnknownOperation(t *testing.T) {
	app := testApp(t)
	_, err := app.Execute(context.Background(), "divine", nil)
	if !engine.IsCode(err, engine.CodeInvalidParameter) {
		t.Fatalf("Execute() error = %v, want %s", err, engine.CodeInvalidParameter)
	}
}

func TestExecuteMalformedPayload(t *testing.T) {
	app := testApp(t)
	_, err := app.Execute(context.Background(), "simulate", []byte("{not json"))
	if !engine.IsCode(err, engine.CodeInvalidParameter) {
		t.Fatalf("Execute() error = %v, want %s", err, engine.CodeInvalidParameter)
	}
}

func TestRunWritesJSON(t *testing.T) {
	app := testApp(t)
	var buf bytes.Buffer
	payload := []byte(`{"current_value": 100, "expected_value": 110, "volatility": 0.15}`)

	if err := app.Run("risk_premium", payload, &buf); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var result models.PricingResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if result.ExpectedReturnPct != 10 {
		t.Fatalf("expected return = %v, want 10", result.ExpectedReturnPct)
	}
}
