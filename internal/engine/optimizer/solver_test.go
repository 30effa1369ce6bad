package optimizer

import (
	"math"
	"testing"
	"time"

	"FundLens/internal/engine"
	"FundLens/pkg/config"
	"FundLens/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordSimulation(string)          {}
func (nopMetrics) RecordSolverOutcome(string, bool) {}
func (nopMetrics) RecordError(string)               {}
func (nopMetrics) RecordLatency(string, float64)    {}

func testSolver() *Solver {
	cfg := &config.Config{}
	cfg.Solver.PenaltyWeight = 1000
	cfg.Solver.MaxRuntime = 30 * time.Second
	cfg.Solver.FrontierPoints = 20
	cfg.Solver.MinWeightFloor = 0.01
	return NewSolver(cfg, logger.Nop(), nopMetrics{})
}

func assertBudget(t *testing.T, weights []float64) {
	t.Helper()
	sum := 0.0
	for i, w := range weights {
		if w < -1e-9 {
			t.Fatalf("weight[%d] = %v, want non-negative", i, w)
		}
		sum += w
	}
	if math.Abs(sum-1) > 1e-6 {
		t.Fatalf("weights sum to %v, want 1", sum)
	}
}

func TestMinimizeConvergesOnSmoothObjective(t *testing.T) {
	s := testSolver()
	objective := func(w []float64) float64 {
		d0 := w[0] - 0.3
		d1 := w[1] - 0.7
		return d0*d0 + d1*d1
	}

	x, ok := s.minimize(objective, []float64{0.5, 0.5})
	if !ok {
		t.Fatalf("minimize did not converge on a convex quadratic")
	}
	if math.Abs(x[0]-0.3) > 1e-4 || math.Abs(x[1]-0.7) > 1e-4 {
		t.Fatalf("minimize returned %v, want (0.3, 0.7)", x)
	}
}

func TestMaxSharpeBasicPortfolio(t *testing.T) {
	s := testSolver()
	mu := []float64{0.08, 0.12, 0.10}
	cov := [][]float64{
		{0.0225, 0.0045, 0.0060},
		{0.0045, 0.0400, 0.0080},
		{0.0060, 0.0080, 0.0625},
	}

	result, err := s.MaxSharpe(mu, cov)
	if err != nil {
		t.Fatalf("MaxSharpe() error = %v", err)
	}
	if !result.Success {
		t.Fatalf("solver did not converge on a well-conditioned problem")
	}
	assertBudget(t, result.Weights)
	if result.VolatilityPct <= 0 {
		t.Fatalf("volatility = %v, want positive", result.VolatilityPct)
	}
	if result.SharpeRatio <= 0 {
		t.Fatalf("sharpe = %v, want positive for positive expected returns", result.SharpeRatio)
	}
}

func TestMaxSharpeMaximizesRawReturnToVolRatio(t *testing.T) {
	s := testSolver()
	// Uncorrelated pair where the low-return asset has by far the better
	// return-to-volatility ratio (0.07/0.04 = 1.75 against 0.16/0.30 =
	// 0.53). The raw ratio objective concentrates in the first asset; an
	// excess-return variant would tilt toward the second instead.
	mu := []float64{0.07, 0.16}
	cov := [][]float64{
		{0.0016, 0},
		{0, 0.09},
	}

	result, err := s.MaxSharpe(mu, cov)
	if err != nil {
		t.Fatalf("MaxSharpe() error = %v", err)
	}
	assertBudget(t, result.Weights)
	if result.Weights[0] < 0.9 {
		t.Fatalf("weights = %v, want concentration in the high-ratio asset", result.Weights)
	}
	// The unconstrained optimum sits near w = (0.96, 0.04) with a ratio of
	// about 1.83.
	if result.SharpeRatio < 1.7 {
		t.Fatalf("sharpe = %v, want near the analytic optimum 1.83", result.SharpeRatio)
	}
}

func TestMaxSharpeIdenticalUncorrelatedInstruments(t *testing.T) {
	s := testSolver()
	mu := []float64{0.10, 0.10}
	cov := [][]float64{
		{0.04, 0},
		{0, 0.04},
	}

	result, err := s.MaxSharpe(mu, cov)
	if err != nil {
		t.Fatalf("MaxSharpe() error = %v", err)
	}
	assertBudget(t, result.Weights)
	if math.Abs(result.Weights[0]-0.5) > 0.05 {
		t.Fatalf("weights = %v, want near 50/50 for identical instruments", result.Weights)
	}
}

func TestMaxSharpePerfectlyCorrelatedInstruments(t *testing.T) {
	s := testSolver()
	// With identical instruments at correlation 1 every split is an equally
	// good optimum, so only the budget invariant is asserted.
	mu := []float64{0.10, 0.10}
	cov := [][]float64{
		{0.04, 0.04},
		{0.04, 0.04},
	}

	result, err := s.MaxSharpe(mu, cov)
	if err != nil {
		t.Fatalf("MaxSharpe() error = %v", err)
	}
	assertBudget(t, result.Weights)
}

func TestMaxSharpeInsufficientInstruments(t *testing.T) {
	s := testSolver()
	_, err := s.MaxSharpe([]float64{0.1}, [][]float64{{0.04}})
	if !engine.IsCode(err, engine.CodeInsufficientInstruments) {
		t.Fatalf("MaxSharpe() error = %v, want %s", err, engine.CodeInsufficientInstruments)
	}
}

func TestMaxSharpeRejectsMalformedCovariance(t *testing.T) {
	s := testSolver()
	_, err := s.MaxSharpe([]float64{0.1, 0.2}, [][]float64{{0.04}})
	if !engine.IsCode(err, engine.CodeInvalidParameter) {
		t.Fatalf("MaxSharpe() error = %v, want %s", err, engine.CodeInvalidParameter)
	}
}
