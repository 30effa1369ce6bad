package optimizer

import (
	"context"
	"math"
	"testing"

	"FundLens/internal/engine"
)

func TestFrontierTracesSortedPoints(t *testing.T) {
	s := testSolver()
	mu := []float64{0.07, 0.11, 0.14}
	cov := [][]float64{
		{0.0100, 0.0020, 0.0010},
		{0.0020, 0.0300, 0.0050},
		{0.0010, 0.0050, 0.0550},
	}

	frontier, err := s.Frontier(context.Background(), mu, cov, 15)
	if err != nil {
		t.Fatalf("Frontier() error = %v", err)
	}
	if len(frontier) == 0 {
		t.Fatalf("frontier is empty")
	}
	if len(frontier) > 15 {
		t.Fatalf("frontier has %d points, want at most 15", len(frontier))
	}

	for i, pt := range frontier {
		sum := 0.0
		for _, w := range pt.Weights {
			sum += w
		}
		if math.Abs(sum-1) > 1e-6 {
			t.Fatalf("point %d weights sum to %v, want 1", i, sum)
		}
		if pt.VolatilityPct <= 0 {
			t.Fatalf("point %d volatility = %v, want positive", i, pt.VolatilityPct)
		}
		if i > 0 && pt.TargetReturnPct < frontier[i-1].TargetReturnPct {
			t.Fatalf("frontier targets not sorted at %d: %v after %v",
				i, pt.TargetReturnPct, frontier[i-1].TargetReturnPct)
		}
		// Only the upper branch is reported, so volatility must be
		// non-decreasing point to point as the target return rises.
		if i > 0 && pt.VolatilityPct < frontier[i-1].VolatilityPct {
			t.Fatalf("frontier volatility decreased at %d: %v after %v",
				i, pt.VolatilityPct, frontier[i-1].VolatilityPct)
		}
	}
}

func TestFrontierInsufficientInstruments(t *testing.T) {
	s := testSolver()
	_, err := s.Frontier(context.Background(), []float64{0.1}, [][]float64{{0.04}}, 5)
	if !engine.IsCode(err, engine.CodeInsufficientInstruments) {
		t.Fatalf("Frontier() error = %v, want %s", err, engine.CodeInsufficientInstruments)
	}
}

func TestFrontierHonorsCancelledContext(t *testing.T) {
	s := testSolver()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mu := []float64{0.07, 0.11}
	cov := [][]float64{
		{0.01, 0},
		{0, 0.03},
	}
	if _, err := s.Frontier(ctx, mu, cov, 10); err == nil {
		t.Fatalf("Frontier() expected error for cancelled context")
	}
}
