package simulation

import (
	"testing"

	"FundLens/internal/engine"
)

func TestSummarizeEmptyPaths(t *testing.T) {
	if _, err := Summarize(nil, 100); !engine.IsCode(err, engine.CodeInsufficientData) {
		t.Fatalf("Summarize() error = %v, want %s", err, engine.CodeInsufficientData)
	}
}

func TestSummarizeDegeneratePaths(t *testing.T) {
	paths := make([][]float64, 50)
	for i := range paths {
		paths[i] = []float64{100, 100, 100}
	}

	result, err := Summarize(paths, 100)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if result.Statistics.Mean != 100 {
		t.Fatalf("mean = %v, want 100", result.Statistics.Mean)
	}
	if result.RiskMetrics.VaR95 != 0 || result.RiskMetrics.CVaR95 != 0 {
		t.Fatalf("VaR95 = %v, CVaR95 = %v, want 0 for constant paths",
			result.RiskMetrics.VaR95, result.RiskMetrics.CVaR95)
	}
	if result.RiskMetrics.ProbabilityOfLoss != 0 {
		t.Fatalf("probability of loss = %v, want 0", result.RiskMetrics.ProbabilityOfLoss)
	}
}

func TestSummarizeKnownTerminals(t *testing.T) {
	// Terminal values 1..100 with a start of 50: exactly 49 values lose money.
	paths := make([][]float64, 100)
	for i := range paths {
		paths[i] = []float64{float64(i + 1)}
	}

	result, err := Summarize(paths, 50)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if result.RiskMetrics.ProbabilityOfLoss != 49 {
		t.Fatalf("probability of loss = %v, want 49", result.RiskMetrics.ProbabilityOfLoss)
	}
	if result.Statistics.Mean != 50.5 {
		t.Fatalf("mean = %v, want 50.5", result.Statistics.Mean)
	}
	if result.Confidence90.Lower != result.Percentiles.P5 || result.Confidence90.Upper != result.Percentiles.P95 {
		t.Fatalf("confidence_90 %+v does not match percentiles %+v", result.Confidence90, result.Percentiles)
	}
	if result.RiskMetrics.CVaR95 < result.RiskMetrics.VaR95 {
		t.Fatalf("CVaR95 = %v < VaR95 = %v", result.RiskMetrics.CVaR95, result.RiskMetrics.VaR95)
	}
}

func TestSummarizeRejectsNonPositiveStart(t *testing.T) {
	paths := [][]float64{{100}}
	if _, err := Summarize(paths, 0); !engine.IsCode(err, engine.CodeInvalidParameter) {
		t.Fatalf("Summarize() error = %v, want %s", err, engine.CodeInvalidParameter)
	}
}
