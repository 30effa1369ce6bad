package risk

import (
	"testing"

	"FundLens/internal/engine"
)

func TestAnalyzeDrawdownsKnownSeries(t *testing.T) {
	// Peak 110, trough 99 (10% drawdown), recovery two observations later.
	values := []float64{100, 110, 99, 105, 121}

	report, err := AnalyzeDrawdowns(values)
	if err != nil {
		t.Fatalf("AnalyzeDrawdowns() error = %v", err)
	}
	if report.MaxDrawdownPct != 10 {
		t.Fatalf("max drawdown = %v, want 10", report.MaxDrawdownPct)
	}
	if report.RecoveryDays != 2 {
		t.Fatalf("recovery days = %d, want 2", report.RecoveryDays)
	}
	if report.CurrentDrawdownPct != 0 {
		t.Fatalf("current drawdown = %v, want 0 at a fresh peak", report.CurrentDrawdownPct)
	}
	if report.DrawdownPeriods != 1 {
		t.Fatalf("drawdown periods = %d, want 1", report.DrawdownPeriods)
	}
	if report.CalmarRatio <= 0 {
		t.Fatalf("calmar = %v, want positive for a rising series", report.CalmarRatio)
	}
}

func TestAnalyzeDrawdownsUnrecovered(t *testing.T) {
	values := []float64{100, 120, 90, 95}

	report, err := AnalyzeDrawdowns(values)
	if err != nil {
		t.Fatalf("AnalyzeDrawdowns() error = %v", err)
	}
	if report.MaxDrawdownPct != 25 {
		t.Fatalf("max drawdown = %v, want 25", report.MaxDrawdownPct)
	}
	if report.RecoveryDays != 0 {
		t.Fatalf("recovery days = %d, want 0 for an unrecovered drawdown", report.RecoveryDays)
	}
	if report.CurrentDrawdownPct <= 0 {
		t.Fatalf("current drawdown = %v, want positive while under water", report.CurrentDrawdownPct)
	}
}

func TestAnalyzeDrawdownsMonotoneSeriesHasNone(t *testing.T) {
	report, err := AnalyzeDrawdowns([]float64{100, 101, 102, 103})
	if err != nil {
		t.Fatalf("AnalyzeDrawdowns() error = %v", err)
	}
	if report.MaxDrawdownPct != 0 || report.DrawdownPeriods != 0 || report.PainIndex != 0 {
		t.Fatalf("monotone series reported drawdowns: %+v", report)
	}
}

func TestAnalyzeDrawdownsRejectsShortOrBadSeries(t *testing.T) {
	if _, err := AnalyzeDrawdowns([]float64{100}); !engine.IsCode(err, engine.CodeInsufficientData) {
		t.Fatalf("AnalyzeDrawdowns() error = %v, want %s", err, engine.CodeInsufficientData)
	}
	if _, err := AnalyzeDrawdowns([]float64{100, -5}); !engine.IsCode(err, engine.CodeInvalidParameter) {
		t.Fatalf("AnalyzeDrawdowns() error = %v, want %s", err, engine.CodeInvalidParameter)
	}
}
