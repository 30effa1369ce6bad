package simulation

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"FundLens/internal/domain/models"
	"FundLens/internal/engine"
	"FundLens/pkg/util"
)

// Summarize reduces a path matrix to terminal-day statistics and downside
// risk measures. All paths participate; the plotting subsample is handled
// separately so it cannot bias these numbers.
func Summarize(paths [][]float64, s0 float64) (models.SimulationResult, error) {
	if len(paths) == 0 || len(paths[0]) == 0 {
		return models.SimulationResult{}, engine.InsufficientData("no simulated paths to summarize")
	}
	if s0 <= 0 {
		return models.SimulationResult{}, engine.InvalidParameter("initial_value", "initial value must be positive")
	}

	terminal := make([]float64, len(paths))
	for i, p := range paths {
		terminal[i] = p[len(p)-1]
	}

	sorted := make([]float64, len(terminal))
	copy(sorted, terminal)
	sort.Float64s(sorted)

	p1 := stat.Quantile(0.01, stat.Empirical, sorted, nil)
	pct := models.Percentiles{
		P5:  stat.Quantile(0.05, stat.Empirical, sorted, nil),
		P25: stat.Quantile(0.25, stat.Empirical, sorted, nil),
		P50: stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P75: stat.Quantile(0.75, stat.Empirical, sorted, nil),
		P95: stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}

	mean := stat.Mean(terminal, nil)
	std := 0.0
	if len(terminal) > 1 {
		std = stat.StdDev(terminal, nil)
	}

	// Expected shortfall over the worst-5% tail. With degenerate (zero)
	// volatility every terminal value is identical and the tail collapses
	// onto the 5th percentile, so CVaR equals VaR rather than NaN.
	tailSum, tailN := 0.0, 0
	for _, v := range sorted {
		if v > pct.P5 {
			break
		}
		tailSum += v
		tailN++
	}
	var95 := s0 - pct.P5
	var99 := s0 - p1
	cvar95 := var95
	if tailN > 0 {
		cvar95 = s0 - tailSum/float64(tailN)
	}

	losses := 0
	for _, v := range terminal {
		if v < s0 {
			losses++
		}
	}
	probLoss := float64(losses) / float64(len(terminal)) * 100

	return models.SimulationResult{
		CurrentValue: s0,
		Statistics: models.SimulationStats{
			Mean:              util.Round2(mean),
			Median:            util.Round2(pct.P50),
			StdDev:            util.Round2(std),
			ExpectedReturnPct: util.Round2((mean/s0 - 1) * 100),
		},
		RiskMetrics: models.RiskMetrics{
			VaR95:             util.Round2(math.Max(0, var95)),
			VaR99:             util.Round2(math.Max(0, var99)),
			CVaR95:            util.Round2(math.Max(0, cvar95)),
			ProbabilityOfLoss: util.Round2(probLoss),
		},
		Percentiles: models.Percentiles{
			P5:  util.Round2(pct.P5),
			P25: util.Round2(pct.P25),
			P50: util.Round2(pct.P50),
			P75: util.Round2(pct.P75),
			P95: util.Round2(pct.P95),
		},
		Confidence90: models.Interval{Lower: util.Round2(pct.P5), Upper: util.Round2(pct.P95)},
		Confidence50: models.Interval{Lower: util.Round2(pct.P25), Upper: util.Round2(pct.P75)},
	}, nil
}
