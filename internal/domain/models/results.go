package models

// Percentiles of the terminal-day value distribution.
type Percentiles struct {
	P5  float64 `json:"p5"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P95 float64 `json:"p95"`
}

// Interval is a two-sided confidence band.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// SimulationStats summarizes the terminal value distribution.
type SimulationStats struct {
	Mean              float64 `json:"mean"`
	Median            float64 `json:"median"`
	StdDev            float64 `json:"std_dev"`
	ExpectedReturnPct float64 `json:"expected_return_pct"`
}

// RiskMetrics holds downside measures derived from the terminal values.
type RiskMetrics struct {
	VaR95             float64 `json:"var_95"`
	VaR99             float64 `json:"var_99"`
	CVaR95            float64 `json:"cvar_95"`
	ProbabilityOfLoss float64 `json:"probability_of_loss"` // percent in [0,100]
}

// SimulationResult is the JSON-serializable outcome of one Monte Carlo run.
// The dense path matrix is discarded after the summary is computed; only a
// small fixed-size subsample survives for plotting.
type SimulationResult struct {
	CurrentValue   float64              `json:"current_value"`
	PredictionDays int                  `json:"prediction_days"`
	Paths          int                  `json:"n_simulations"`
	Statistics     SimulationStats      `json:"statistics"`
	RiskMetrics    RiskMetrics          `json:"risk_metrics"`
	Percentiles    Percentiles          `json:"percentiles"`
	Confidence90   Interval             `json:"confidence_90"`
	Confidence50   Interval             `json:"confidence_50"`
	SamplePaths    [][]float64          `json:"sample_paths"`
}

// PricingResult is the closed-form risk-premium report. All fields are
// deterministic scalars; identical inputs reproduce identical outputs.
type PricingResult struct {
	ExpectedReturnPct  float64 `json:"expected_return"`
	RiskFreeRatePct    float64 `json:"risk_free_rate"`
	RiskPremiumPct     float64 `json:"risk_premium"`
	SharpeRatio        float64 `json:"sharpe_ratio"`
	ProbBeatRiskFree   float64 `json:"prob_beat_risk_free"`
	ProtectionCost     float64 `json:"protection_cost"`
	ProtectionCostPct  float64 `json:"protection_cost_pct"`
}

// CallPut carries a per-side Greek value.
type CallPut struct {
	Call float64 `json:"call"`
	Put  float64 `json:"put"`
}

// GreeksResult reports option Greeks under standard conventions: theta per
// calendar day, vega and rho per percentage point.
type GreeksResult struct {
	Delta CallPut `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta CallPut `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   CallPut `json:"rho"`
}

// OptimizationResult is a solved weight vector plus portfolio metrics.
// Success reflects solver convergence; weights are best-effort when false
// and callers decide whether to use them.
type OptimizationResult struct {
	Weights           []float64 `json:"optimal_weights"`
	ExpectedReturnPct float64   `json:"expected_return"`
	VolatilityPct     float64   `json:"volatility"`
	SharpeRatio       float64   `json:"sharpe_ratio"`
	Success           bool      `json:"optimization_success"`
}

// RiskParityResult adds the realized per-instrument risk contributions so
// callers can verify they converged near equal.
type RiskParityResult struct {
	Weights           []float64 `json:"weights"`
	RiskContributions []float64 `json:"risk_contributions"`
	ExpectedReturnPct float64   `json:"expected_return"`
	VolatilityPct     float64   `json:"volatility"`
	Success           bool      `json:"optimization_success"`
}

// FrontierPoint is one converged minimum-variance solve on the target
// return grid. Points where the solver failed are omitted entirely.
type FrontierPoint struct {
	TargetReturnPct float64   `json:"target_return"`
	VolatilityPct   float64   `json:"volatility"`
	Weights         []float64 `json:"weights"`
}

// Allocation is one recommended holding after the materiality filter.
type Allocation struct {
	FundID          int64   `json:"fund_id"`
	SchemeName      string  `json:"scheme_name"`
	WeightPct       float64 `json:"weight"`
	AllocatedAmount float64 `json:"allocated_amount"`
}

// PortfolioMetrics summarizes the optimized portfolio.
type PortfolioMetrics struct {
	ExpectedReturnPct float64 `json:"expected_return"`
	VolatilityPct     float64 `json:"volatility"`
	SharpeRatio       float64 `json:"sharpe_ratio"`
}

// Recommendation is the advisor's end-to-end answer: a filtered, sorted
// allocation list and the efficient frontier behind it.
type Recommendation struct {
	Allocations []Allocation     `json:"allocations"`
	Metrics     PortfolioMetrics `json:"portfolio_metrics"`
	Frontier    []FrontierPoint  `json:"efficient_frontier"`
	Success     bool             `json:"optimization_success"`
}

// ScenarioOutcome is the condensed result of one stress scenario.
type ScenarioOutcome struct {
	ExpectedValue     float64 `json:"expected_value"`
	VaR95             float64 `json:"var_95"`
	ProbabilityOfLoss float64 `json:"probability_of_loss"`
}

// StressResult maps scenario name to outcome.
type StressResult struct {
	Scenarios map[string]ScenarioOutcome `json:"stress_test_results"`
}

// VolatilityForecast is the GARCH(1,1) forward volatility report,
// annualized and in percent.
type VolatilityForecast struct {
	ForecastPeriods    int       `json:"forecast_periods"`
	Forecast           []float64 `json:"forecast_volatility"`
	CurrentVolatility  float64   `json:"current_volatility"`
	LongRunVolatility  float64   `json:"long_run_volatility"`
	Persistence        float64   `json:"volatility_persistence"`
}

// DrawdownReport describes peak-to-trough behavior of a value series.
type DrawdownReport struct {
	MaxDrawdownPct     float64 `json:"max_drawdown"`
	CurrentDrawdownPct float64 `json:"current_drawdown"`
	RecoveryDays       int     `json:"recovery_days"` // 0 = not recovered
	CalmarRatio        float64 `json:"calmar_ratio"`
	PainIndex          float64 `json:"pain_index"`
	DrawdownPeriods    int     `json:"drawdown_periods"`
	AverageDrawdownPct float64 `json:"average_drawdown"`
}

// FundInsights bundles every per-fund analysis the portal surfaces.
type FundInsights struct {
	Fund       InstrumentStats     `json:"fund"`
	MonteCarlo *SimulationResult   `json:"monte_carlo,omitempty"`
	Pricing    *PricingResult      `json:"black_scholes,omitempty"`
	Greeks     *GreeksResult       `json:"greeks,omitempty"`
	Volatility *VolatilityForecast `json:"volatility_forecast,omitempty"`
	Drawdown   *DrawdownReport     `json:"drawdown,omitempty"`
}
