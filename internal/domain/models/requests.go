package models

// SimulationRequest describes one Monte Carlo NAV projection.
//
// HorizonDays and Paths treat the zero value as "not supplied" and take
// their defaults before validation runs, so a literal 0 in the payload is
// indistinguishable from omitting the field. Negative values and values
// above the configured ceilings are rejected.
type SimulationRequest struct {
	InitialValue    float64 `json:"initial_value" validate:"gt=0"`
	AnnualReturnPct float64 `json:"annual_return_pct" validate:"gte=-100,lte=100"`
	AnnualVolPct    float64 `json:"annual_volatility_pct" validate:"gte=0"`
	HorizonDays     int     `json:"horizon_days" default:"252" validate:"gt=0"`
	Paths           int     `json:"paths" default:"10000" validate:"gt=0"`
	Seed            *uint64 `json:"seed,omitempty"`
}

// PricingRequest describes one closed-form risk-premium analysis.
type PricingRequest struct {
	CurrentValue  float64 `json:"current_value" validate:"gt=0"`
	ExpectedValue float64 `json:"expected_value" validate:"gt=0"`
	Volatility    float64 `json:"volatility" validate:"gt=0"`
	RiskFreeRate  float64 `json:"risk_free_rate" default:"0.06" validate:"gte=0"`
	HorizonYears  float64 `json:"horizon_years" default:"1.0" validate:"gt=0"`
}

// GreeksRequest describes one option-Greeks evaluation.
type GreeksRequest struct {
	Spot   float64 `json:"spot" validate:"gt=0"`
	Strike float64 `json:"strike" validate:"gt=0"`
	Rate   float64 `json:"rate" validate:"gte=0"`
	Vol    float64 `json:"vol" validate:"gt=0"`
	Time   float64 `json:"time" validate:"gt=0"`
}

// RecommendationRequest drives the full Black-Litterman allocation pipeline.
type RecommendationRequest struct {
	Instruments []InstrumentStats `json:"instruments" validate:"dive"`
	Views       []InvestorView    `json:"views,omitempty" validate:"dive"`

	// Optional full correlation matrix; when absent a constant
	// off-diagonal correlation from config is assumed.
	Correlations [][]float64 `json:"correlations,omitempty"`

	// Investment amount to split across the final allocations.
	Amount float64 `json:"amount" default:"100000" validate:"gt=0"`

	FrontierPoints int `json:"frontier_points,omitempty" validate:"gte=0,lte=200"`
}

// StressRequest runs the simulator across named market scenarios.
type StressRequest struct {
	Investment      float64 `json:"investment" default:"100000" validate:"gt=0"`
	AnnualReturnPct float64 `json:"annual_return_pct" validate:"gte=-100,lte=100"`
	AnnualVolPct    float64 `json:"annual_volatility_pct" validate:"gte=0"`
	Seed            *uint64 `json:"seed,omitempty"`
}

// InsightsRequest bundles every per-fund analysis for one instrument.
type InsightsRequest struct {
	Fund         InstrumentStats `json:"fund"`
	CurrentValue float64         `json:"current_value" default:"100" validate:"gt=0"`
	HorizonDays  int             `json:"horizon_days" default:"252" validate:"gt=0"`
	ReturnsPct   []float64       `json:"returns_pct,omitempty"`
	Seed         *uint64         `json:"seed,omitempty"`
}
