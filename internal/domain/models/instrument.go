package models

// InstrumentStats is the per-fund statistical record supplied by the data
// layer. The engine treats it as immutable; optional factor metrics default
// via struct tags when the caller omits them.
type InstrumentStats struct {
	FundID     int64  `json:"fund_id"`
	SchemeName string `json:"scheme_name"`

	// Percent per year, e.g. 12.5 means 12.5%.
	ExpectedAnnualReturn float64 `json:"expected_annual_return" validate:"gte=-100,lte=100"`
	AnnualVolatility     float64 `json:"annual_volatility" validate:"gte=0,lte=200"`

	Beta         float64 `json:"beta,omitempty" default:"1.0"`
	Sharpe       float64 `json:"sharpe,omitempty"`
	Sortino      float64 `json:"sortino,omitempty"`
	SizeCr       float64 `json:"size,omitempty"`
	ExpenseRatio float64 `json:"expense_ratio,omitempty" default:"1.5"`

	// Synthetic marks records derived from a seeded random-walk stub
	// history rather than real observations.
	Synthetic bool `json:"synthetic,omitempty"`
}

// InvestorView is one subjective return claim over a basket of instruments.
// Indices refer to positions in the instrument list of the enclosing
// request; the estimator expands each view into one row of P (uniform
// weight across the listed indices) and one entry of Q.
type InvestorView struct {
	InstrumentIndices []int   `json:"instrument_indices" validate:"min=1"`
	ClaimedReturn     float64 `json:"claimed_return"`
}
