package simulation

import (
	"FundLens/internal/domain/models"
	"FundLens/internal/engine"
)

// scenario scales the baseline return and volatility assumptions.
type scenario struct {
	returnMultiplier float64
	volMultiplier    float64
}

// stressScenarios are the portal's canned market regimes.
var stressScenarios = map[string]scenario{
	"baseline":         {returnMultiplier: 1.0, volMultiplier: 1.0},
	"mild_recession":   {returnMultiplier: 0.5, volMultiplier: 1.3},
	"severe_recession": {returnMultiplier: -0.5, volMultiplier: 2.0},
	"bull_market":      {returnMultiplier: 1.5, volMultiplier: 0.8},
	"high_volatility":  {returnMultiplier: 1.0, volMultiplier: 2.0},
}

// StressTest reruns the one-year projection under each scenario and keeps
// the condensed outcome per scenario name.
func (s *Simulator) StressTest(req models.StressRequest) (models.StressResult, error) {
	if err := engine.ValidateRequest(&req); err != nil {
		return models.StressResult{}, err
	}

	out := make(map[string]models.ScenarioOutcome, len(stressScenarios))
	for name, sc := range stressScenarios {
		pred, err := s.Predict(models.SimulationRequest{
			InitialValue:    req.Investment,
			AnnualReturnPct: req.AnnualReturnPct * sc.returnMultiplier,
			AnnualVolPct:    req.AnnualVolPct * sc.volMultiplier,
			HorizonDays:     tradingDays,
			Paths:           s.maxPaths,
			Seed:            req.Seed,
		})
		if err != nil {
			return models.StressResult{}, err
		}
		out[name] = models.ScenarioOutcome{
			ExpectedValue:     pred.Statistics.Mean,
			VaR95:             pred.RiskMetrics.VaR95,
			ProbabilityOfLoss: pred.RiskMetrics.ProbabilityOfLoss,
		}
	}
	return models.StressResult{Scenarios: out}, nil
}
