// Package pricing computes closed-form risk measures from distributional
// parameters: risk premium over the risk-free rate, the probability of
// beating it, protective-put cost, and option Greeks under the standard
// log-normal (Black-Scholes) model. Nothing here is stochastic; identical
// inputs always reproduce identical outputs.
package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"FundLens/internal/domain/models"
	"FundLens/internal/domain/repository"
	"FundLens/internal/engine"
	"FundLens/pkg/config"
	"FundLens/pkg/logger"
	"FundLens/pkg/util"
)

// Pricer evaluates closed-form pricing formulas.
type Pricer struct {
	defaultRiskFree float64
	log             *logger.Logger
	metrics         repository.Metrics
}

// NewPricer creates a pricer with the configured risk-free default.
func NewPricer(cfg *config.Config, log *logger.Logger, metrics repository.Metrics) *Pricer {
	return &Pricer{
		defaultRiskFree: cfg.Market.RiskFreeRate,
		log:             log,
		metrics:         metrics,
	}
}

// RiskPremium compares the expected fund value against the risk-free
// benchmark over the horizon.
func (p *Pricer) RiskPremium(req models.PricingRequest) (models.PricingResult, error) {
	if err := engine.ValidateRequest(&req); err != nil {
		p.metrics.RecordError("invalid_parameter")
		return models.PricingResult{}, err
	}

	expectedReturn := req.ExpectedValue/req.CurrentValue - 1
	riskPremium := expectedReturn - req.RiskFreeRate
	sharpe := riskPremium / req.Volatility
	d := riskPremium / (req.Volatility * math.Sqrt(req.HorizonYears))
	probBeat := distuv.UnitNormal.CDF(d)

	// At-the-money protective put: the cost of insuring the current value
	// over the horizon.
	protection := putPrice(req.CurrentValue, req.CurrentValue, req.RiskFreeRate, req.Volatility, req.HorizonYears)

	return models.PricingResult{
		ExpectedReturnPct: util.Round2(expectedReturn * 100),
		RiskFreeRatePct:   util.Round2(req.RiskFreeRate * 100),
		RiskPremiumPct:    util.Round2(riskPremium * 100),
		SharpeRatio:       util.Round(sharpe, 3),
		ProbBeatRiskFree:  util.Round2(probBeat * 100),
		ProtectionCost:    util.Round2(protection),
		ProtectionCostPct: util.Round2(protection / req.CurrentValue * 100),
	}, nil
}

// Greeks reports call/put sensitivities with conventional scaling: theta
// per calendar day, vega and rho per percentage point.
func (p *Pricer) Greeks(req models.GreeksRequest) (models.GreeksResult, error) {
	if err := engine.ValidateRequest(&req); err != nil {
		p.metrics.RecordError("invalid_parameter")
		return models.GreeksResult{}, err
	}

	d1, d2 := d1d2(req.Spot, req.Strike, req.Rate, req.Vol, req.Time)
	sqrtT := math.Sqrt(req.Time)
	pdfD1 := distuv.UnitNormal.Prob(d1)
	discount := math.Exp(-req.Rate * req.Time)

	deltaCall := distuv.UnitNormal.CDF(d1)
	gamma := pdfD1 / (req.Spot * req.Vol * sqrtT)
	thetaCall := -(req.Spot*pdfD1*req.Vol)/(2*sqrtT) - req.Rate*req.Strike*discount*distuv.UnitNormal.CDF(d2)
	thetaPut := -(req.Spot*pdfD1*req.Vol)/(2*sqrtT) + req.Rate*req.Strike*discount*distuv.UnitNormal.CDF(-d2)
	vega := req.Spot * sqrtT * pdfD1
	rhoCall := req.Strike * req.Time * discount * distuv.UnitNormal.CDF(d2)
	rhoPut := -req.Strike * req.Time * discount * distuv.UnitNormal.CDF(-d2)

	return models.GreeksResult{
		Delta: models.CallPut{Call: util.Round4(deltaCall), Put: util.Round4(deltaCall - 1)},
		Gamma: util.Round(gamma, 6),
		Theta: models.CallPut{Call: util.Round4(thetaCall / 365), Put: util.Round4(thetaPut / 365)},
		Vega:  util.Round4(vega / 100),
		Rho:   models.CallPut{Call: util.Round4(rhoCall / 100), Put: util.Round4(rhoPut / 100)},
	}, nil
}

func d1d2(s, k, r, sigma, t float64) (float64, float64) {
	d1 := (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / (sigma * math.Sqrt(t))
	return d1, d1 - sigma*math.Sqrt(t)
}

func callPrice(s, k, r, sigma, t float64) float64 {
	d1, d2 := d1d2(s, k, r, sigma, t)
	return s*distuv.UnitNormal.CDF(d1) - k*math.Exp(-r*t)*distuv.UnitNormal.CDF(d2)
}

func putPrice(s, k, r, sigma, t float64) float64 {
	d1, d2 := d1d2(s, k, r, sigma, t)
	return k*math.Exp(-r*t)*distuv.UnitNormal.CDF(-d2) - s*distuv.UnitNormal.CDF(-d1)
}
