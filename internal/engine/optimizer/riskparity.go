package optimizer

import (
	"time"

	"FundLens/internal/domain/models"
	"FundLens/pkg/logger"
	"FundLens/pkg/util"
)

// RiskParity finds weights equalizing each instrument's contribution to
// portfolio risk: minimize sum over i of (rc_i - 1/n)^2 where
// rc_i = w_i * (Sigma w)_i / (w' Sigma w). Contributions are normalized
// shares of portfolio variance summing to 1, which keeps the 1/n target
// well-posed whatever the portfolio's absolute volatility. Weights are
// floored at the configured minimum so no instrument drops out entirely.
func (s *Solver) RiskParity(mu []float64, cov [][]float64) (models.RiskParityResult, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordLatency("risk_parity", time.Since(start).Seconds())
	}()

	if err := s.checkInputs(mu, cov); err != nil {
		s.metrics.RecordError("invalid_parameter")
		return models.RiskParityResult{}, err
	}

	n := len(mu)
	target := 1.0 / float64(n)

	objective := func(w []float64) float64 {
		rc := riskContributions(w, cov)
		sum := 0.0
		for _, c := range rc {
			d := c - target
			sum += d * d
		}
		return sum + s.penalty(w)
	}

	x, ok := s.minimize(objective, equalWeights(n))
	w := projectToBounds(x, s.minWeightFloor)

	rc := riskContributions(w, cov)
	ret := portfolioReturn(w, mu)
	vol := portfolioVolatility(w, cov)

	s.recordOutcome("risk_parity", ok)
	s.log.Debug("risk-parity solve finished",
		logger.Int("instruments", n),
		logger.Bool("converged", ok),
	)

	return models.RiskParityResult{
		Weights:           roundWeights(w),
		RiskContributions: roundWeights(rc),
		ExpectedReturnPct: util.Round2(ret * 100),
		VolatilityPct:     util.Round2(vol * 100),
		Success:           ok,
	}, nil
}

// riskContributions returns each instrument's share of total portfolio
// variance; shares sum to 1 when volatility is positive.
func riskContributions(w []float64, cov [][]float64) []float64 {
	vol := portfolioVolatility(w, cov)
	rc := make([]float64, len(w))
	if vol < 1e-12 {
		return rc
	}
	for i := range w {
		marginal := 0.0
		for j := range w {
			marginal += cov[i][j] * w[j]
		}
		rc[i] = w[i] * marginal / vol / vol
	}
	return rc
}
