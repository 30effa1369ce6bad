package optimizer

import (
	"time"

	"FundLens/internal/domain/models"
	"FundLens/internal/engine"
	"FundLens/pkg/logger"
	"FundLens/pkg/util"
)

// MaxSharpe finds the long-only unit-budget portfolio maximizing the
// Sharpe ratio over the given expected returns (decimal) and covariance.
func (s *Solver) MaxSharpe(mu []float64, cov [][]float64) (models.OptimizationResult, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordLatency("max_sharpe", time.Since(start).Seconds())
	}()

	if err := s.checkInputs(mu, cov); err != nil {
		s.metrics.RecordError("invalid_parameter")
		return models.OptimizationResult{}, err
	}

	// Raw return-to-volatility ratio, no risk-free subtraction in the
	// objective: the solved weights maximize w*mu / sqrt(w'Sigma w).
	objective := func(w []float64) float64 {
		vol := portfolioVolatility(w, cov)
		if vol < 1e-12 {
			vol = 1e-12
		}
		sharpe := portfolioReturn(w, mu) / vol
		return -sharpe + s.penalty(w)
	}

	x, ok := s.minimize(objective, equalWeights(len(mu)))
	w := projectToBounds(x, 0)

	ret := portfolioReturn(w, mu)
	vol := portfolioVolatility(w, cov)
	sharpe := 0.0
	if vol > 0 {
		sharpe = ret / vol
	}

	s.recordOutcome("max_sharpe", ok)
	s.log.Debug("max-sharpe solve finished",
		logger.Int("instruments", len(mu)),
		logger.Bool("converged", ok),
		logger.Float("sharpe", sharpe),
	)

	return models.OptimizationResult{
		Weights:           roundWeights(w),
		ExpectedReturnPct: util.Round2(ret * 100),
		VolatilityPct:     util.Round2(vol * 100),
		SharpeRatio:       util.Round(sharpe, 3),
		Success:           ok,
	}, nil
}

func (s *Solver) checkInputs(mu []float64, cov [][]float64) error {
	if len(mu) < 2 {
		return engine.InsufficientInstruments(len(mu))
	}
	return checkCovarianceShape(cov, len(mu))
}

// checkCovarianceShape mirrors the estimator's shape check so every solver
// entry point rejects malformed matrices the same way.
func checkCovarianceShape(cov [][]float64, n int) error {
	if len(cov) != n {
		return engine.InvalidParameterf("covariance", "covariance is %dx?, expected %dx%d", len(cov), n, n)
	}
	for i := range cov {
		if len(cov[i]) != n {
			return engine.InvalidParameterf("covariance", "covariance row %d has %d columns, expected %d", i, len(cov[i]), n)
		}
	}
	return nil
}

func (s *Solver) recordOutcome(operation string, ok bool) {
	s.metrics.RecordSolverOutcome(operation, ok)
}

func roundWeights(w []float64) []float64 {
	out := make([]float64, len(w))
	for i, v := range w {
		out[i] = util.Round4(v)
	}
	return out
}
