// Package volatility forecasts forward volatility with a GARCH(1,1)
// recursion over daily returns.
package volatility

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"FundLens/internal/domain/models"
	"FundLens/internal/engine"
	"FundLens/pkg/logger"
	"FundLens/pkg/util"
)

// Fixed GARCH(1,1) parameters. Persistence alpha+beta must stay below 1
// for the long-run variance to exist.
const (
	omega = 1e-6
	alpha = 0.10
	beta  = 0.85
)

const defaultForecastPeriods = 30

// Forecaster runs the conditional-variance recursion.
type Forecaster struct {
	log *logger.Logger
}

func NewForecaster(log *logger.Logger) *Forecaster {
	return &Forecaster{log: log}
}

// Forecast filters the return history through the GARCH(1,1) recursion
//
//	var_t = omega + alpha*r_{t-1}^2 + beta*var_{t-1}
//
// and projects the conditional variance periods steps ahead, reverting
// toward the long-run level omega/(1-alpha-beta). Returns are daily and in
// percent; all reported volatilities are annualized percent.
func (f *Forecaster) Forecast(returnsPct []float64, periods int) (models.VolatilityForecast, error) {
	if len(returnsPct) < 2 {
		return models.VolatilityForecast{}, engine.InsufficientData("volatility forecast needs at least two return observations")
	}
	if periods <= 0 {
		periods = defaultForecastPeriods
	}

	returns := make([]float64, len(returnsPct))
	for i, r := range returnsPct {
		returns[i] = r / 100
	}

	// Seed the recursion with the sample variance, then filter forward.
	variance := stat.Variance(returns, nil)
	if variance <= 0 {
		variance = omega
	}
	for _, r := range returns {
		variance = omega + alpha*r*r + beta*variance
	}

	persistence := alpha + beta
	longRunVar := omega / (1 - persistence)

	forecast := make([]float64, periods)
	v := variance
	for h := 0; h < periods; h++ {
		v = omega + persistence*v
		forecast[h] = annualize(v)
	}

	out := models.VolatilityForecast{
		ForecastPeriods:   periods,
		Forecast:          forecast,
		CurrentVolatility: annualize(variance),
		LongRunVolatility: annualize(longRunVar),
		Persistence:       util.Round(persistence, 4),
	}
	f.log.Debug("volatility forecast complete",
		logger.Int("observations", len(returns)),
		logger.Int("periods", periods),
		logger.Float("current_vol", out.CurrentVolatility),
	)
	return out, nil
}

// annualize converts a daily variance to annualized percent volatility.
func annualize(dailyVar float64) float64 {
	return util.Round2(math.Sqrt(dailyVar*252) * 100)
}
