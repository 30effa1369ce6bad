// Package risk builds covariance models from per-fund volatility data and
// analyzes drawdown behavior of value series.
package risk

import (
	"math"

	"FundLens/internal/engine"
)

// BuildCovariance assembles an annualized covariance matrix from
// per-instrument volatilities (in percent) and a correlation structure.
// When corr is nil, a constant off-diagonal correlation is assumed; a
// supplied matrix must be square, symmetric, unit-diagonal and bounded
// in [-1, 1].
func BuildCovariance(volsPct []float64, corr [][]float64, defaultCorr float64) ([][]float64, error) {
	n := len(volsPct)
	if n == 0 {
		return nil, engine.InsufficientData("no instruments to build a covariance for")
	}
	for i, v := range volsPct {
		if v < 0 {
			return nil, engine.InvalidParameterf("annual_volatility_pct", "instrument %d has negative volatility", i)
		}
	}
	if corr != nil {
		if err := checkCorrelation(corr, n); err != nil {
			return nil, err
		}
	}

	vols := make([]float64, n)
	for i, v := range volsPct {
		vols[i] = v / 100
	}

	cov := make([][]float64, n)
	for i := range cov {
		cov[i] = make([]float64, n)
		for j := range cov[i] {
			rho := defaultCorr
			switch {
			case i == j:
				rho = 1
			case corr != nil:
				rho = corr[i][j]
			}
			cov[i][j] = vols[i] * vols[j] * rho
		}
	}
	return cov, nil
}

func checkCorrelation(corr [][]float64, n int) error {
	if len(corr) != n {
		return engine.InvalidParameterf("correlations", "correlation matrix is %dx?, expected %dx%d", len(corr), n, n)
	}
	for i := range corr {
		if len(corr[i]) != n {
			return engine.InvalidParameterf("correlations", "correlation row %d has %d columns, expected %d", i, len(corr[i]), n)
		}
	}
	for i := 0; i < n; i++ {
		if math.Abs(corr[i][i]-1) > 1e-9 {
			return engine.InvalidParameterf("correlations", "correlation diagonal entry %d is %.4f, expected 1", i, corr[i][i])
		}
		for j := i + 1; j < n; j++ {
			if math.Abs(corr[i][j]-corr[j][i]) > 1e-9 {
				return engine.InvalidParameter("correlations", "correlation matrix is not symmetric")
			}
			if corr[i][j] < -1 || corr[i][j] > 1 {
				return engine.InvalidParameterf("correlations", "correlation [%d][%d] = %.4f outside [-1, 1]", i, j, corr[i][j])
			}
		}
	}
	return nil
}
