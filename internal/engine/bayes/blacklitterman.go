// Package bayes implements the Black-Litterman posterior return estimator:
// an equilibrium prior implied by the covariance structure, optionally
// blended with subjective investor views.
package bayes

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"FundLens/internal/domain/models"
	"FundLens/internal/engine"
	"FundLens/pkg/config"
	"FundLens/pkg/logger"
)

// Estimator is a stateless Black-Litterman calculator; one instance serves
// all requests.
type Estimator struct {
	tau          float64
	riskAversion float64
	log          *logger.Logger
}

// NewEstimator creates an estimator with the configured tau and risk
// aversion.
func NewEstimator(cfg *config.Config, log *logger.Logger) *Estimator {
	return &Estimator{
		tau:          cfg.BlackLitterman.Tau,
		riskAversion: cfg.BlackLitterman.RiskAversion,
		log:          log,
	}
}

// EquilibriumPrior computes the implied equilibrium returns pi = delta *
// Sigma * w for the baseline weight vector.
func (e *Estimator) EquilibriumPrior(cov [][]float64, weights []float64) ([]float64, error) {
	n := len(weights)
	if err := checkCovariance(cov, n); err != nil {
		return nil, err
	}

	sigma := toDense(cov)
	w := mat.NewVecDense(n, weights)

	var sigmaW mat.VecDense
	sigmaW.MulVec(sigma, w)

	pi := make([]float64, n)
	for i := range pi {
		pi[i] = e.riskAversion * sigmaW.AtVec(i)
	}
	return pi, nil
}

// Posterior blends the prior with investor views.
//
// With no views the posterior is exactly (pi, Sigma). Otherwise, with
// SigmaTau = tau*Sigma and default Omega = diag(diag(P*SigmaTau*P')):
//
//	precision = SigmaTau^-1 + P' Omega^-1 P
//	mu        = precision^-1 (SigmaTau^-1 pi + P' Omega^-1 Q)
//	SigmaPost = precision^-1 + Sigma
//
// Every inversion failure surfaces as ERR_SINGULAR_COVARIANCE; there is no
// pseudo-inverse fallback.
func (e *Estimator) Posterior(pi []float64, cov [][]float64, views []models.InvestorView) ([]float64, [][]float64, error) {
	n := len(pi)
	if err := checkCovariance(cov, n); err != nil {
		return nil, nil, err
	}

	if len(views) == 0 {
		out := make([]float64, n)
		copy(out, pi)
		return out, cloneMatrix(cov), nil
	}

	p, q, err := expandViews(views, n)
	if err != nil {
		return nil, nil, err
	}
	k := len(views)

	sigma := toDense(cov)
	var tauSigma mat.Dense
	tauSigma.Scale(e.tau, sigma)

	var tauSigmaInv mat.Dense
	if err := tauSigmaInv.Inverse(&tauSigma); err != nil {
		return nil, nil, engine.SingularCovariance("tau-scaled covariance is not invertible").WithError(err)
	}

	// Default view uncertainty: the variance of each view basket under the
	// scaled prior covariance.
	var pTauSigma mat.Dense
	pTauSigma.Mul(p, &tauSigma)
	var basketVar mat.Dense
	basketVar.Mul(&pTauSigma, p.T())

	omegaInv := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		v := basketVar.At(i, i)
		if v <= 0 || math.IsNaN(v) {
			return nil, nil, engine.SingularCovariance("view uncertainty matrix is degenerate")
		}
		omegaInv.Set(i, i, 1/v)
	}

	var pT mat.Dense
	pT.CloneFrom(p.T())
	var pTOmegaInv mat.Dense
	pTOmegaInv.Mul(&pT, omegaInv)
	var pTOmegaInvP mat.Dense
	pTOmegaInvP.Mul(&pTOmegaInv, p)

	var precision mat.Dense
	precision.Add(&tauSigmaInv, &pTOmegaInvP)

	var precisionInv mat.Dense
	if err := precisionInv.Inverse(&precision); err != nil {
		return nil, nil, engine.SingularCovariance("posterior precision matrix is not invertible").WithError(err)
	}

	piVec := mat.NewVecDense(n, pi)
	var lhs mat.VecDense
	lhs.MulVec(&tauSigmaInv, piVec)
	var rhs mat.VecDense
	rhs.MulVec(&pTOmegaInv, q)
	var combined mat.VecDense
	combined.AddVec(&lhs, &rhs)

	var muVec mat.VecDense
	muVec.MulVec(&precisionInv, &combined)

	mu := make([]float64, n)
	for i := range mu {
		mu[i] = muVec.AtVec(i)
	}

	// Total posterior covariance: uncertainty of the mean estimate plus the
	// base covariance, symmetrized against round-off drift.
	post := make([][]float64, n)
	for i := range post {
		post[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := 0.5*(precisionInv.At(i, j)+precisionInv.At(j, i)) + cov[i][j]
			post[i][j] = v
			post[j][i] = v
		}
	}

	e.log.Debug("views incorporated",
		logger.Int("views", k),
		logger.Int("instruments", n),
	)
	return mu, post, nil
}

// expandViews converts caller views into the P matrix and Q vector: each
// view spreads uniform weight across the instruments it names.
func expandViews(views []models.InvestorView, n int) (*mat.Dense, *mat.VecDense, error) {
	k := len(views)
	p := mat.NewDense(k, n, nil)
	q := mat.NewVecDense(k, nil)
	for i, view := range views {
		if len(view.InstrumentIndices) == 0 {
			return nil, nil, engine.InvalidParameterf("views", "view %d names no instruments", i)
		}
		w := 1.0 / float64(len(view.InstrumentIndices))
		for _, idx := range view.InstrumentIndices {
			if idx < 0 || idx >= n {
				return nil, nil, engine.InvalidParameterf("views", "view %d references instrument %d outside [0, %d)", i, idx, n)
			}
			p.Set(i, idx, p.At(i, idx)+w)
		}
		q.SetVec(i, view.ClaimedReturn)
	}
	return p, q, nil
}

// checkCovariance enforces shape and symmetry before any linear solve.
func checkCovariance(cov [][]float64, n int) error {
	if len(cov) != n {
		return engine.InvalidParameterf("covariance", "covariance is %dx?, expected %dx%d", len(cov), n, n)
	}
	for i := range cov {
		if len(cov[i]) != n {
			return engine.InvalidParameterf("covariance", "covariance row %d has %d columns, expected %d", i, len(cov[i]), n)
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(cov[i][j]-cov[j][i]) > 1e-9 {
				return engine.SingularCovariance("covariance matrix is not symmetric")
			}
		}
	}
	return nil
}

func toDense(m [][]float64) *mat.Dense {
	n := len(m)
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d.Set(i, j, m[i][j])
		}
	}
	return d
}

func cloneMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i := range m {
		out[i] = make([]float64, len(m[i]))
		copy(out[i], m[i])
	}
	return out
}
