// Package optimizer solves constrained portfolio weight problems with
// penalty-method formulations over gonum's unconstrained minimizers.
// Non-convergence is data, not an error: results carry a Success flag and
// best-effort weights, and callers decide whether to use them.
package optimizer

import (
	"math"
	"time"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"

	"FundLens/internal/domain/repository"
	"FundLens/pkg/config"
	"FundLens/pkg/logger"
)

// Solver holds the shared solver configuration.
type Solver struct {
	penaltyWeight  float64
	runtime        time.Duration
	frontierPoints int
	minWeightFloor float64
	log            *logger.Logger
	metrics        repository.Metrics
}

// NewSolver creates a solver from the configured penalty weight, runtime
// bound and frontier resolution.
func NewSolver(cfg *config.Config, log *logger.Logger, metrics repository.Metrics) *Solver {
	return &Solver{
		penaltyWeight:  cfg.Solver.PenaltyWeight,
		runtime:        cfg.Solver.MaxRuntime,
		frontierPoints: cfg.Solver.FrontierPoints,
		minWeightFloor: cfg.Solver.MinWeightFloor,
		log:            log,
		metrics:        metrics,
	}
}

// minimize runs the objective through BFGS with finite-difference
// gradients, falling back to Nelder-Mead when BFGS errors out or stalls.
// It returns the best point found and whether either method converged.
// Minimize requires the Grad function to be present when a gradient-based
// method is passed explicitly, so it is derived from the objective here.
func (s *Solver) minimize(objective func([]float64) float64, x0 []float64) ([]float64, bool) {
	problem := optimize.Problem{
		Func: objective,
		Grad: func(grad, x []float64) {
			fd.Gradient(grad, objective, x, nil)
		},
	}
	settings := &optimize.Settings{Runtime: s.runtime}

	result, err := optimize.Minimize(problem, x0, settings, &optimize.BFGS{})
	if err == nil && converged(result.Status) {
		return result.X, true
	}

	result, err = optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if err == nil && converged(result.Status) {
		return result.X, true
	}
	if err == nil && result != nil {
		return result.X, false
	}
	return x0, false
}

func converged(status optimize.Status) bool {
	switch status {
	case optimize.Success, optimize.GradientThreshold, optimize.FunctionConvergence:
		return true
	}
	return false
}

// penalty punishes budget and long-only violations quadratically.
func (s *Solver) penalty(w []float64) float64 {
	sum := 0.0
	short := 0.0
	for _, v := range w {
		sum += v
		if v < 0 {
			short += v * v
		}
	}
	budget := sum - 1
	return s.penaltyWeight * (budget*budget + short)
}

// projectToBounds clamps weights to [floor, 1] and renormalizes to a unit
// budget, so reported weights always satisfy the constraints exactly even
// when the solver stopped slightly outside them.
func projectToBounds(w []float64, floor float64) []float64 {
	out := make([]float64, len(w))
	sum := 0.0
	for i, v := range w {
		if v < floor {
			v = floor
		}
		if v > 1 {
			v = 1
		}
		out[i] = v
		sum += v
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func equalWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1.0 / float64(n)
	}
	return w
}

func portfolioReturn(w, mu []float64) float64 {
	r := 0.0
	for i := range w {
		r += w[i] * mu[i]
	}
	return r
}

func portfolioVariance(w []float64, cov [][]float64) float64 {
	v := 0.0
	for i := range w {
		for j := range w {
			v += w[i] * cov[i][j] * w[j]
		}
	}
	return v
}

func portfolioVolatility(w []float64, cov [][]float64) float64 {
	return math.Sqrt(math.Max(portfolioVariance(w, cov), 0))
}
