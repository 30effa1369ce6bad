package optimizer

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"FundLens/internal/domain/models"
	"FundLens/pkg/logger"
	"FundLens/pkg/util"
)

// Frontier traces the efficient frontier by solving a minimum-variance
// problem for each target return on a grid from min(mu) to max(mu). The
// solves are independent and run in parallel; grid points where the solver
// fails are dropped rather than reported with garbage weights. Targets
// below the minimum-variance return trace the dominated lower branch and
// are pruned, so volatility is non-decreasing across the reported points.
func (s *Solver) Frontier(ctx context.Context, mu []float64, cov [][]float64, points int) ([]models.FrontierPoint, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordLatency("frontier", time.Since(start).Seconds())
	}()

	if err := s.checkInputs(mu, cov); err != nil {
		s.metrics.RecordError("invalid_parameter")
		return nil, err
	}
	if points <= 0 {
		points = s.frontierPoints
	}

	lo, hi := mu[0], mu[0]
	for _, v := range mu[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	targets := make([]float64, points)
	for i := range targets {
		if points == 1 {
			targets[i] = (lo + hi) / 2
			continue
		}
		targets[i] = lo + (hi-lo)*float64(i)/float64(points-1)
	}

	results := make([]*models.FrontierPoint, points)
	g, ctx := errgroup.WithContext(ctx)
	for i, target := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if pt, ok := s.minVarianceAt(mu, cov, target); ok {
				results[i] = &pt
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	frontier := make([]models.FrontierPoint, 0, points)
	for _, pt := range results {
		if pt != nil {
			frontier = append(frontier, *pt)
		}
	}
	sort.Slice(frontier, func(i, j int) bool {
		return frontier[i].TargetReturnPct < frontier[j].TargetReturnPct
	})
	frontier = pruneDominated(frontier)

	s.log.Debug("frontier traced",
		logger.Int("requested_points", points),
		logger.Int("converged_points", len(frontier)),
	)
	return frontier, nil
}

// pruneDominated keeps the upper branch of the frontier: every point below
// the least volatile one is beaten by a higher-return point at equal or
// lower volatility. Residual inversions left by approximate solves are
// dropped as well, so the result is monotone in volatility.
func pruneDominated(points []models.FrontierPoint) []models.FrontierPoint {
	if len(points) == 0 {
		return points
	}
	minIdx := 0
	for i, pt := range points {
		if pt.VolatilityPct < points[minIdx].VolatilityPct {
			minIdx = i
		}
	}
	kept := make([]models.FrontierPoint, 0, len(points)-minIdx)
	for _, pt := range points[minIdx:] {
		if len(kept) > 0 && pt.VolatilityPct < kept[len(kept)-1].VolatilityPct {
			continue
		}
		kept = append(kept, pt)
	}
	return kept
}

// minVarianceAt solves the minimum-variance portfolio with the extra
// equality penalty pinning the portfolio return to the target.
func (s *Solver) minVarianceAt(mu []float64, cov [][]float64, target float64) (models.FrontierPoint, bool) {
	objective := func(w []float64) float64 {
		miss := portfolioReturn(w, mu) - target
		return portfolioVariance(w, cov) + s.penalty(w) + s.penaltyWeight*miss*miss
	}

	x, ok := s.minimize(objective, equalWeights(len(mu)))
	s.recordOutcome("frontier_point", ok)
	if !ok {
		return models.FrontierPoint{}, false
	}

	w := projectToBounds(x, 0)
	return models.FrontierPoint{
		TargetReturnPct: util.Round2(target * 100),
		VolatilityPct:   util.Round2(portfolioVolatility(w, cov) * 100),
		Weights:         roundWeights(w),
	}, true
}
