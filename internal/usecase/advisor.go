// Package usecase orchestrates the analytics engine into portal-facing
// operations: portfolio recommendations and per-fund insight bundles.
package usecase

import (
	"context"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat/distuv"

	"FundLens/internal/domain/models"
	"FundLens/internal/domain/repository"
	"FundLens/internal/engine"
	"FundLens/internal/engine/bayes"
	"FundLens/internal/engine/optimizer"
	"FundLens/internal/engine/pricing"
	"FundLens/internal/engine/risk"
	"FundLens/internal/engine/simulation"
	"FundLens/internal/engine/volatility"
	"FundLens/pkg/config"
	"FundLens/pkg/logger"
	"FundLens/pkg/util"
)

// Advisor runs the full recommendation pipeline: covariance assembly,
// Black-Litterman estimation, max-Sharpe optimization and frontier
// tracing, then converts weights into rupee allocations.
type Advisor struct {
	defaultCorr float64
	cutoff      float64
	riskFree    float64

	store      repository.FundStore
	simulator  *simulation.Simulator
	pricer     *pricing.Pricer
	estimator  *bayes.Estimator
	solver     *optimizer.Solver
	forecaster *volatility.Forecaster
	log        *logger.Logger
	metrics    repository.Metrics
}

// NewAdvisor wires the engine components into the advisor.
func NewAdvisor(
	cfg *config.Config,
	store repository.FundStore,
	simulator *simulation.Simulator,
	pricer *pricing.Pricer,
	estimator *bayes.Estimator,
	solver *optimizer.Solver,
	forecaster *volatility.Forecaster,
	log *logger.Logger,
	metrics repository.Metrics,
) *Advisor {
	return &Advisor{
		defaultCorr: cfg.Market.DefaultCorrelation,
		cutoff:      cfg.Market.AllocationCutoff,
		riskFree:    cfg.Market.RiskFreeRate,
		store:       store,
		simulator:   simulator,
		pricer:      pricer,
		estimator:   estimator,
		solver:      solver,
		forecaster:  forecaster,
		log:         log,
		metrics:     metrics,
	}
}

// Funds lists the statistics universe the advisor allocates over.
func (a *Advisor) Funds() []models.InstrumentStats {
	return a.store.All()
}

// Recommend produces an allocation for the requested instrument set.
func (a *Advisor) Recommend(ctx context.Context, req models.RecommendationRequest) (models.Recommendation, error) {
	start := time.Now()
	defer func() {
		a.metrics.RecordLatency("recommend", time.Since(start).Seconds())
	}()

	if err := engine.ValidateRequest(&req); err != nil {
		a.metrics.RecordError("invalid_parameter")
		return models.Recommendation{}, err
	}
	n := len(req.Instruments)
	if n < 2 {
		a.metrics.RecordError("insufficient_instruments")
		return models.Recommendation{}, engine.InsufficientInstruments(n)
	}

	vols := make([]float64, n)
	for i, inst := range req.Instruments {
		vols[i] = inst.AnnualVolatility
	}
	cov, err := risk.BuildCovariance(vols, req.Correlations, a.defaultCorr)
	if err != nil {
		return models.Recommendation{}, err
	}

	// Equal weights stand in for market capitalization as the equilibrium
	// portfolio; the snapshot has no reliable AUM-share data.
	prior := make([]float64, n)
	for i := range prior {
		prior[i] = 1.0 / float64(n)
	}
	pi, err := a.estimator.EquilibriumPrior(cov, prior)
	if err != nil {
		return models.Recommendation{}, err
	}
	mu, postCov, err := a.estimator.Posterior(pi, cov, req.Views)
	if err != nil {
		return models.Recommendation{}, err
	}

	opt, err := a.solver.MaxSharpe(mu, postCov)
	if err != nil {
		return models.Recommendation{}, err
	}
	frontier, err := a.solver.Frontier(ctx, mu, postCov, req.FrontierPoints)
	if err != nil {
		return models.Recommendation{}, err
	}

	allocations := a.allocate(req.Instruments, opt.Weights, req.Amount)

	a.log.Info("recommendation built",
		logger.Int("instruments", n),
		logger.Int("views", len(req.Views)),
		logger.Int("allocations", len(allocations)),
		logger.Bool("converged", opt.Success),
	)

	return models.Recommendation{
		Allocations: allocations,
		Metrics: models.PortfolioMetrics{
			ExpectedReturnPct: opt.ExpectedReturnPct,
			VolatilityPct:     opt.VolatilityPct,
			SharpeRatio:       opt.SharpeRatio,
		},
		Frontier: frontier,
		Success:  opt.Success,
	}, nil
}

// RecommendUniverse runs Recommend over every fund in the store.
func (a *Advisor) RecommendUniverse(ctx context.Context, amount float64, views []models.InvestorView) (models.Recommendation, error) {
	return a.Recommend(ctx, models.RecommendationRequest{
		Instruments: a.store.All(),
		Views:       views,
		Amount:      amount,
	})
}

// RiskParity solves the equal-risk-contribution portfolio over the
// requested instruments, using stated expected returns directly (no
// Black-Litterman blending; risk parity ignores return forecasts by
// construction and the stated returns only feed the reported metrics).
func (a *Advisor) RiskParity(req models.RecommendationRequest) (models.RiskParityResult, error) {
	if err := engine.ValidateRequest(&req); err != nil {
		a.metrics.RecordError("invalid_parameter")
		return models.RiskParityResult{}, err
	}
	n := len(req.Instruments)
	if n < 2 {
		a.metrics.RecordError("insufficient_instruments")
		return models.RiskParityResult{}, engine.InsufficientInstruments(n)
	}

	vols := make([]float64, n)
	mu := make([]float64, n)
	for i, inst := range req.Instruments {
		vols[i] = inst.AnnualVolatility
		mu[i] = inst.ExpectedAnnualReturn / 100
	}
	cov, err := risk.BuildCovariance(vols, req.Correlations, a.defaultCorr)
	if err != nil {
		return models.RiskParityResult{}, err
	}
	return a.solver.RiskParity(mu, cov)
}

// allocate drops immaterial weights, renormalizes the survivors and splits
// the investment amount with exact decimal arithmetic, largest first.
func (a *Advisor) allocate(instruments []models.InstrumentStats, weights []float64, amount float64) []models.Allocation {
	kept := make([]int, 0, len(weights))
	sum := 0.0
	for i, w := range weights {
		if w >= a.cutoff {
			kept = append(kept, i)
			sum += w
		}
	}

	total := decimal.NewFromFloat(amount)
	out := make([]models.Allocation, 0, len(kept))
	for _, i := range kept {
		w := weights[i] / sum
		allocated := total.Mul(decimal.NewFromFloat(w)).Round(2)
		out = append(out, models.Allocation{
			FundID:          instruments[i].FundID,
			SchemeName:      instruments[i].SchemeName,
			WeightPct:       util.Round2(w * 100),
			AllocatedAmount: allocated.InexactFloat64(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WeightPct > out[j].WeightPct
	})
	return out
}

// Insights bundles every per-fund analysis for one instrument. Analyses
// whose preconditions fail (zero volatility, missing return history) are
// skipped and left nil rather than aborting the bundle; hard parameter
// errors still fail the whole request.
func (a *Advisor) Insights(req models.InsightsRequest) (models.FundInsights, error) {
	if err := engine.ValidateRequest(&req); err != nil {
		a.metrics.RecordError("invalid_parameter")
		return models.FundInsights{}, err
	}
	fund := req.Fund
	out := models.FundInsights{Fund: fund}
	years := float64(req.HorizonDays) / 252.0

	mc, err := a.simulator.Predict(models.SimulationRequest{
		InitialValue:    req.CurrentValue,
		AnnualReturnPct: fund.ExpectedAnnualReturn,
		AnnualVolPct:    fund.AnnualVolatility,
		HorizonDays:     req.HorizonDays,
		Seed:            req.Seed,
	})
	if err != nil {
		return models.FundInsights{}, err
	}
	out.MonteCarlo = &mc

	if fund.AnnualVolatility > 0 {
		vol := fund.AnnualVolatility / 100
		expected := req.CurrentValue * math.Exp(fund.ExpectedAnnualReturn/100*years)

		priced, err := a.pricer.RiskPremium(models.PricingRequest{
			CurrentValue:  req.CurrentValue,
			ExpectedValue: expected,
			Volatility:    vol,
			RiskFreeRate:  a.riskFree,
			HorizonYears:  years,
		})
		if err != nil {
			return models.FundInsights{}, err
		}
		out.Pricing = &priced

		greeks, err := a.pricer.Greeks(models.GreeksRequest{
			Spot:   req.CurrentValue,
			Strike: req.CurrentValue,
			Rate:   a.riskFree,
			Vol:    vol,
			Time:   years,
		})
		if err != nil {
			return models.FundInsights{}, err
		}
		out.Greeks = &greeks
	} else {
		a.log.Debug("skipping closed-form analyses for zero-volatility fund",
			logger.Int("fund_id", int(fund.FundID)),
		)
	}

	returns := req.ReturnsPct
	if len(returns) == 0 {
		returns = syntheticReturns(fund, req.Seed)
	}
	if len(returns) >= 2 {
		forecast, err := a.forecaster.Forecast(returns, 0)
		if err != nil {
			return models.FundInsights{}, err
		}
		out.Volatility = &forecast

		dd, err := risk.AnalyzeDrawdowns(valueSeries(req.CurrentValue, returns))
		if err != nil {
			return models.FundInsights{}, err
		}
		out.Drawdown = &dd
	}

	return out, nil
}

// InsightsByID resolves the fund from the store first.
func (a *Advisor) InsightsByID(fundID int64, req models.InsightsRequest) (models.FundInsights, error) {
	fund, ok := a.store.Get(fundID)
	if !ok {
		return models.FundInsights{}, engine.InvalidParameterf("fund_id", "unknown fund %d", fundID)
	}
	req.Fund = fund
	return a.Insights(req)
}

// syntheticReturns draws one year of daily returns consistent with the
// fund's annual statistics. The fund id seeds the stream when no explicit
// seed is given, so repeated requests for the same fund agree.
func syntheticReturns(fund models.InstrumentStats, seed *uint64) []float64 {
	s := uint64(fund.FundID)
	if seed != nil {
		s = *seed
	}
	rng := rand.New(rand.NewPCG(s, s+1))
	normal := distuv.Normal{
		Mu:    fund.ExpectedAnnualReturn / 252,
		Sigma: fund.AnnualVolatility / math.Sqrt(252),
		Src:   rng,
	}
	out := make([]float64, 252)
	for i := range out {
		out[i] = normal.Rand()
	}
	return out
}

// valueSeries compounds percent returns into a value path starting at v0.
func valueSeries(v0 float64, returnsPct []float64) []float64 {
	out := make([]float64, len(returnsPct)+1)
	out[0] = v0
	for i, r := range returnsPct {
		out[i+1] = out[i] * (1 + r/100)
	}
	return out
}
