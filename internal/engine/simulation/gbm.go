// Package simulation generates Monte Carlo NAV paths under Geometric
// Brownian Motion and reduces them to distributional and downside-risk
// summaries. Path matrices are ephemeral: they are released as soon as the
// summary is computed.
package simulation

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"FundLens/internal/domain/models"
	"FundLens/internal/domain/repository"
	"FundLens/internal/engine"
	"FundLens/pkg/config"
	"FundLens/pkg/logger"
	"FundLens/pkg/util"
)

// tradingDays is the fixed day-count convention for annualization.
const tradingDays = 252

// Simulator runs GBM path simulations within configured memory ceilings.
type Simulator struct {
	maxPaths    int
	maxHorizon  int
	samplePaths int
	log         *logger.Logger
	metrics     repository.Metrics
}

// NewSimulator creates a simulator bounded by the configured ceilings.
func NewSimulator(cfg *config.Config, log *logger.Logger, metrics repository.Metrics) *Simulator {
	return &Simulator{
		maxPaths:    cfg.Simulation.MaxPaths,
		maxHorizon:  cfg.Simulation.MaxHorizonDays,
		samplePaths: cfg.Simulation.SamplePaths,
		log:         log,
		metrics:     metrics,
	}
}

// Simulate generates the raw path matrix of shape paths x horizonDays.
// Identical seeds reproduce identical paths bit for bit.
func (s *Simulator) Simulate(req models.SimulationRequest) ([][]float64, error) {
	if err := s.checkRequest(&req); err != nil {
		return nil, err
	}
	rng := newRand(req.Seed)
	return gbmPaths(req, rng), nil
}

// Predict simulates and summarizes one NAV projection, keeping only a small
// path subsample for plotting.
func (s *Simulator) Predict(req models.SimulationRequest) (models.SimulationResult, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordLatency("simulate", time.Since(start).Seconds())
	}()

	if err := s.checkRequest(&req); err != nil {
		s.metrics.RecordError("invalid_parameter")
		return models.SimulationResult{}, err
	}

	rng := newRand(req.Seed)
	paths := gbmPaths(req, rng)

	result, err := Summarize(paths, req.InitialValue)
	if err != nil {
		s.metrics.RecordError("insufficient_data")
		return models.SimulationResult{}, err
	}
	result.PredictionDays = req.HorizonDays
	result.Paths = req.Paths
	result.SamplePaths = subsample(paths, s.samplePaths, rng)

	s.metrics.RecordSimulation("gbm")
	s.log.Debug("simulation complete",
		logger.Int("paths", req.Paths),
		logger.Int("horizon_days", req.HorizonDays),
		logger.Float("mean", result.Statistics.Mean),
	)
	return result, nil
}

func (s *Simulator) checkRequest(req *models.SimulationRequest) error {
	if err := engine.ValidateRequest(req); err != nil {
		return err
	}
	if req.Paths > s.maxPaths || req.HorizonDays > s.maxHorizon {
		return engine.InvalidParameterf("paths",
			"simulation size %dx%d exceeds ceiling %dx%d",
			req.Paths, req.HorizonDays, s.maxPaths, s.maxHorizon)
	}
	return nil
}

// gbmPaths fills the path matrix. Per step the log-return is
// (mu - sigma^2/2)*dt + sigma*sqrt(dt)*Z with dt = 1/252; the path value is
// s0 * exp(cumulative log-return). sigma == 0 degenerates to the pure drift
// path with no special casing.
func gbmPaths(req models.SimulationRequest, rng *rand.Rand) [][]float64 {
	mu := req.AnnualReturnPct / 100
	sigma := req.AnnualVolPct / 100
	dt := 1.0 / tradingDays
	drift := (mu - 0.5*sigma*sigma) * dt
	diffusion := sigma * math.Sqrt(dt)

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}

	paths := make([][]float64, req.Paths)
	for i := range paths {
		path := make([]float64, req.HorizonDays)
		cum := 0.0
		for t := 0; t < req.HorizonDays; t++ {
			cum += drift + diffusion*normal.Rand()
			path[t] = req.InitialValue * math.Exp(cum)
		}
		paths[i] = path
	}
	return paths
}

// subsample draws k full paths without replacement for the UI plot. The
// draw happens after path generation on the same stream, so seeded runs
// stay fully reproducible.
func subsample(paths [][]float64, k int, rng *rand.Rand) [][]float64 {
	if k > len(paths) {
		k = len(paths)
	}
	perm := rng.Perm(len(paths))
	sample := make([][]float64, k)
	for i := 0; i < k; i++ {
		src := paths[perm[i]]
		row := make([]float64, len(src))
		for j, v := range src {
			row[j] = util.Round2(v)
		}
		sample[i] = row
	}
	return sample
}

func newRand(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, now>>32))
}
