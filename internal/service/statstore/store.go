// Package statstore serves the immutable per-fund statistics snapshot that
// the advisor pipeline reads from. The snapshot is loaded once at startup;
// when no snapshot file is configured a deterministic synthetic universe is
// generated instead, with every record flagged Synthetic so downstream
// consumers can label the data.
package statstore

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"github.com/creasty/defaults"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"FundLens/internal/domain/models"
	"FundLens/pkg/config"
	"FundLens/pkg/logger"
	"FundLens/pkg/util"
)

// Store is a read-only fund statistics snapshot, safe for concurrent
// readers after construction.
type Store struct {
	funds     []models.InstrumentStats
	byID      map[int64]int
	synthetic bool
}

// New builds the store from the configured snapshot file, falling back to
// a synthetic universe when allowed.
func New(cfg *config.Config, log *logger.Logger) (*Store, error) {
	if cfg.Funds.SnapshotPath != "" {
		funds, err := loadSnapshot(cfg.Funds.SnapshotPath)
		if err != nil {
			return nil, err
		}
		log.Info("fund snapshot loaded",
			logger.String("path", cfg.Funds.SnapshotPath),
			logger.Int("funds", len(funds)),
		)
		return newStore(funds, false), nil
	}

	if !cfg.Funds.SyntheticHistory {
		return nil, fmt.Errorf("no fund snapshot configured and synthetic history is disabled")
	}

	funds := syntheticUniverse(cfg.Funds.SyntheticSeed, cfg.Market.RiskFreeRate)
	log.Warn("no fund snapshot configured, serving synthetic statistics",
		logger.Int("funds", len(funds)),
	)
	return newStore(funds, true), nil
}

func newStore(funds []models.InstrumentStats, synthetic bool) *Store {
	byID := make(map[int64]int, len(funds))
	for i, f := range funds {
		byID[f.FundID] = i
	}
	return &Store{funds: funds, byID: byID, synthetic: synthetic}
}

// Get returns a copy of the record for one fund.
func (s *Store) Get(fundID int64) (models.InstrumentStats, bool) {
	i, ok := s.byID[fundID]
	if !ok {
		return models.InstrumentStats{}, false
	}
	return s.funds[i], true
}

// All returns a copy of every record.
func (s *Store) All() []models.InstrumentStats {
	out := make([]models.InstrumentStats, len(s.funds))
	copy(out, s.funds)
	return out
}

func (s *Store) Len() int { return len(s.funds) }

// Synthetic reports whether the store was built without a real snapshot.
func (s *Store) Synthetic() bool { return s.synthetic }

func loadSnapshot(path string) ([]models.InstrumentStats, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fund snapshot: %w", err)
	}

	var funds []models.InstrumentStats
	if err := json.Unmarshal(b, &funds); err != nil {
		return nil, fmt.Errorf("parse fund snapshot: %w", err)
	}
	if len(funds) == 0 {
		return nil, fmt.Errorf("fund snapshot %s contains no funds", path)
	}

	seen := make(map[int64]bool, len(funds))
	for i := range funds {
		f := &funds[i]
		if err := defaults.Set(f); err != nil {
			return nil, fmt.Errorf("apply fund defaults: %w", err)
		}
		if f.FundID <= 0 {
			return nil, fmt.Errorf("fund snapshot record %d has no fund_id", i)
		}
		if seen[f.FundID] {
			return nil, fmt.Errorf("fund snapshot contains duplicate fund_id %d", f.FundID)
		}
		seen[f.FundID] = true
		if f.AnnualVolatility < 0 {
			return nil, fmt.Errorf("fund %d has negative volatility", f.FundID)
		}
	}
	return funds, nil
}

// fundArchetype seeds one synthetic fund category.
type fundArchetype struct {
	name      string
	annualRet float64 // decimal
	annualVol float64 // decimal
	perCat    int
}

var archetypes = []fundArchetype{
	{name: "Large Cap Equity", annualRet: 0.12, annualVol: 0.16, perCat: 4},
	{name: "Mid Cap Equity", annualRet: 0.15, annualVol: 0.20, perCat: 3},
	{name: "Small Cap Equity", annualRet: 0.17, annualVol: 0.25, perCat: 3},
	{name: "Flexi Cap Equity", annualRet: 0.13, annualVol: 0.18, perCat: 3},
	{name: "Corporate Bond", annualRet: 0.07, annualVol: 0.04, perCat: 3},
	{name: "Liquid", annualRet: 0.06, annualVol: 0.01, perCat: 2},
	{name: "Hybrid Aggressive", annualRet: 0.10, annualVol: 0.12, perCat: 2},
}

// syntheticUniverse simulates three years of daily returns per fund and
// measures the statistics from the sample, so the synthetic records behave
// like real ones (sample noise included). The same seed always produces
// the same universe.
func syntheticUniverse(seed int64, riskFree float64) []models.InstrumentStats {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)+1))
	const days = 3 * 252

	var funds []models.InstrumentStats
	id := int64(100001)
	for _, a := range archetypes {
		for k := 0; k < a.perCat; k++ {
			// Jitter the archetype so funds within a category differ.
			mu := a.annualRet * (0.8 + 0.4*rng.Float64())
			sigma := a.annualVol * (0.85 + 0.3*rng.Float64())

			normal := distuv.Normal{Mu: mu / 252, Sigma: sigma / math.Sqrt(252), Src: rng}
			daily := make([]float64, days)
			for t := range daily {
				daily[t] = normal.Rand()
			}

			annRet := stat.Mean(daily, nil) * 252
			annVol := stat.StdDev(daily, nil) * math.Sqrt(252)
			sharpe := 0.0
			sortino := 0.0
			if annVol > 0 {
				sharpe = (annRet - riskFree) / annVol
			}
			if dd := downsideDeviation(daily) * math.Sqrt(252); dd > 0 {
				sortino = (annRet - riskFree) / dd
			}

			funds = append(funds, models.InstrumentStats{
				FundID:               id,
				SchemeName:           fmt.Sprintf("%s Fund %d - Direct Growth", a.name, k+1),
				ExpectedAnnualReturn: util.Round2(annRet * 100),
				AnnualVolatility:     util.Round2(annVol * 100),
				Beta:                 util.Round2(0.6 + 0.8*rng.Float64()),
				Sharpe:               util.Round(sharpe, 3),
				Sortino:              util.Round(sortino, 3),
				SizeCr:               util.Round2(500 + 45000*rng.Float64()),
				ExpenseRatio:         util.Round2(0.3 + 2.0*rng.Float64()),
				Synthetic:            true,
			})
			id++
		}
	}
	return funds
}

func downsideDeviation(returns []float64) float64 {
	sum := 0.0
	for _, r := range returns {
		if r < 0 {
			sum += r * r
		}
	}
	return math.Sqrt(sum / float64(len(returns)))
}
