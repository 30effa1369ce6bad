package repository

import (
	"FundLens/internal/domain/models"
)

// Metrics abstracts the engine's observability sink.
type Metrics interface {
	RecordSimulation(kind string)
	RecordSolverOutcome(operation string, converged bool)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}

// FundStore is a read-only snapshot of per-fund statistics, loaded once at
// startup and immutable afterwards; implementations must be safe for
// concurrent readers.
type FundStore interface {
	Get(fundID int64) (models.InstrumentStats, bool)
	All() []models.InstrumentStats
	Len() int
}
