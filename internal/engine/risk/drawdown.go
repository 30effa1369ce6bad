package risk

import (
	"math"

	"FundLens/internal/domain/models"
	"FundLens/internal/engine"
	"FundLens/pkg/util"
)

// AnalyzeDrawdowns walks a value series against its running peak and
// reports peak-to-trough statistics. The series is assumed daily with 252
// trading days per year.
func AnalyzeDrawdowns(values []float64) (models.DrawdownReport, error) {
	if len(values) < 2 {
		return models.DrawdownReport{}, engine.InsufficientData("drawdown analysis needs at least two observations")
	}
	for i, v := range values {
		if v <= 0 {
			return models.DrawdownReport{}, engine.InvalidParameterf("values", "observation %d is non-positive", i)
		}
	}

	peak := values[0]
	maxDD := 0.0
	troughIdx := 0
	troughPeak := values[0]
	ddSum := 0.0
	ddDays := 0
	periods := 0
	inDrawdown := false

	for i, v := range values {
		if v > peak {
			peak = v
		}
		dd := (peak - v) / peak
		ddSum += dd
		if dd > 0 {
			ddDays++
			if !inDrawdown {
				periods++
				inDrawdown = true
			}
		} else {
			inDrawdown = false
		}
		if dd > maxDD {
			maxDD = dd
			troughIdx = i
			troughPeak = peak
		}
	}

	// Days from the deepest trough back to its prior peak; zero when the
	// series never recovers.
	recovery := 0
	for i := troughIdx + 1; i < len(values); i++ {
		if values[i] >= troughPeak {
			recovery = i - troughIdx
			break
		}
	}

	currentDD := (peak - values[len(values)-1]) / peak

	years := float64(len(values)-1) / 252.0
	annualReturn := math.Pow(values[len(values)-1]/values[0], 1/years) - 1
	calmar := 0.0
	if maxDD > 0 {
		calmar = annualReturn / maxDD
	}

	avgDD := 0.0
	if ddDays > 0 {
		avgDD = ddSum / float64(ddDays)
	}

	return models.DrawdownReport{
		MaxDrawdownPct:     util.Round2(maxDD * 100),
		CurrentDrawdownPct: util.Round2(currentDD * 100),
		RecoveryDays:       recovery,
		CalmarRatio:        util.Round(calmar, 3),
		PainIndex:          util.Round(ddSum/float64(len(values))*100, 3),
		DrawdownPeriods:    periods,
		AverageDrawdownPct: util.Round2(avgDD * 100),
	}, nil
}
