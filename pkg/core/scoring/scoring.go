// Package scoring maps a MetricSet to a 0-100 financial health score and a
// discrete risk tier. Score is a pure function of its input: no hidden
// state, and re-scoring a stored snapshot reproduces the stored result.
package scoring

import (
	"math"

	"finhealth/pkg/core/config"
	"finhealth/pkg/models"
)

// Model applies the weighted sub-score rules from the static scoring table.
type Model struct {
	table config.ScoringTable
}

func NewModel(tables *config.Tables) *Model {
	return &Model{table: tables.Scoring}
}

// Score computes the composite health score and risk tier.
//
// Each sub-score (profitability, liquidity, leverage, growth, efficiency)
// normalizes one metric to 0-100 via a piecewise-linear ramp. Sub-scores
// whose input is not available are excluded and the remaining weights are
// renormalized to sum to 1 — absence is neutral, never a penalty.
func (m *Model) Score(ms models.MetricSet) models.ScoreResult {
	type subScore struct {
		input  *float64
		ramp   config.Ramp
		weight float64
	}

	subs := []subScore{
		{ms.NetMargin, m.table.Ramps.NetMargin, m.table.Weights.Profitability},
		{ms.CurrentRatio, m.table.Ramps.CurrentRatio, m.table.Weights.Liquidity},
		{ms.DebtToEquity, m.table.Ramps.DebtToEquity, m.table.Weights.Leverage},
		{ms.RevenueGrowthRate, m.table.Ramps.RevenueGrowth, m.table.Weights.Growth},
		{ms.AssetTurnover, m.table.Ramps.AssetTurnover, m.table.Weights.Efficiency},
	}

	weighted, totalWeight := 0.0, 0.0
	for _, s := range subs {
		if s.input == nil || s.weight <= 0 {
			continue
		}
		weighted += rampScore(s.ramp, *s.input) * s.weight
		totalWeight += s.weight
	}

	// Nothing measurable: report the band midpoint rather than inventing a
	// verdict from no data.
	composite := 50.0
	if totalWeight > 0 {
		composite = weighted / totalWeight
	}

	score := int(math.Round(composite))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return models.ScoreResult{
		FinancialHealthScore: score,
		RiskLevel:            m.riskFor(score),
	}
}

// riskFor maps a score to its band. Boundaries are inclusive on the lower
// bound of each band: 70 is Low, 69 Medium, 40 Medium, 39 High, 20 High,
// 19 Critical.
func (m *Model) riskFor(score int) models.RiskLevel {
	switch {
	case score >= m.table.Bands.Low:
		return models.RiskLow
	case score >= m.table.Bands.Medium:
		return models.RiskMedium
	case score >= m.table.Bands.High:
		return models.RiskHigh
	default:
		return models.RiskCritical
	}
}

// rampScore normalizes a value to [0,100] along a piecewise-linear ramp.
// Floor > Ceil inverts the ramp (lower input scores higher).
func rampScore(r config.Ramp, v float64) float64 {
	lo, hi := r.Floor, r.Ceil
	if lo == hi {
		if v >= hi {
			return 100
		}
		return 0
	}

	var pos float64
	if lo < hi {
		pos = (v - lo) / (hi - lo)
	} else {
		pos = (lo - v) / (lo - hi)
	}

	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos * 100
}
