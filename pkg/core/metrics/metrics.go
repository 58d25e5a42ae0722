// Package metrics aggregates normalized line items into per-period financial
// ratios. Computation is pure and idempotent: the same statement always
// yields the same MetricSet sequence.
package metrics

import (
	"math"
	"sort"
	"time"

	"finhealth/pkg/models"
)

// trailingBurnPeriods is the window for the cash-runway burn average.
const trailingBurnPeriods = 3

// Engine groups line items by calendar month and derives a MetricSet per
// period. Ratios whose source categories are absent stay nil ("not
// available") instead of defaulting to zero; the scoring model treats nil as
// neutral.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// periodTotals accumulates category sums for one calendar month.
type periodTotals struct {
	start time.Time

	revenue     float64
	costOfGoods float64 // outflow magnitude
	opex        float64
	tax         float64

	currentAssets      float64
	currentLiabilities float64
	debt               float64
	equity             float64

	hasCOGS   bool
	hasOpex   bool
	hasCA     bool
	hasCL     bool
	hasDebt   bool
	hasEquity bool
}

// Compute derives one MetricSet per calendar month present in the statement.
// Fails with InsufficientData when no full period of line items exists.
func (e *Engine) Compute(st *models.NormalizedStatement) ([]models.MetricSet, error) {
	if st == nil || len(st.Items) == 0 {
		return nil, models.NewFault(models.FaultInsufficientData,
			"statement contains no line items to aggregate")
	}

	byMonth := make(map[int]*periodTotals)
	for _, item := range st.Items {
		key := item.Date.Year()*100 + int(item.Date.Month())
		pt, ok := byMonth[key]
		if !ok {
			pt = &periodTotals{start: time.Date(item.Date.Year(), item.Date.Month(), 1, 0, 0, 0, 0, time.UTC)}
			byMonth[key] = pt
		}
		pt.add(item)
	}

	keys := make([]int, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	sets := make([]models.MetricSet, 0, len(keys))
	cumulativeCash := 0.0
	var burnHistory []float64

	for i, key := range keys {
		pt := byMonth[key]
		ms := pt.toMetricSet()

		// Growth compares against the immediately preceding period; the
		// first period has no growth rate.
		if i > 0 {
			prev := sets[i-1]
			if prev.Revenue > 0 {
				growth := (ms.Revenue - prev.Revenue) / prev.Revenue * 100
				ms.RevenueGrowthRate = &growth
			}
		}

		cumulativeCash += ms.NetIncome
		burnHistory = append(burnHistory, math.Max(0, -ms.NetIncome))
		if runway, ok := cashRunway(cumulativeCash, burnHistory); ok {
			ms.CashRunwayMonths = &runway
		}

		sets = append(sets, ms)
	}

	return sets, nil
}

func (pt *periodTotals) add(item models.LineItem) {
	amt := item.Amount()
	switch item.Category {
	case models.CategoryRevenue:
		pt.revenue += amt
	case models.CategoryCostOfGoods:
		pt.costOfGoods += math.Abs(amt)
		pt.hasCOGS = true
	case models.CategoryOperatingExpense:
		pt.opex += math.Abs(amt)
		pt.hasOpex = true
	case models.CategoryTax:
		pt.tax += math.Abs(amt)
	case models.CategoryCurrentAsset:
		pt.currentAssets += math.Abs(amt)
		pt.hasCA = true
	case models.CategoryCurrentLiability:
		pt.currentLiabilities += math.Abs(amt)
		pt.hasCL = true
	case models.CategoryDebt:
		pt.debt += math.Abs(amt)
		pt.hasDebt = true
	case models.CategoryEquity:
		pt.equity += math.Abs(amt)
		pt.hasEquity = true
	}
	// CategoryOther carries no statement role and stays out of the totals.
}

func (pt *periodTotals) toMetricSet() models.MetricSet {
	expenses := pt.costOfGoods + pt.opex + pt.tax
	ms := models.MetricSet{
		PeriodStart: pt.start,
		PeriodEnd:   pt.start.AddDate(0, 1, 0).Add(-time.Second),
		Revenue:     pt.revenue,
		Expenses:    expenses,
		NetIncome:   pt.revenue - expenses,
	}

	if pt.revenue > 0 {
		net := ms.NetIncome / pt.revenue * 100
		ms.NetMargin = &net

		if pt.hasCOGS {
			gross := (pt.revenue - pt.costOfGoods) / pt.revenue * 100
			ms.GrossMargin = &gross
		}
		if pt.hasCOGS && pt.hasOpex {
			op := (pt.revenue - pt.costOfGoods - pt.opex) / pt.revenue * 100
			ms.OperatingMargin = &op
		}
	}

	if pt.hasCA && pt.hasCL && pt.currentLiabilities != 0 {
		cr := pt.currentAssets / pt.currentLiabilities
		ms.CurrentRatio = &cr
		wc := pt.currentAssets - pt.currentLiabilities
		ms.WorkingCapital = &wc
	}

	if pt.hasDebt && pt.hasEquity && pt.equity != 0 {
		dte := pt.debt / pt.equity
		ms.DebtToEquity = &dte
	}

	// Total assets proxy: reported current assets. Good enough for an SME
	// turnover signal when no full balance sheet is uploaded.
	if pt.hasCA && pt.currentAssets != 0 && pt.revenue > 0 {
		at := pt.revenue / pt.currentAssets
		ms.AssetTurnover = &at
	}

	return ms
}

// cashRunway divides the liquid balance proxy (cumulative net income) by the
// trailing average burn. Not available when the trailing burn is zero — a
// company that is not burning cash has no finite runway.
func cashRunway(cumulativeCash float64, burnHistory []float64) (float64, bool) {
	window := burnHistory
	if len(window) > trailingBurnPeriods {
		window = window[len(window)-trailingBurnPeriods:]
	}

	total := 0.0
	for _, b := range window {
		total += b
	}
	avgBurn := total / float64(len(window))
	if avgBurn <= 0 {
		return 0, false
	}

	return math.Max(cumulativeCash, 0) / avgBurn, true
}
