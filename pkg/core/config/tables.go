package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"finhealth/pkg/models"
)

// KeywordRule maps a description keyword to a line-item category.
// Rules are checked in order; the first match wins.
type KeywordRule struct {
	Keyword  string          `yaml:"keyword"`
	Category models.Category `yaml:"category"`
}

// Ramp is a piecewise-linear normalization to [0,100]. Values at or below
// Floor score 0, at or beyond Ceil score 100, linear between. Floor > Ceil
// inverts the ramp (lower input is better, e.g. debt-to-equity).
type Ramp struct {
	Floor float64 `yaml:"floor"`
	Ceil  float64 `yaml:"ceil"`
}

// ScoringTable holds the weighting rules of the scoring model.
type ScoringTable struct {
	Weights struct {
		Profitability float64 `yaml:"profitability"`
		Liquidity     float64 `yaml:"liquidity"`
		Leverage      float64 `yaml:"leverage"`
		Growth        float64 `yaml:"growth"`
		Efficiency    float64 `yaml:"efficiency"`
	} `yaml:"weights"`

	Ramps struct {
		NetMargin     Ramp `yaml:"net_margin"`     // %
		CurrentRatio  Ramp `yaml:"current_ratio"`
		DebtToEquity  Ramp `yaml:"debt_to_equity"`
		RevenueGrowth Ramp `yaml:"revenue_growth"` // %
		AssetTurnover Ramp `yaml:"asset_turnover"`
	} `yaml:"ramps"`

	// Bands are lower-bound inclusive: score >= Low -> Low risk,
	// >= Medium -> Medium, >= High -> High, below -> Critical.
	Bands struct {
		Low    int `yaml:"low"`
		Medium int `yaml:"medium"`
		High   int `yaml:"high"`
	} `yaml:"bands"`
}

// ProductSpec is one entry of the static financial product table.
type ProductSpec struct {
	Name                  string   `yaml:"name"`
	Type                  string   `yaml:"type"`
	InterestRange         string   `yaml:"interest_range"`
	Benefits              []string `yaml:"benefits"`
	UnsuitableForHighRisk bool     `yaml:"unsuitable_for_high_risk"`
}

// Tables are the immutable startup lookup structures.
type Tables struct {
	Categories []KeywordRule `yaml:"categories"`
	Scoring    ScoringTable  `yaml:"scoring"`
	Products   []ProductSpec `yaml:"products"`
}

// Categorize classifies a row description using the keyword table.
// Returns CategoryOther when no keyword matches.
func (t *Tables) Categorize(description string) models.Category {
	desc := strings.ToLower(description)
	for _, rule := range t.Categories {
		if strings.Contains(desc, rule.Keyword) {
			return rule.Category
		}
	}
	return models.CategoryOther
}

// ProductByName looks up a product spec case-insensitively.
func (t *Tables) ProductByName(name string) (ProductSpec, bool) {
	for _, p := range t.Products {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return ProductSpec{}, false
}

// DefaultTables returns the compiled-in tables, calibrated for typical SME
// ranges.
func DefaultTables() *Tables {
	t := &Tables{
		// First match wins, so specific and balance-sheet keywords come
		// before the broad income-statement ones ("current" contains
		// "rent", "cost of sales" contains "sales").
		Categories: []KeywordRule{
			{"cost of goods", models.CategoryCostOfGoods},
			{"cost of sales", models.CategoryCostOfGoods},
			{"cogs", models.CategoryCostOfGoods},
			{"purchases", models.CategoryCostOfGoods},
			{"raw material", models.CategoryCostOfGoods},

			{"current assets", models.CategoryCurrentAsset},
			{"cash and cash equivalents", models.CategoryCurrentAsset},
			{"accounts receivable", models.CategoryCurrentAsset},
			{"receivables", models.CategoryCurrentAsset},
			{"inventory", models.CategoryCurrentAsset},
			{"inventories", models.CategoryCurrentAsset},

			{"current liabilities", models.CategoryCurrentLiability},
			{"accounts payable", models.CategoryCurrentLiability},
			{"payables", models.CategoryCurrentLiability},
			{"accrued liabilities", models.CategoryCurrentLiability},

			{"long-term debt", models.CategoryDebt},
			{"long term debt", models.CategoryDebt},
			{"loan", models.CategoryDebt},
			{"borrowings", models.CategoryDebt},
			{"debt", models.CategoryDebt},

			{"shareholders equity", models.CategoryEquity},
			{"shareholders' equity", models.CategoryEquity},
			{"owners equity", models.CategoryEquity},
			{"retained earnings", models.CategoryEquity},
			{"equity", models.CategoryEquity},

			{"gst", models.CategoryTax},
			{"vat", models.CategoryTax},
			{"tax", models.CategoryTax},

			{"revenue", models.CategoryRevenue},
			{"sales", models.CategoryRevenue},
			{"turnover", models.CategoryRevenue},
			{"fees earned", models.CategoryRevenue},

			{"salar", models.CategoryOperatingExpense},
			{"payroll", models.CategoryOperatingExpense},
			{"rent", models.CategoryOperatingExpense},
			{"utilities", models.CategoryOperatingExpense},
			{"marketing", models.CategoryOperatingExpense},
			{"advertising", models.CategoryOperatingExpense},
			{"insurance", models.CategoryOperatingExpense},
			{"office", models.CategoryOperatingExpense},
			{"maintenance", models.CategoryOperatingExpense},
			{"travel", models.CategoryOperatingExpense},
			{"expense", models.CategoryOperatingExpense},
		},
		Products: []ProductSpec{
			{
				Name:          "Working Capital Loan",
				Type:          "Short-term financing",
				InterestRange: "10-14% per annum",
				Benefits:      []string{"Quick approval", "Flexible repayment"},
			},
			{
				Name:          "Invoice Financing",
				Type:          "Receivables financing",
				InterestRange: "12-18% per annum",
				Benefits:      []string{"Unlock receivables", "No collateral"},
			},
			{
				Name:                  "Term Loan",
				Type:                  "Long-term financing",
				InterestRange:         "11-15% per annum",
				Benefits:              []string{"Business expansion", "Asset purchase"},
				UnsuitableForHighRisk: true,
			},
			{
				Name:                  "Equipment Financing",
				Type:                  "Asset-backed financing",
				InterestRange:         "9-13% per annum",
				Benefits:              []string{"Preserve cash", "Tax benefits"},
				UnsuitableForHighRisk: true,
			},
			{
				Name:          "Trade Credit",
				Type:          "Supplier financing",
				InterestRange: "0-2% per month",
				Benefits:      []string{"Defer payments", "Strengthen supplier ties"},
			},
		},
	}

	t.Scoring.Weights.Profitability = 0.30
	t.Scoring.Weights.Liquidity = 0.25
	t.Scoring.Weights.Leverage = 0.20
	t.Scoring.Weights.Growth = 0.15
	t.Scoring.Weights.Efficiency = 0.10

	t.Scoring.Ramps.NetMargin = Ramp{Floor: 0, Ceil: 15}
	t.Scoring.Ramps.CurrentRatio = Ramp{Floor: 0.5, Ceil: 2.0}
	t.Scoring.Ramps.DebtToEquity = Ramp{Floor: 2.5, Ceil: 0.5} // inverted
	t.Scoring.Ramps.RevenueGrowth = Ramp{Floor: -10, Ceil: 20}
	t.Scoring.Ramps.AssetTurnover = Ramp{Floor: 0.5, Ceil: 1.5}

	t.Scoring.Bands.Low = 70
	t.Scoring.Bands.Medium = 40
	t.Scoring.Bands.High = 20

	return t
}

// LoadTables reads tables from a YAML file, falling back to the compiled-in
// defaults when path is empty.
func LoadTables(path string) (*Tables, error) {
	if path == "" {
		return DefaultTables(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables file: %w", err)
	}

	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse tables file: %w", err)
	}

	return &t, nil
}
