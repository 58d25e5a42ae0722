package config

import (
	"os"
	"path/filepath"
	"testing"

	"finhealth/pkg/models"
)

func TestCategorize(t *testing.T) {
	tables := DefaultTables()

	cases := []struct {
		desc string
		want models.Category
	}{
		{"Product sales", models.CategoryRevenue},
		{"Service revenue", models.CategoryRevenue},
		{"Cost of goods sold", models.CategoryCostOfGoods},
		{"Cost of sales", models.CategoryCostOfGoods}, // must not hit "sales" -> revenue
		{"Raw material purchases", models.CategoryCostOfGoods},
		{"Office rent", models.CategoryOperatingExpense},
		{"Salaries and wages", models.CategoryOperatingExpense},
		{"GST payable Q1", models.CategoryTax},
		{"Accounts receivable", models.CategoryCurrentAsset},
		{"Total current assets", models.CategoryCurrentAsset}, // "current" must not hit "rent"
		{"Accounts payable", models.CategoryCurrentLiability},
		{"Long-term debt", models.CategoryDebt},
		{"Bank loan repayment", models.CategoryDebt},
		{"Shareholders' equity", models.CategoryEquity},
		{"Retained earnings", models.CategoryEquity},
		{"Mystery transfer 42", models.CategoryOther},
	}

	for _, tc := range cases {
		if got := tables.Categorize(tc.desc); got != tc.want {
			t.Errorf("Categorize(%q): expected %s, got %s", tc.desc, tc.want, got)
		}
	}
}

func TestCategorizeIsCaseInsensitive(t *testing.T) {
	tables := DefaultTables()
	if got := tables.Categorize("PRODUCT SALES"); got != models.CategoryRevenue {
		t.Errorf("expected revenue, got %s", got)
	}
}

func TestProductByName(t *testing.T) {
	tables := DefaultTables()

	p, ok := tables.ProductByName("term loan")
	if !ok {
		t.Fatal("expected case-insensitive product lookup to succeed")
	}
	if !p.UnsuitableForHighRisk {
		t.Error("Term Loan should be flagged unsuitable for high risk")
	}

	if _, ok := tables.ProductByName("Crypto Margin Account"); ok {
		t.Error("unknown product should not resolve")
	}
}

func TestDefaultScoringTableIsCoherent(t *testing.T) {
	tables := DefaultTables()
	w := tables.Scoring.Weights

	total := w.Profitability + w.Liquidity + w.Leverage + w.Growth + w.Efficiency
	if total < 0.999 || total > 1.001 {
		t.Errorf("weights should sum to 1, got %f", total)
	}

	b := tables.Scoring.Bands
	if !(b.Low > b.Medium && b.Medium > b.High && b.High > 0) {
		t.Errorf("bands must be strictly descending: %+v", b)
	}
}

func TestLoadTablesFromYAML(t *testing.T) {
	content := `
categories:
  - keyword: widgets
    category: revenue
scoring:
  weights:
    profitability: 1.0
  ramps:
    net_margin: {floor: 0, ceil: 10}
  bands:
    low: 70
    medium: 40
    high: 20
products:
  - name: Pilot Loan
    type: Short-term financing
    interest_range: 9-11% per annum
    benefits: [Fast]
    unsuitable_for_high_risk: true
`
	path := filepath.Join(t.TempDir(), "tables.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tables, err := LoadTables(path)
	if err != nil {
		t.Fatalf("LoadTables failed: %v", err)
	}

	if got := tables.Categorize("Widgets sold"); got != models.CategoryRevenue {
		t.Errorf("expected revenue from custom keyword, got %s", got)
	}
	if tables.Scoring.Ramps.NetMargin.Ceil != 10 {
		t.Errorf("ramp not loaded: %+v", tables.Scoring.Ramps.NetMargin)
	}
	p, ok := tables.ProductByName("Pilot Loan")
	if !ok || !p.UnsuitableForHighRisk {
		t.Errorf("product not loaded correctly: %+v ok=%v", p, ok)
	}
}

func TestLoadTablesDefaultsOnEmptyPath(t *testing.T) {
	tables, err := LoadTables("")
	if err != nil {
		t.Fatalf("LoadTables failed: %v", err)
	}
	if len(tables.Categories) == 0 || len(tables.Products) == 0 {
		t.Error("empty path should yield the compiled-in defaults")
	}
}

func TestLoadTablesMissingFile(t *testing.T) {
	if _, err := LoadTables("/nonexistent/tables.yaml"); err == nil {
		t.Error("expected an error for a missing tables file")
	}
}
