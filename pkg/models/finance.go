package models

import (
	"time"
)

// DocumentType is the declared format of an uploaded financial document.
type DocumentType string

const (
	DocTypeTabular   DocumentType = "tabular"            // spreadsheet (xlsx)
	DocTypeDelimited DocumentType = "delimited-text"     // csv / tsv
	DocTypePortable  DocumentType = "portable-document"  // pdf
)

// Category classifies a line item by its role in the statements.
// The first five cover income-statement flows; the balance-sheet style
// categories unlock current_ratio and debt_to_equity when present.
type Category string

const (
	CategoryRevenue          Category = "revenue"
	CategoryCostOfGoods      Category = "cost_of_goods"
	CategoryOperatingExpense Category = "operating_expense"
	CategoryTax              Category = "tax"
	CategoryOther            Category = "other"

	CategoryCurrentAsset     Category = "current_asset"
	CategoryCurrentLiability Category = "current_liability"
	CategoryDebt             Category = "debt"
	CategoryEquity           Category = "equity"
)

// LineItem is a single dated, categorized monetary entry derived from a
// source document. Amounts are in cents; inflows positive, outflows negative.
// Immutable once created.
type LineItem struct {
	Date             time.Time `json:"date"`
	Description      string    `json:"description"`
	AmountCents      int64     `json:"amount_cents"`
	Category         Category  `json:"category"`
	SourceDocumentID string    `json:"source_document_id"`
	LowConfidence    bool      `json:"low_confidence,omitempty"` // heuristic text extraction
}

// Amount returns the line item value in currency units.
func (li LineItem) Amount() float64 {
	return float64(li.AmountCents) / 100.0
}

// NormalizedStatement is the ordered output of the document normalizer for
// one company. Consumed read-only downstream.
type NormalizedStatement struct {
	CompanyID   string     `json:"company_id"`
	DocumentID  string     `json:"document_id"`
	Items       []LineItem `json:"items"`
	SkippedRows int        `json:"skipped_rows"`
	TotalRows   int        `json:"total_rows"`
	CreatedAt   time.Time  `json:"created_at"`
}

// MetricSet holds the derived financial ratios and aggregates for one
// reporting period. Nil pointer fields mean "not available" — never
// defaulted to zero. Regenerated whenever source documents change.
type MetricSet struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	Revenue   float64 `json:"revenue"`
	Expenses  float64 `json:"expenses"`
	NetIncome float64 `json:"net_income"`

	GrossMargin       *float64 `json:"gross_margin,omitempty"`        // %
	OperatingMargin   *float64 `json:"operating_margin,omitempty"`    // %
	NetMargin         *float64 `json:"net_margin,omitempty"`          // %
	CurrentRatio      *float64 `json:"current_ratio,omitempty"`
	DebtToEquity      *float64 `json:"debt_to_equity,omitempty"`
	WorkingCapital    *float64 `json:"working_capital,omitempty"`
	CashRunwayMonths  *float64 `json:"cash_runway_months,omitempty"`
	RevenueGrowthRate *float64 `json:"revenue_growth_rate,omitempty"` // % vs prior period
	AssetTurnover     *float64 `json:"asset_turnover,omitempty"`
}

// RiskLevel is the discrete band derived from the health score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// ScoreResult is the deterministic output of the scoring model.
type ScoreResult struct {
	FinancialHealthScore int       `json:"financial_health_score"` // 0-100
	RiskLevel            RiskLevel `json:"risk_level"`
}

// CompanyProfile is the slice of the company record the core consumes.
type CompanyProfile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Industry     string `json:"industry"`
	Registration string `json:"registration,omitempty"`
}
