package models

import (
	"time"
)

// SWOT holds the qualitative analysis lists. Each entry is a short point.
type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// Recommendation is one actionable item inside a recommendation list.
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Recommendations groups the advisory lists by theme.
type Recommendations struct {
	CostOptimization   []Recommendation `json:"cost_optimization"`
	RevenueEnhancement []Recommendation `json:"revenue_enhancement"`
	WorkingCapitalTips []Recommendation `json:"working_capital_tips"`
	TaxOptimization    []Recommendation `json:"tax_optimization"`
}

// Product is a financial product surfaced to the company.
type Product struct {
	ProductName   string   `json:"product_name"`
	Type          string   `json:"type"`
	InterestRange string   `json:"interest_range"`
	Benefits      []string `json:"benefits"`
}

// Assessment is the persisted, immutable bundle of metrics, score, and
// AI-synthesized qualitative analysis for one generation event. New
// assessments supersede old ones; history is append-only per company.
type Assessment struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`

	Metrics MetricSet   `json:"metrics"` // snapshot; re-scoring it reproduces Score
	Score   ScoreResult `json:"score"`

	ExecutiveSummary    string          `json:"executive_summary"`
	SWOT                SWOT            `json:"swot"`
	Recommendations     Recommendations `json:"recommendations"`
	RecommendedProducts []Product       `json:"recommended_products"`

	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}
