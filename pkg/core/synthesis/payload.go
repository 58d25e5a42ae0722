package synthesis

import (
	"finhealth/pkg/models"
)

// responsePayload is the JSON shape requested from the AI backend. Field
// names mirror the prompt contract exactly; everything except the executive
// summary is optional and defaults to empty.
type responsePayload struct {
	ExecutiveSummary string `json:"executive_summary"`

	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`

	CostOptimization   []recommendationPayload `json:"cost_optimization"`
	RevenueEnhancement []recommendationPayload `json:"revenue_enhancement"`
	WorkingCapitalTips []recommendationPayload `json:"working_capital_tips"`
	TaxOptimization    []recommendationPayload `json:"tax_optimization"`

	RecommendedProducts []productPayload `json:"recommended_products"`
}

type recommendationPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type productPayload struct {
	ProductName   string   `json:"product_name"`
	Type          string   `json:"type"`
	InterestRange string   `json:"interest_range"`
	Benefits      []string `json:"benefits"`
}

func toRecommendations(in []recommendationPayload) []models.Recommendation {
	out := make([]models.Recommendation, 0, len(in))
	for _, r := range in {
		if r.Title == "" && r.Description == "" {
			continue
		}
		out = append(out, models.Recommendation{Title: r.Title, Description: r.Description})
	}
	return out
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
