package synthesis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"finhealth/pkg/models"
)

const systemPrompt = "You are an expert financial analyst with deep knowledge of SME finance, " +
	"accounting, and financial planning. Respond with a single JSON object and nothing else."

// assessmentPromptTmpl embeds the deterministic inputs and pins the exact
// response fields. The product catalog is included so the model picks from
// known products; suitability is still enforced by the post-filter, never by
// the prompt alone.
var assessmentPromptTmpl = template.Must(template.New("assessment").Parse(`Analyze the financial health of the following company and produce a structured assessment.

Company:
- Name: {{.Company.Name}}
- Industry: {{.Company.Industry}}

Computed financial metrics for the latest period:
{{.MetricsJSON}}

Financial health score: {{.Score.FinancialHealthScore}}/100
Risk level: {{.Score.RiskLevel}}

Available financial products:
{{.ProductsJSON}}

Respond with a JSON object containing exactly these fields:
- "executive_summary": 3-4 paragraphs covering overall health, the score and risk level, key strengths and concerns, and top recommendations.{{if .LanguageNote}} {{.LanguageNote}}{{end}}
- "strengths", "weaknesses", "opportunities", "threats": arrays of 3-5 short strings each.
- "cost_optimization", "revenue_enhancement", "working_capital_tips", "tax_optimization": arrays of 3-5 objects with "title" and "description" fields.
- "recommended_products": array of objects with "product_name", "type", "interest_range", and "benefits" (array of strings), chosen from the available products.

Base every point on the metrics above. Do not invent figures.`))

type promptInput struct {
	Company      models.CompanyProfile
	MetricsJSON  string
	Score        models.ScoreResult
	ProductsJSON string
	LanguageNote string
}

// buildPrompt renders the deterministic assessment prompt.
func buildPrompt(profile models.CompanyProfile, ms models.MetricSet, score models.ScoreResult, products interface{}, language string) (string, error) {
	metricsJSON, err := json.MarshalIndent(ms, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal metrics: %w", err)
	}
	productsJSON, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal products: %w", err)
	}

	in := promptInput{
		Company:      profile,
		MetricsJSON:  string(metricsJSON),
		Score:        score,
		ProductsJSON: string(productsJSON),
		LanguageNote: languageNote(language),
	}

	var buf bytes.Buffer
	if err := assessmentPromptTmpl.Execute(&buf, in); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}

func languageNote(language string) string {
	switch language {
	case "", "en":
		return ""
	case "hi":
		return "Write the executive summary in Hindi."
	default:
		return fmt.Sprintf("Write the executive summary in the language with code %q.", language)
	}
}

// repairPrompt re-requests the payload with the parse failure appended, for
// the single repair pass.
func repairPrompt(original string, parseErr error) string {
	return fmt.Sprintf("%s\n\nYour previous response could not be parsed: %v\nReturn only the corrected JSON object, with no surrounding text.", original, parseErr)
}
