// Package synthesis turns computed metrics and a score into a full
// assessment by orchestrating one generative-AI call: deterministic prompt,
// bounded retries, strict parsing with a single repair pass, and a hard
// product post-filter.
package synthesis

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"finhealth/pkg/core/config"
	"finhealth/pkg/core/jsonio"
	"finhealth/pkg/core/llm"
	"finhealth/pkg/models"
)

// Options bound the backend call.
type Options struct {
	Timeout     time.Duration // per attempt
	MaxAttempts int           // transient-failure retry budget
	BackoffBase time.Duration // doubled per retry
}

func (o *Options) fill() {
	if o.Timeout <= 0 {
		o.Timeout = 60 * time.Second
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.BackoffBase <= 0 {
		o.BackoffBase = time.Second
	}
}

// Synthesizer assembles assessments from metrics, score, and the AI backend.
type Synthesizer struct {
	provider llm.Provider
	tables   *config.Tables
	opts     Options
}

func New(provider llm.Provider, tables *config.Tables, opts Options) *Synthesizer {
	opts.fill()
	return &Synthesizer{provider: provider, tables: tables, opts: opts}
}

// Synthesize produces a complete, immutable Assessment.
//
// Failure modes:
//   - GenerationFailed: the backend call errored or timed out after the
//     bounded retry policy
//   - SchemaViolation: the payload could not be coerced into the assessment
//     shape after one repair pass, or the executive summary is missing
func (s *Synthesizer) Synthesize(ctx context.Context, profile models.CompanyProfile, ms models.MetricSet, score models.ScoreResult, language string) (*models.Assessment, error) {
	prompt, err := buildPrompt(profile, ms, score, s.tables.Products, language)
	if err != nil {
		return nil, models.WrapFault(models.FaultGenerationFailed, err, "could not build prompt")
	}

	raw, err := s.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var payload responsePayload
	if parseErr := jsonio.Decode(raw, &payload); parseErr != nil {
		// Single repair pass: re-request with the parse error appended.
		log.Printf("[SYNTH] parse failed for company %s, attempting repair pass: %v", profile.ID, parseErr)

		raw, err = s.callWithRetry(ctx, repairPrompt(prompt, parseErr))
		if err != nil {
			return nil, err
		}
		payload = responsePayload{}
		if parseErr = jsonio.Decode(raw, &payload); parseErr != nil {
			return nil, models.WrapFault(models.FaultSchemaViolation, parseErr,
				"backend payload unparseable after repair pass")
		}
	}

	return s.assemble(profile, ms, score, language, &payload)
}

// callWithRetry runs the backend call under a per-attempt timeout with
// exponential backoff. Only transient failures consume retries; anything
// else fails immediately since retrying will not change the outcome.
func (s *Synthesizer) callWithRetry(ctx context.Context, prompt string) (string, error) {
	req := llm.Request{Prompt: prompt, SystemPrompt: systemPrompt, JSONResponse: true}

	var lastErr error
	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
		raw, err := s.provider.Generate(attemptCtx, req)
		cancel()

		if err == nil {
			return raw, nil
		}
		lastErr = err

		if !llm.IsTransient(err) {
			return "", models.WrapFault(models.FaultGenerationFailed, err, "backend call failed")
		}
		if ctx.Err() != nil {
			break
		}
		if attempt < s.opts.MaxAttempts {
			backoff := s.opts.BackoffBase << (attempt - 1)
			log.Printf("[SYNTH] transient backend failure (attempt %d/%d), retrying in %s: %v",
				attempt, s.opts.MaxAttempts, backoff, err)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", models.WrapFault(models.FaultGenerationFailed, ctx.Err(), "generation canceled")
			}
		}
	}

	return "", models.WrapFault(models.FaultGenerationFailed, lastErr,
		"backend call failed after %d attempts", s.opts.MaxAttempts)
}

// assemble validates the payload field-by-field and applies the product
// post-filter. Missing lists default to empty; a missing executive summary
// is fatal since it is the assessment's primary deliverable.
func (s *Synthesizer) assemble(profile models.CompanyProfile, ms models.MetricSet, score models.ScoreResult, language string, payload *responsePayload) (*models.Assessment, error) {
	if payload.ExecutiveSummary == "" {
		return nil, models.NewFault(models.FaultSchemaViolation, "backend payload has no executive_summary")
	}
	if language == "" {
		language = "en"
	}

	return &models.Assessment{
		ID:        uuid.NewString(),
		CompanyID: profile.ID,
		Metrics:   ms,
		Score:     score,

		ExecutiveSummary: payload.ExecutiveSummary,
		SWOT: models.SWOT{
			Strengths:     nonEmpty(payload.Strengths),
			Weaknesses:    nonEmpty(payload.Weaknesses),
			Opportunities: nonEmpty(payload.Opportunities),
			Threats:       nonEmpty(payload.Threats),
		},
		Recommendations: models.Recommendations{
			CostOptimization:   toRecommendations(payload.CostOptimization),
			RevenueEnhancement: toRecommendations(payload.RevenueEnhancement),
			WorkingCapitalTips: toRecommendations(payload.WorkingCapitalTips),
			TaxOptimization:    toRecommendations(payload.TaxOptimization),
		},
		RecommendedProducts: s.filterProducts(payload.RecommendedProducts, score.RiskLevel),

		Language:  language,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// filterProducts enforces the suitability invariant after the backend
// responds: products flagged unsuitable for High/Critical tiers never reach
// the assessment, regardless of what the model suggested. Products known to
// the static table are canonicalized from it.
func (s *Synthesizer) filterProducts(suggested []productPayload, risk models.RiskLevel) []models.Product {
	highRisk := risk == models.RiskHigh || risk == models.RiskCritical

	out := make([]models.Product, 0, len(suggested))
	for _, p := range suggested {
		if p.ProductName == "" {
			continue
		}

		spec, known := s.tables.ProductByName(p.ProductName)
		if known {
			if highRisk && spec.UnsuitableForHighRisk {
				continue
			}
			out = append(out, models.Product{
				ProductName:   spec.Name,
				Type:          spec.Type,
				InterestRange: spec.InterestRange,
				Benefits:      spec.Benefits,
			})
			continue
		}

		out = append(out, models.Product{
			ProductName:   p.ProductName,
			Type:          p.Type,
			InterestRange: p.InterestRange,
			Benefits:      p.Benefits,
		})
	}
	return out
}
