package normalize

import (
	"regexp"
	"strings"
)

// LineItemExtractor recovers candidate (date, description, amount) triples
// from unstructured document text. Implementations are pluggable so a
// layout-aware extractor can replace the default line-pattern heuristics.
type LineItemExtractor interface {
	Extract(text string) []RawRow
}

// HeuristicExtractor matches one line item per text line: a leading date
// token, a trailing amount token, and the description in between. This path
// is best-effort; its output is tagged low-confidence downstream.
type HeuristicExtractor struct {
	pattern *regexp.Regexp
}

const (
	datePattern   = `\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4}|\d{1,2}\s+[A-Za-z]{3,9}\.?\s+\d{4}|[A-Za-z]{3,9}\s+\d{1,2},\s+\d{4}`
	amountPattern = `\(?-?[$€£₹]?\s?\d[\d.,]*\)?-?`
)

func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{
		pattern: regexp.MustCompile(`^(` + datePattern + `)\s+(.+?)\s+(` + amountPattern + `)$`),
	}
}

func (e *HeuristicExtractor) Extract(text string) []RawRow {
	var rows []RawRow

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := e.pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rows = append(rows, RawRow{
			Date:        m[1],
			Description: m[2],
			Amount:      m[3],
		})
	}

	return rows
}
