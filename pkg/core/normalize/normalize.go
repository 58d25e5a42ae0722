// Package normalize converts heterogeneous uploaded financial documents
// (spreadsheets, delimited text, PDFs) into a canonical sequence of dated,
// categorized line items.
package normalize

import (
	"strings"
	"time"

	"finhealth/pkg/core/config"
	"finhealth/pkg/models"
)

// maxSkippedFraction is the tolerated share of unparseable rows before the
// whole document is rejected instead of silently returning a near-empty
// statement.
const maxSkippedFraction = 0.5

// RawRow is a candidate (date, description, amount) triple before
// interpretation. Readers produce RawRows; the shared interpretation step
// turns them into line items.
type RawRow struct {
	Date        string
	Description string
	Amount      string
}

// Normalizer turns raw file bytes into a NormalizedStatement.
type Normalizer struct {
	tables    *config.Tables
	extractor LineItemExtractor
}

// New builds a Normalizer with the default heuristic text extractor.
func New(tables *config.Tables) *Normalizer {
	return &Normalizer{
		tables:    tables,
		extractor: NewHeuristicExtractor(),
	}
}

// SetExtractor swaps the unstructured-text extraction strategy, e.g. for a
// layout-aware implementation.
func (n *Normalizer) SetExtractor(e LineItemExtractor) {
	n.extractor = e
}

// Normalize parses the uploaded bytes according to the declared type.
//
// Failure modes:
//   - UnsupportedFormat: declaredType outside {tabular, delimited-text, portable-document}
//   - MalformedInput:    no header row / date column / amount column found
//   - LowQualityInput:   more than half the data rows failed date or amount parsing
func (n *Normalizer) Normalize(companyID, documentID string, fileBytes []byte, declaredType models.DocumentType) (*models.NormalizedStatement, error) {
	var (
		rows          []RawRow
		lowConfidence bool
		err           error
	)

	switch declaredType {
	case models.DocTypeTabular:
		rows, err = readTabular(fileBytes)
	case models.DocTypeDelimited:
		rows, err = readDelimited(fileBytes)
	case models.DocTypePortable:
		rows, err = n.readPortable(fileBytes)
		lowConfidence = true
	default:
		return nil, models.NewFault(models.FaultUnsupportedFormat,
			"declared type %q is not one of tabular, delimited-text, portable-document", declaredType)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, models.NewFault(models.FaultMalformedInput, "no data rows found below the header")
	}

	items, skipped := n.interpretRows(rows, documentID, lowConfidence)

	total := len(rows)
	if float64(skipped) > maxSkippedFraction*float64(total) {
		return nil, models.NewFault(models.FaultLowQualityInput,
			"%d of %d rows failed date or amount parsing", skipped, total)
	}

	return &models.NormalizedStatement{
		CompanyID:   companyID,
		DocumentID:  documentID,
		Items:       items,
		SkippedRows: skipped,
		TotalRows:   total,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// interpretRows applies the shared row-interpretation step: date parsing in
// fixed priority order, tolerant amount parsing, keyword categorization.
// A row failing date or amount parsing is skipped, not fatal.
func (n *Normalizer) interpretRows(rows []RawRow, documentID string, lowConfidence bool) ([]models.LineItem, int) {
	items := make([]models.LineItem, 0, len(rows))
	skipped := 0

	for _, row := range rows {
		date, ok := parseDate(row.Date)
		if !ok {
			skipped++
			continue
		}

		cents, err := parseAmountCents(row.Amount)
		if err != nil {
			skipped++
			continue
		}

		desc := strings.TrimSpace(row.Description)

		items = append(items, models.LineItem{
			Date:             date,
			Description:      desc,
			AmountCents:      cents,
			Category:         n.tables.Categorize(desc),
			SourceDocumentID: documentID,
			LowConfidence:    lowConfidence,
		})
	}

	return items, skipped
}
