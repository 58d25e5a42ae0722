package normalize

import (
	"bytes"
	"encoding/csv"
	"strings"

	"finhealth/pkg/core/textenc"
	"finhealth/pkg/models"
)

// readDelimited parses a CSV/TSV upload. The payload is first decoded to
// UTF-8 (bank exports routinely arrive as Windows-1252 or UTF-16), then the
// delimiter is sniffed from the first lines.
func readDelimited(fileBytes []byte) ([]RawRow, error) {
	decoded, err := textenc.DecodeUTF8(fileBytes)
	if err != nil {
		return nil, models.WrapFault(models.FaultMalformedInput, err, "could not decode text payload")
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.Comma = sniffDelimiter(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	cells, err := reader.ReadAll()
	if err != nil {
		return nil, models.WrapFault(models.FaultMalformedInput, err, "could not read delimited text")
	}

	return rowsFromTable(cells)
}

// sniffDelimiter picks the separator that appears most consistently across
// the first few lines, preferring ',' on a tie.
func sniffDelimiter(data []byte) rune {
	sample := string(data)
	if idx := strings.IndexByte(sample, '\n'); idx > 0 {
		// Up to five lines are enough to tell the candidates apart.
		lines := strings.SplitN(sample, "\n", 6)
		if len(lines) > 5 {
			lines = lines[:5]
		}
		sample = strings.Join(lines, "\n")
	}

	best, bestCount := ',', strings.Count(sample, ",")
	for _, cand := range []struct {
		sep   rune
		count int
	}{
		{';', strings.Count(sample, ";")},
		{'\t', strings.Count(sample, "\t")},
	} {
		if cand.count > bestCount {
			best, bestCount = cand.sep, cand.count
		}
	}

	return best
}
