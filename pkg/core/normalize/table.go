package normalize

import (
	"strings"

	"finhealth/pkg/models"
)

// Header keyword sets. A row qualifies as the header when it names both a
// date column and an amount column; the description column falls back to the
// first remaining cell when no keyword matches.
var (
	dateHeaders   = []string{"date", "period", "month", "transaction date", "posting date"}
	amountHeaders = []string{"amount", "value", "debit", "credit", "total", "balance"}
	descHeaders   = []string{"description", "account", "item", "category", "particulars", "narration", "details", "line"}
)

type columnMap struct {
	date   int
	desc   int
	amount int
}

// rowsFromTable locates the header row in a raw cell table and maps the data
// rows below it to RawRows. Empty rows are dropped.
func rowsFromTable(table [][]string) ([]RawRow, error) {
	headerIdx, cols, ok := detectHeader(table)
	if !ok {
		return nil, models.NewFault(models.FaultMalformedInput,
			"could not locate a header row with a date column and an amount column")
	}

	var rows []RawRow
	for _, cells := range table[headerIdx+1:] {
		if isEmptyRow(cells) {
			continue
		}
		rows = append(rows, RawRow{
			Date:        cellAt(cells, cols.date),
			Description: cellAt(cells, cols.desc),
			Amount:      cellAt(cells, cols.amount),
		})
	}

	return rows, nil
}

// detectHeader scans rows top-down for one naming a date and an amount
// column. The scan covers the whole sheet since bank exports often carry
// preamble rows above the real header.
func detectHeader(table [][]string) (int, columnMap, bool) {
	for idx, cells := range table {
		cols := columnMap{date: -1, desc: -1, amount: -1}

		for i, cell := range cells {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name == "" {
				continue
			}
			switch {
			case cols.date < 0 && matchesAny(name, dateHeaders):
				cols.date = i
			case cols.amount < 0 && matchesAny(name, amountHeaders):
				cols.amount = i
			case cols.desc < 0 && matchesAny(name, descHeaders):
				cols.desc = i
			}
		}

		if cols.date < 0 || cols.amount < 0 {
			continue
		}

		if cols.desc < 0 {
			cols.desc = firstFreeColumn(cells, cols)
		}

		return idx, cols, true
	}

	return 0, columnMap{}, false
}

func matchesAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// firstFreeColumn picks a description fallback: the first column that is
// neither the date nor the amount column.
func firstFreeColumn(cells []string, cols columnMap) int {
	for i := range cells {
		if i != cols.date && i != cols.amount {
			return i
		}
	}
	return -1
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
