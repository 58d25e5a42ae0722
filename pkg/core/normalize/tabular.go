package normalize

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"finhealth/pkg/models"
)

// readTabular parses a spreadsheet upload. The first non-empty sheet is
// taken as the statement; multi-sheet workbooks keep source ordering.
func readTabular(fileBytes []byte) ([]RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, models.WrapFault(models.FaultMalformedInput, err, "could not open spreadsheet")
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		cells, err := f.GetRows(sheet)
		if err != nil {
			return nil, models.WrapFault(models.FaultMalformedInput, err, "could not read sheet %q", sheet)
		}
		if len(cells) == 0 {
			continue
		}
		return rowsFromTable(cells)
	}

	return nil, models.NewFault(models.FaultMalformedInput, "workbook has no non-empty sheet")
}
