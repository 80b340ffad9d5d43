// Package export writes the canonical SSOT table in its fixed column
// order and renders the run quality report.
package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/skyreach/ssot-cli/internal/model"
)

// WriteXLSX writes the table as a single-sheet workbook.
func WriteXLSX(records []model.CanonicalRecord, path, sheetName string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range model.Columns {
		header.AddCell().SetString(col)
	}

	for _, rec := range records {
		row := sheet.AddRow()
		for _, col := range model.Columns {
			cell := row.AddCell()
			if col == model.ColDataQualityScore {
				cell.SetString(formatScore(rec.DataQualityScore))
				continue
			}
			cell.SetString(rec.Value(col))
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save xlsx")
	}
	return nil
}

// WriteCSV writes the table as CSV with the same columns as the workbook.
func WriteCSV(records []model.CanonicalRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(model.Columns); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, rec := range records {
		row := make([]string, len(model.Columns))
		for i, col := range model.Columns {
			if col == model.ColDataQualityScore {
				row[i] = formatScore(rec.DataQualityScore)
				continue
			}
			row[i] = rec.Value(col)
		}
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}
	w.Flush()
	return eris.Wrap(w.Error(), "export: flush csv")
}

// formatScore renders scores with a stable minimal representation so the
// same table always serializes identically.
func formatScore(s float64) string {
	return strconv.FormatFloat(s, 'g', -1, 64)
}
