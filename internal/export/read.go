package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/skyreach/ssot-cli/internal/model"
)

// ReadTable reads a previously exported SSOT table back into records, for
// re-validation without re-aggregating. Column order in the file may
// differ from the canonical order; the header decides.
func ReadTable(path, sheetName string) ([]model.CanonicalRecord, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSXRows(path, sheetName)
	case ".csv":
		rows, err = readCSVRows(path)
	default:
		return nil, eris.Errorf("export: unsupported table format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, eris.Errorf("export: %s is empty", path)
	}

	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		idx[strings.TrimSpace(h)] = i
	}

	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]model.CanonicalRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := model.CanonicalRecord{
			OrganizationName:       cell(row, model.ColOrganizationName),
			OrganizationSlug:       cell(row, model.ColOrganizationSlug),
			Province:               cell(row, model.ColProvince),
			Country:                cell(row, model.ColCountry),
			Area:                   cell(row, model.ColArea),
			AddressPrimary:         cell(row, model.ColAddressPrimary),
			OrganizationCategory:   cell(row, model.ColOrganizationCategory),
			OrganizationType:       cell(row, model.ColOrganizationType),
			Status:                 cell(row, model.ColStatus),
			Website:                cell(row, model.ColWebsite),
			Planes:                 cell(row, model.ColPlanes),
			Description:            cell(row, model.ColDescription),
			Notes:                  cell(row, model.ColNotes),
			SourceDatasets:         cell(row, model.ColSourceDatasets),
			SourceRecordIDs:        cell(row, model.ColSourceRecordIDs),
			ContactPrimaryName:     cell(row, model.ColContactPrimaryName),
			ContactPrimaryRole:     cell(row, model.ColContactPrimaryRole),
			ContactPrimaryEmail:    cell(row, model.ColContactPrimaryEmail),
			ContactPrimaryPhone:    cell(row, model.ColContactPrimaryPhone),
			ContactSecondaryEmails: cell(row, model.ColContactSecondaryEmails),
			ContactSecondaryPhones: cell(row, model.ColContactSecondaryPhones),
			DataQualityFlags:       cell(row, model.ColDataQualityFlags),
			SelectionProvenance:    cell(row, model.ColSelectionProvenance),
			LastInteractionDate:    cell(row, model.ColLastInteractionDate),
			Priority:               cell(row, model.ColPriority),
			PrivacyBasis:           cell(row, model.ColPrivacyBasis),
		}
		if rec.SelectionProvenance == "" {
			rec.SelectionProvenance = "{}"
		}
		if raw := cell(row, model.ColDataQualityScore); raw != "" {
			score, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, eris.Wrapf(err, "export: parse data_quality_score %q", raw)
			}
			rec.DataQualityScore = score
		}
		records = append(records, rec)
	}
	return records, nil
}

func readXLSXRows(path, sheetName string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "export: open xlsx")
	}
	var sheet *xlsx.Sheet
	if sheetName != "" {
		s, ok := f.Sheet[sheetName]
		if !ok {
			return nil, eris.Errorf("export: sheet %q not found", sheetName)
		}
		sheet = s
	} else {
		if len(f.Sheets) == 0 {
			return nil, eris.New("export: workbook has no sheets")
		}
		sheet = f.Sheets[0]
	}

	var rows [][]string
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "export: open csv")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "export: read csv")
	}
	return rows, nil
}
