// Package loader reads grouped raw rows from source exports. The files it
// accepts sit at the boundary with the upstream grouping collaborator:
// each row already carries its entity slug (or gets one derived from the
// organization name), and the loader only bins rows by that slug.
package loader

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/skyreach/ssot-cli/internal/model"
)

// Column headers recognized in input files. Contact columns hold
// ;-separated, index-aligned lists.
const (
	headerSlug          = "organization_slug"
	headerName          = "organization_name"
	headerSource        = "source_dataset"
	headerRecordID      = "source_record_id"
	headerContactNames  = "contact_names"
	headerContactRoles  = "contact_roles"
	headerContactEmails = "contact_emails"
	headerContactPhones = "contact_phones"
)

// Load reads an XLSX or CSV export and returns rows grouped by slug.
func Load(path, sheetName string) (map[string][]model.RawRow, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path, sheetName)
	case ".csv":
		rows, err = readCSV(path)
	default:
		return nil, eris.Errorf("loader: unsupported input format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, eris.Errorf("loader: %s is empty", path)
	}

	groups := groupRows(rows[0], rows[1:])
	zap.L().Info("input loaded",
		zap.String("path", path),
		zap.Int("rows", len(rows)-1),
		zap.Int("groups", len(groups)),
	)
	return groups, nil
}

func readXLSX(path, sheetName string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "loader: open xlsx")
	}

	var sheet *xlsx.Sheet
	if sheetName != "" {
		s, ok := f.Sheet[sheetName]
		if !ok {
			return nil, eris.Errorf("loader: sheet %q not found", sheetName)
		}
		sheet = s
	} else {
		if len(f.Sheets) == 0 {
			return nil, eris.New("loader: workbook has no sheets")
		}
		sheet = f.Sheets[0]
	}

	var rows [][]string
	for _, row := range sheet.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, cell.String())
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "loader: open csv")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "loader: read csv")
	}
	return rows, nil
}

// groupRows bins data rows under their slug, deriving one from the
// organization name when the slug cell is blank. Rows with neither are
// skipped: they cannot be attached to any entity.
func groupRows(header []string, data [][]string) map[string][]model.RawRow {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cell := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return model.Clean(row[i])
	}

	groups := make(map[string][]model.RawRow)
	skipped := 0
	for _, row := range data {
		raw := model.RawRow{
			OrganizationName: cell(row, headerName),
			SourceDataset:    cell(row, headerSource),
			SourceRecordID:   cell(row, headerRecordID),
			Province:         cell(row, model.ColProvince),
			Area:             cell(row, model.ColArea),
			Address:          cell(row, model.ColAddressPrimary),
			Category:         cell(row, model.ColOrganizationCategory),
			OrganizationType: cell(row, model.ColOrganizationType),
			Status:           cell(row, model.ColStatus),
			Website:          cell(row, model.ColWebsite),
			Planes:           cell(row, model.ColPlanes),
			Description:      cell(row, model.ColDescription),
			Notes:            cell(row, model.ColNotes),
			Priority:         cell(row, model.ColPriority),
			PrivacyBasis:     cell(row, model.ColPrivacyBasis),
			LastInteraction:  cell(row, model.ColLastInteractionDate),
			Contacts: zipContacts(
				cell(row, headerContactNames),
				cell(row, headerContactRoles),
				cell(row, headerContactEmails),
				cell(row, headerContactPhones),
			),
		}

		slug := cell(row, headerSlug)
		if slug == "" {
			slug = Slugify(raw.OrganizationName)
		}
		if slug == "" {
			skipped++
			continue
		}
		groups[slug] = append(groups[slug], raw)
	}

	if skipped > 0 {
		zap.L().Warn("rows without slug or name skipped", zap.Int("skipped", skipped))
	}
	return groups
}

// zipContacts zips the four ;-separated parallel lists into contacts.
// Position i across the four columns describes one person; short lists
// leave the remaining fields blank.
func zipContacts(names, roles, emails, phones string) []model.Contact {
	n := splitList(names)
	r := splitList(roles)
	e := splitList(emails)
	p := splitList(phones)

	count := len(n)
	for _, l := range [][]string{r, e, p} {
		if len(l) > count {
			count = len(l)
		}
	}

	var contacts []model.Contact
	for i := 0; i < count; i++ {
		c := model.Contact{
			Name:  at(n, i),
			Role:  at(r, i),
			Email: at(e, i),
			Phone: at(p, i),
		}
		if c.Name == "" && c.Role == "" && c.Email == "" && c.Phone == "" {
			continue
		}
		contacts = append(contacts, c)
	}
	return contacts
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = model.Clean(p)
	}
	return out
}

func at(list []string, i int) string {
	if i < len(list) {
		return list[i]
	}
	return ""
}

// LoadIntents reads the optional per-slug intent summary YAML file.
func LoadIntents(path string) (map[string]model.IntentSummary, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: read intents %s", path)
	}
	var intents map[string]model.IntentSummary
	if err := yaml.Unmarshal(data, &intents); err != nil {
		return nil, eris.Wrapf(err, "loader: parse intents %s", path)
	}
	return intents, nil
}
