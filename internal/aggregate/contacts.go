package aggregate

import (
	"sort"
	"strings"

	"github.com/skyreach/ssot-cli/internal/model"
	"github.com/skyreach/ssot-cli/internal/priority"
)

// ContactBundle is the merged contact block for one entity: a primary
// contact plus the deduplicated remainder.
type ContactBundle struct {
	PrimaryName     string
	PrimaryRole     string
	PrimaryEmail    string
	PrimaryPhone    string
	SecondaryEmails []string
	SecondaryPhones []string
}

type contactCandidate struct {
	Candidate
	contact model.Contact
	index   int
}

// MergeContacts designates a primary contact across all contributing rows
// and folds every other distinct email and phone into sorted secondary
// lists. The primary is the contact supplying the best email under the
// same priority/recency ordering as scalar field selection; when no row
// carries an email, the best phone picks the primary instead. The winning
// decision is returned for provenance; ok is false when no row has any
// contact data.
func MergeContacts(rows []model.RawRow, recencies []string, table *priority.Table) (ContactBundle, model.FieldDecision, bool) {
	emailCands := contactCandidates(rows, recencies, func(c model.Contact) string { return c.Email })
	field := model.ColContactPrimaryEmail
	cands := emailCands
	if len(cands) == 0 {
		cands = contactCandidates(rows, recencies, func(c model.Contact) string { return c.Phone })
		field = model.ColContactPrimaryPhone
	}

	var bundle ContactBundle
	var decision model.FieldDecision
	found := len(cands) > 0
	if found {
		sort.Slice(cands, func(i, j int) bool {
			a, b := cands[i], cands[j]
			if a.SourceRecordID != b.SourceRecordID || a.SourceDataset != b.SourceDataset {
				return Less(field, a.Candidate, b.Candidate, table)
			}
			// Same row: the earlier list position wins.
			return a.index < b.index
		})
		win := cands[0]
		bundle.PrimaryName = model.Clean(win.contact.Name)
		bundle.PrimaryRole = model.Clean(win.contact.Role)
		bundle.PrimaryEmail = model.Clean(win.contact.Email)
		bundle.PrimaryPhone = model.Clean(win.contact.Phone)
		decision = model.FieldDecision{
			Value:               model.Clean(win.Value),
			SourceDataset:       win.SourceDataset,
			SourceRecordID:      win.SourceRecordID,
			SourcePriority:      table.Of(field, win.SourceDataset),
			LastInteractionDate: win.Recency,
		}
	}

	bundle.SecondaryEmails = secondaryEmails(rows, bundle.PrimaryEmail)
	bundle.SecondaryPhones = secondaryPhones(rows, bundle.PrimaryPhone)

	return bundle, decision, found
}

func contactCandidates(rows []model.RawRow, recencies []string, value func(model.Contact) string) []contactCandidate {
	var out []contactCandidate
	for ri, row := range rows {
		for ci, contact := range row.Contacts {
			v := value(contact)
			if model.IsBlank(v) {
				continue
			}
			out = append(out, contactCandidate{
				Candidate: Candidate{
					Value:          v,
					SourceDataset:  row.SourceDataset,
					SourceRecordID: row.SourceRecordID,
					Recency:        recencies[ri],
				},
				contact: contact,
				index:   ci,
			})
		}
	}
	return out
}

// secondaryEmails collects every distinct non-blank email other than the
// primary, deduplicated case-insensitively. Sorting rather than keeping
// encounter order makes the joined string independent of row ordering.
func secondaryEmails(rows []model.RawRow, primary string) []string {
	primaryKey := strings.ToLower(primary)
	byKey := make(map[string]string)
	for _, row := range rows {
		for _, c := range row.Contacts {
			email := model.Clean(c.Email)
			if email == "" {
				continue
			}
			key := strings.ToLower(email)
			if key == primaryKey && primaryKey != "" {
				continue
			}
			if have, ok := byKey[key]; !ok || email < have {
				byKey[key] = email
			}
		}
	}
	out := make([]string, 0, len(byKey))
	for _, email := range byKey {
		out = append(out, email)
	}
	sort.Strings(out)
	return out
}

func secondaryPhones(rows []model.RawRow, primary string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range rows {
		for _, c := range row.Contacts {
			phone := model.Clean(c.Phone)
			if phone == "" || phone == primary {
				continue
			}
			if _, ok := seen[phone]; ok {
				continue
			}
			seen[phone] = struct{}{}
			out = append(out, phone)
		}
	}
	sort.Strings(out)
	return out
}
