package aggregate

import (
	"sort"

	"github.com/skyreach/ssot-cli/internal/model"
	"github.com/skyreach/ssot-cli/internal/priority"
)

// Candidate is one raw row's offer for a single output field. Recency is
// the row's own last_interaction_date resolved to ISO, or "" when the row
// had no parseable date.
type Candidate struct {
	Value          string
	SourceDataset  string
	SourceRecordID string
	Recency        string
}

// Select picks the winning candidate for one field. Blank values are
// dropped first; the rest are ordered by source priority, then recency,
// then source dataset and record ID so that ties are broken the same way
// no matter how the input was ordered. Returns false when every candidate
// is blank.
func Select(field string, candidates []Candidate, table *priority.Table) (model.FieldDecision, bool) {
	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if model.IsBlank(c.Value) {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		return model.FieldDecision{}, false
	}

	sort.Slice(kept, func(i, j int) bool {
		return Less(field, kept[i], kept[j], table)
	})

	win := kept[0]
	return model.FieldDecision{
		Value:               model.Clean(win.Value),
		SourceDataset:       win.SourceDataset,
		SourceRecordID:      win.SourceRecordID,
		SourcePriority:      table.Of(field, win.SourceDataset),
		LastInteractionDate: win.Recency,
	}, true
}

// Less orders two candidates for a field: higher priority first, then more
// recent interaction date, then source dataset and record ID ascending.
// An empty recency is the oldest possible value, so ISO strings compare
// correctly as plain bytes. The last two keys exist purely to keep the
// ordering total.
func Less(field string, a, b Candidate, table *priority.Table) bool {
	pa, pb := table.Of(field, a.SourceDataset), table.Of(field, b.SourceDataset)
	if pa != pb {
		return pa > pb
	}
	if a.Recency != b.Recency {
		return a.Recency > b.Recency
	}
	if a.SourceDataset != b.SourceDataset {
		return a.SourceDataset < b.SourceDataset
	}
	return a.SourceRecordID < b.SourceRecordID
}
