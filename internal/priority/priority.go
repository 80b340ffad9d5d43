// Package priority holds the per-field, per-source-dataset trust ranking
// used to break ties in field selection. The table is pure data loaded at
// startup; selection logic never hardcodes source names.
package priority

import (
	"github.com/rotisserie/eris"
)

// DefaultKey resolves source datasets not named in a field's ranking.
// Every field table must carry it; a table without it is a configuration
// error, not a data problem.
const DefaultKey = "default"

// Fallback is the field table applied to fields without their own entry.
const Fallback = "*"

// Table maps field name -> source dataset -> rank. Higher ranks win.
type Table struct {
	fields map[string]map[string]int
}

// New builds a Table from raw configuration and validates it. Validation
// failures are fatal: a misconfigured table means the engine itself is
// broken, unlike imperfect row data which is always recovered from.
func New(fields map[string]map[string]int) (*Table, error) {
	if len(fields) == 0 {
		return nil, eris.New("priority: empty table")
	}
	if _, ok := fields[Fallback]; !ok {
		return nil, eris.Errorf("priority: missing %q field table", Fallback)
	}
	for field, ranks := range fields {
		if len(ranks) == 0 {
			return nil, eris.Errorf("priority: field %q has no rankings", field)
		}
		if _, ok := ranks[DefaultKey]; !ok {
			return nil, eris.Errorf("priority: field %q missing %q rank", field, DefaultKey)
		}
	}
	return &Table{fields: fields}, nil
}

// Of returns the rank of sourceDataset for field. Fields absent from the
// table use the "*" fallback table; unknown source datasets resolve to
// the field's default rank.
func (t *Table) Of(field, sourceDataset string) int {
	ranks, ok := t.fields[field]
	if !ok {
		ranks = t.fields[Fallback]
	}
	if rank, ok := ranks[sourceDataset]; ok {
		return rank
	}
	return ranks[DefaultKey]
}

// Fields returns the set of field names with explicit rankings.
func (t *Table) Fields() []string {
	out := make([]string, 0, len(t.fields))
	for f := range t.fields {
		out = append(out, f)
	}
	return out
}
