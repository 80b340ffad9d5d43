package model

import (
	"encoding/json"

	"github.com/rotisserie/eris"
)

// FieldDecision records one field's selection outcome: which source row
// supplied the winning value and the signals that made it win.
type FieldDecision struct {
	Value               string `json:"-"`
	SourceDataset       string `json:"source_dataset"`
	SourceRecordID      string `json:"source_record_id"`
	SourcePriority      int    `json:"source_priority"`
	LastInteractionDate string `json:"last_interaction_date"`
}

// provenanceEntry is the wire shape of one selection_provenance value.
// last_interaction_date serializes as null when the winning row had no
// parseable date, matching the published JSON contract.
type provenanceEntry struct {
	SourceDataset       string  `json:"source_dataset"`
	SourceRecordID      string  `json:"source_record_id"`
	SourcePriority      int     `json:"source_priority"`
	LastInteractionDate *string `json:"last_interaction_date"`
}

// ProvenanceMap maps output field names to the decision that filled them.
// It is built once per entity group and never mutated afterwards.
type ProvenanceMap map[string]FieldDecision

// JSON renders the map as the selection_provenance column text.
// encoding/json emits map keys in sorted order, so two runs over the same
// group produce byte-identical output.
func (p ProvenanceMap) JSON() (string, error) {
	if len(p) == 0 {
		return "{}", nil
	}

	entries := make(map[string]provenanceEntry, len(p))
	for k, d := range p {
		e := provenanceEntry{
			SourceDataset:  d.SourceDataset,
			SourceRecordID: d.SourceRecordID,
			SourcePriority: d.SourcePriority,
		}
		if d.LastInteractionDate != "" {
			date := d.LastInteractionDate
			e.LastInteractionDate = &date
		}
		entries[k] = e
	}

	out, err := json.Marshal(entries)
	if err != nil {
		return "", eris.Wrap(err, "provenance: marshal")
	}
	return string(out), nil
}
