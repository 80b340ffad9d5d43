package model

// Violation is one schema rule broken by one output row.
type Violation struct {
	Column string `json:"column"`
	Reason string `json:"reason"`
}

// RowResult pairs a validated row index with its violations. Rows with
// violations are still persisted; the pair exists so no caller can keep
// the record while losing the failure list.
type RowResult struct {
	RowIndex   int         `json:"row_index"`
	Violations []Violation `json:"violations"`
}

// ValidationReport summarizes schema validation over a canonical table.
type ValidationReport struct {
	PassedRows int         `json:"passed_rows"`
	FailedRows []RowResult `json:"failed_rows"`
}

// Failed reports whether any row violated the schema.
func (r ValidationReport) Failed() bool {
	return len(r.FailedRows) > 0
}

// TotalRows returns the number of rows covered by the report.
func (r ValidationReport) TotalRows() int {
	return r.PassedRows + len(r.FailedRows)
}
