package model

import "time"

// QualityMetrics are the aggregate score statistics for one run.
type QualityMetrics struct {
	Rows      int     `json:"rows"`
	MeanScore float64 `json:"mean_score"`
	MinScore  float64 `json:"min_score"`
	MaxScore  float64 `json:"max_score"`
}

// Snapshot is one persisted aggregation run: the full canonical table,
// its validation report, and the run-level quality metrics.
type Snapshot struct {
	ID        string            `json:"id"`
	Country   string            `json:"country"`
	Records   []CanonicalRecord `json:"records"`
	Report    ValidationReport  `json:"report"`
	Metrics   QualityMetrics    `json:"metrics"`
	CreatedAt time.Time         `json:"created_at"`
}

// SnapshotMeta is the listing view of a snapshot, without the table body.
type SnapshotMeta struct {
	ID        string         `json:"id"`
	Country   string         `json:"country"`
	Rows      int            `json:"rows"`
	Failed    int            `json:"failed_rows"`
	Metrics   QualityMetrics `json:"metrics"`
	CreatedAt time.Time      `json:"created_at"`
}
