package quality

import "github.com/skyreach/ssot-cli/internal/model"

// Summarize computes the aggregate score metrics consumed by progress and
// telemetry collaborators.
func Summarize(records []model.CanonicalRecord) model.QualityMetrics {
	m := model.QualityMetrics{Rows: len(records)}
	if len(records) == 0 {
		return m
	}

	m.MinScore = records[0].DataQualityScore
	m.MaxScore = records[0].DataQualityScore
	total := 0.0
	for _, rec := range records {
		s := rec.DataQualityScore
		total += s
		if s < m.MinScore {
			m.MinScore = s
		}
		if s > m.MaxScore {
			m.MaxScore = s
		}
	}
	m.MeanScore = total / float64(len(records))
	return m
}
