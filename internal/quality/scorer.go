// Package quality computes the completeness score and flag tokens for
// canonical records, plus the aggregate metrics reported per run.
package quality

import (
	"sort"

	"github.com/skyreach/ssot-cli/internal/model"
)

// Scorer applies configured penalty weights for missing important fields
// and optionally blends in an intent-signal score. A Scorer is read-only
// after construction and safe for concurrent use.
type Scorer struct {
	weights     map[string]float64
	intentBlend float64
}

// NewScorer creates a Scorer. weights maps SSOT column names to the
// penalty subtracted when that column is empty; intentBlend scales the
// additive intent contribution.
func NewScorer(weights map[string]float64, intentBlend float64) *Scorer {
	return &Scorer{weights: weights, intentBlend: intentBlend}
}

// Score starts at 1.0, subtracts each missing field's weight and collects
// a "missing_<field>" flag per miss. Penalties are applied in sorted
// field order: float subtraction is order-sensitive, and the score must
// be bit-identical for the same record on every call. The sorted walk
// also yields the flags already alphabetized. Intent relevance is
// blended additively afterwards; it can never lift the score above 1.0
// and never cancels a missing-field penalty.
func (s *Scorer) Score(rec model.CanonicalRecord, intent *model.IntentSummary) (float64, []string) {
	fields := make([]string, 0, len(s.weights))
	for field := range s.weights {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	score := 1.0
	var flags []string
	for _, field := range fields {
		if rec.Value(field) != "" {
			continue
		}
		score -= s.weights[field]
		flags = append(flags, "missing_"+field)
	}

	if intent != nil && s.intentBlend > 0 {
		score += intent.Score * s.intentBlend
	}

	return clamp(score), flags
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
