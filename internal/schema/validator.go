// Package schema validates assembled canonical tables against the SSOT
// column rules. Validation never removes rows: a table where every row
// fails is still persisted in full, with the failures surfaced in the
// report. Losing data to an over-strict check is treated as worse than
// emitting known-imperfect data.
package schema

import (
	"encoding/json"
	"net/mail"
	"net/url"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/skyreach/ssot-cli/internal/dates"
	"github.com/skyreach/ssot-cli/internal/model"
)

// Rule checks one column of one record. It returns a reason string when
// the rule is violated, or "" when the record passes.
type Rule struct {
	Column string
	Check  func(model.CanonicalRecord) string
}

// Validator runs a rule set over a canonical table.
type Validator struct {
	rules []Rule
}

// New creates a Validator with the given rules. Use DefaultRules for the
// standard SSOT rule set.
func New(rules []Rule) *Validator {
	return &Validator{rules: rules}
}

var flagToken = regexp.MustCompile(`^[a-z0-9_]+(;[a-z0-9_]+)*$`)

// DefaultRules is the standard SSOT schema: identity columns must be
// present, typed columns must parse.
func DefaultRules() []Rule {
	return []Rule{
		{model.ColOrganizationName, func(r model.CanonicalRecord) string {
			if r.OrganizationName == "" {
				return "organization_name is empty"
			}
			return ""
		}},
		{model.ColOrganizationSlug, func(r model.CanonicalRecord) string {
			if r.OrganizationSlug == "" {
				return "organization_slug is empty"
			}
			return ""
		}},
		{model.ColCountry, func(r model.CanonicalRecord) string {
			if r.Country == "" {
				return "country is empty"
			}
			return ""
		}},
		{model.ColDataQualityScore, func(r model.CanonicalRecord) string {
			if r.DataQualityScore < 0 || r.DataQualityScore > 1 {
				return "data_quality_score out of [0,1]"
			}
			return ""
		}},
		{model.ColDataQualityFlags, func(r model.CanonicalRecord) string {
			if r.DataQualityFlags != "" && !flagToken.MatchString(r.DataQualityFlags) {
				return "data_quality_flags contains malformed tokens"
			}
			return ""
		}},
		{model.ColLastInteractionDate, func(r model.CanonicalRecord) string {
			if r.LastInteractionDate == "" {
				return ""
			}
			if _, err := time.Parse(dates.ISO, r.LastInteractionDate); err != nil {
				return "last_interaction_date is not an ISO date"
			}
			return ""
		}},
		{model.ColWebsite, func(r model.CanonicalRecord) string {
			if r.Website == "" {
				return ""
			}
			u, err := url.Parse(r.Website)
			if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
				return "website is not an http(s) URL"
			}
			return ""
		}},
		{model.ColContactPrimaryEmail, func(r model.CanonicalRecord) string {
			if r.ContactPrimaryEmail == "" {
				return ""
			}
			if _, err := mail.ParseAddress(r.ContactPrimaryEmail); err != nil {
				return "contact_primary_email is not a valid address"
			}
			return ""
		}},
		{model.ColSelectionProvenance, func(r model.CanonicalRecord) string {
			var obj map[string]json.RawMessage
			if err := json.Unmarshal([]byte(r.SelectionProvenance), &obj); err != nil {
				return "selection_provenance is not a JSON object"
			}
			return ""
		}},
	}
}

// Validate checks every row and reports violations without dropping any.
func (v *Validator) Validate(records []model.CanonicalRecord) model.ValidationReport {
	var report model.ValidationReport

	for i, rec := range records {
		var violations []model.Violation
		for _, rule := range v.rules {
			if reason := rule.Check(rec); reason != "" {
				violations = append(violations, model.Violation{Column: rule.Column, Reason: reason})
			}
		}
		if len(violations) == 0 {
			report.PassedRows++
			continue
		}
		report.FailedRows = append(report.FailedRows, model.RowResult{RowIndex: i, Violations: violations})
	}

	if report.Failed() {
		zap.L().Warn("schema validation found violations",
			zap.Int("failed_rows", len(report.FailedRows)),
			zap.Int("passed_rows", report.PassedRows),
		)
	}
	return report
}
