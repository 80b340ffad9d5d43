package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/skyreach/ssot-cli/internal/model"
)

// FormatReport generates a human-readable quality report for one run.
func FormatReport(snap *model.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# SSOT Quality Report: %s\n", snap.ID)
	fmt.Fprintf(&b, "Country: %s\n", snap.Country)
	fmt.Fprintf(&b, "Created: %s\n\n", snap.CreatedAt.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "- Rows: %d\n", snap.Metrics.Rows)
	fmt.Fprintf(&b, "- Score mean/min/max: %.2f / %.2f / %.2f\n",
		snap.Metrics.MeanScore, snap.Metrics.MinScore, snap.Metrics.MaxScore)
	fmt.Fprintf(&b, "- Validation: %d passed, %d failed\n\n",
		snap.Report.PassedRows, len(snap.Report.FailedRows))

	b.WriteString("## Quality Flags\n")
	counts := flagCounts(snap.Records)
	if len(counts) == 0 {
		b.WriteString("No flags raised.\n\n")
	} else {
		flags := make([]string, 0, len(counts))
		for f := range counts {
			flags = append(flags, f)
		}
		sort.Strings(flags)
		for _, f := range flags {
			fmt.Fprintf(&b, "- %s: %d\n", f, counts[f])
		}
		b.WriteString("\n")
	}

	b.WriteString("## Validation Failures\n")
	if len(snap.Report.FailedRows) == 0 {
		b.WriteString("None.\n")
	} else {
		for _, fr := range snap.Report.FailedRows {
			slug := ""
			if fr.RowIndex < len(snap.Records) {
				slug = snap.Records[fr.RowIndex].OrganizationSlug
			}
			fmt.Fprintf(&b, "- row %d (%s):\n", fr.RowIndex, slug)
			for _, v := range fr.Violations {
				fmt.Fprintf(&b, "  - %s: %s\n", v.Column, v.Reason)
			}
		}
	}

	return b.String()
}

func flagCounts(records []model.CanonicalRecord) map[string]int {
	counts := make(map[string]int)
	for _, rec := range records {
		if rec.DataQualityFlags == "" {
			continue
		}
		for _, flag := range strings.Split(rec.DataQualityFlags, ";") {
			counts[flag]++
		}
	}
	return counts
}
