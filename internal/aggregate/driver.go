package aggregate

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/skyreach/ssot-cli/internal/dates"
	"github.com/skyreach/ssot-cli/internal/model"
	"github.com/skyreach/ssot-cli/internal/priority"
	"github.com/skyreach/ssot-cli/internal/quality"
)

// Driver assembles one CanonicalRecord per entity group. Selection is a
// pure function of the group's rows, so a Driver is safe for concurrent
// use across groups.
type Driver struct {
	table   *priority.Table
	scorer  *quality.Scorer
	country string
}

// New creates a Driver.
func New(table *priority.Table, scorer *quality.Scorer, country string) *Driver {
	return &Driver{table: table, scorer: scorer, country: country}
}

// Aggregate consolidates one entity group into its canonical record. The
// phases run strictly in order: scalar field selection, contact merging,
// quality scoring, provenance serialization. A well-formed group has no
// failure mode; even a group whose every name is blank is still emitted.
func (d *Driver) Aggregate(slug string, rows []model.RawRow, intent *model.IntentSummary) (model.CanonicalRecord, error) {
	rec := model.CanonicalRecord{
		OrganizationSlug:    slug,
		Country:             d.country,
		SelectionProvenance: "{}",
	}

	// Per-row recency, resolved once and reused for every field so the
	// provenance explanation always matches the visible date.
	recencies := make([]string, len(rows))
	dateInputs := make([]any, 0, len(rows)*2)
	for i, row := range rows {
		recencies[i] = rowRecency(row)
		dateInputs = append(dateInputs, row.LastInteraction)
		if row.LastInteractionAt != nil {
			dateInputs = append(dateInputs, row.LastInteractionAt)
		}
	}

	prov := make(model.ProvenanceMap)

	// CollectingFields
	for _, field := range model.SourcedColumns {
		candidates := make([]Candidate, 0, len(rows))
		for i, row := range rows {
			candidates = append(candidates, Candidate{
				Value:          row.ScalarField(field),
				SourceDataset:  row.SourceDataset,
				SourceRecordID: row.SourceRecordID,
				Recency:        recencies[i],
			})
		}
		decision, ok := Select(field, candidates, d.table)
		if !ok {
			continue
		}
		setScalar(&rec, field, decision.Value)
		prov[field] = decision
	}

	// SelectingContacts
	bundle, contactDecision, ok := MergeContacts(rows, recencies, d.table)
	rec.ContactPrimaryName = bundle.PrimaryName
	rec.ContactPrimaryRole = bundle.PrimaryRole
	rec.ContactPrimaryEmail = bundle.PrimaryEmail
	rec.ContactPrimaryPhone = bundle.PrimaryPhone
	rec.ContactSecondaryEmails = joinList(bundle.SecondaryEmails)
	rec.ContactSecondaryPhones = joinList(bundle.SecondaryPhones)
	if ok {
		for col, v := range map[string]string{
			model.ColContactPrimaryName:  bundle.PrimaryName,
			model.ColContactPrimaryRole:  bundle.PrimaryRole,
			model.ColContactPrimaryEmail: bundle.PrimaryEmail,
			model.ColContactPrimaryPhone: bundle.PrimaryPhone,
		} {
			if v == "" {
				continue
			}
			decision := contactDecision
			decision.Value = v
			prov[col] = decision
		}
	}

	if latest, ok := dates.LatestISO(dateInputs...); ok {
		rec.LastInteractionDate = latest
	}
	rec.SourceDatasets = joinList(union(rows, func(r model.RawRow) string { return r.SourceDataset }))
	rec.SourceRecordIDs = joinList(union(rows, func(r model.RawRow) string { return r.SourceRecordID }))

	// ScoringQuality
	score, flags := d.scorer.Score(rec, intent)
	rec.DataQualityScore = score
	rec.DataQualityFlags = joinList(flags)

	// BuildingProvenance
	provJSON, err := prov.JSON()
	if err != nil {
		return rec, err
	}
	rec.SelectionProvenance = provJSON

	return rec, nil
}

// AggregateAll processes every group concurrently and returns the table
// sorted by organization_slug. Each group is independent, so processing
// order never affects the output.
func (d *Driver) AggregateAll(ctx context.Context, groups map[string][]model.RawRow, intents map[string]model.IntentSummary, concurrency int) ([]model.CanonicalRecord, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	slugs := make([]string, 0, len(groups))
	for slug := range groups {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	// Each goroutine writes its own slice element, so no locking is needed.
	records := make([]model.CanonicalRecord, len(slugs))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, slug := range slugs {
		g.Go(func() error {
			var intent *model.IntentSummary
			if summary, ok := intents[slug]; ok {
				intent = &summary
			}
			rec, err := d.Aggregate(slug, groups[slug], intent)
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Info("aggregation complete",
		zap.Int("groups", len(slugs)),
		zap.Int("concurrency", concurrency),
	)
	return records, nil
}

// rowRecency resolves a single row's interaction date, preferring the
// native timestamp when the loader captured one.
func rowRecency(row model.RawRow) string {
	iso, ok := dates.LatestISO(row.LastInteraction, row.LastInteractionAt)
	if !ok {
		return ""
	}
	return iso
}

func setScalar(rec *model.CanonicalRecord, field, value string) {
	switch field {
	case model.ColOrganizationName:
		rec.OrganizationName = value
	case model.ColProvince:
		rec.Province = value
	case model.ColArea:
		rec.Area = value
	case model.ColAddressPrimary:
		rec.AddressPrimary = value
	case model.ColOrganizationCategory:
		rec.OrganizationCategory = value
	case model.ColOrganizationType:
		rec.OrganizationType = value
	case model.ColStatus:
		rec.Status = value
	case model.ColWebsite:
		rec.Website = value
	case model.ColPlanes:
		rec.Planes = value
	case model.ColDescription:
		rec.Description = value
	case model.ColNotes:
		rec.Notes = value
	case model.ColPriority:
		rec.Priority = value
	case model.ColPrivacyBasis:
		rec.PrivacyBasis = value
	}
}

func union(rows []model.RawRow, key func(model.RawRow) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range rows {
		v := model.Clean(key(row))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func joinList(values []string) string {
	return strings.Join(values, ";")
}
