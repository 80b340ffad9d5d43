// Package dates normalizes the loosely formatted interaction dates found
// in source exports into ISO YYYY-MM-DD strings. The same normalization
// backs both the last_interaction_date output column and the recency
// tie-break in field selection, so both always agree.
package dates

import (
	"regexp"
	"time"

	"github.com/skyreach/ssot-cli/internal/model"
)

// ISO is the canonical output layout.
const ISO = "2006-01-02"

// yearFirst matches strings that lead with a four-digit year, which are
// parsed with year-first layouts instead of the day-first default.
var yearFirst = regexp.MustCompile(`^\d{4}[-/]`)

var yearFirstLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02 15:04:05",
}

// Day-first is the primary hypothesis for non-ISO strings; month-first is
// retried only when every day-first layout fails.
var dayFirstLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"2-1-2006",
	"2/1/2006",
	"02.01.2006",
	"2 January 2006",
	"2 Jan 2006",
}

var monthFirstLayouts = []string{
	"01-02-2006",
	"01/02/2006",
	"1-2-2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Parse resolves one date-like value to a day-precision time. The second
// return is false for blank or unparseable input; that is a skip, not an
// error.
func Parse(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return truncate(v), true
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return truncate(*v), true
	case string:
		return parseString(v)
	}
	return time.Time{}, false
}

func parseString(s string) (time.Time, bool) {
	s = model.Clean(s)
	if s == "" {
		return time.Time{}, false
	}

	var layouts []string
	if yearFirst.MatchString(s) {
		layouts = yearFirstLayouts
	} else {
		layouts = dayFirstLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncate(t), true
		}
	}
	if !yearFirst.MatchString(s) {
		for _, layout := range monthFirstLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return truncate(t), true
			}
		}
	}
	return time.Time{}, false
}

// LatestISO returns the maximum parseable date among values as YYYY-MM-DD.
// The second return is false when nothing parses.
func LatestISO(values ...any) (string, bool) {
	var latest time.Time
	found := false
	for _, v := range values {
		t, ok := Parse(v)
		if !ok {
			continue
		}
		if !found || t.After(latest) {
			latest = t
			found = true
		}
	}
	if !found {
		return "", false
	}
	return latest.Format(ISO), true
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
