package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyreach/ssot-cli/internal/priority"
)

func testTable(t *testing.T) *priority.Table {
	t.Helper()
	table, err := priority.New(map[string]map[string]int{
		"*": {
			"SACAA Cleaned": 9,
			"Reachout":      6,
			"CRM Export":    5,
			"Contact":       4,
			"default":       1,
		},
		"notes": {
			"Reachout":      8,
			"SACAA Cleaned": 3,
			"default":       1,
		},
	})
	require.NoError(t, err)
	return table
}

func TestSelect_AllBlank(t *testing.T) {
	_, ok := Select("website", []Candidate{
		{Value: "", SourceDataset: "Reachout", SourceRecordID: "r-1"},
		{Value: "  ", SourceDataset: "Contact", SourceRecordID: "c-1"},
		{Value: "n/a", SourceDataset: "SACAA Cleaned", SourceRecordID: "s-1"},
	}, testTable(t))
	assert.False(t, ok)
}

func TestSelect_PriorityBeatsRecency(t *testing.T) {
	// The regulator row has no date at all but still outranks the dated
	// CRM rows.
	cands := []Candidate{
		{Value: "https://reachout.example", SourceDataset: "Reachout", SourceRecordID: "r-1", Recency: "2025-03-10"},
		{Value: "https://sacaa.example", SourceDataset: "SACAA Cleaned", SourceRecordID: "s-1"},
		{Value: "", SourceDataset: "Contact", SourceRecordID: "c-1", Recency: "2025-04-01"},
	}
	d, ok := Select("website", cands, testTable(t))
	require.True(t, ok)
	assert.Equal(t, "https://sacaa.example", d.Value)
	assert.Equal(t, "SACAA Cleaned", d.SourceDataset)
	assert.Equal(t, 9, d.SourcePriority)
	assert.Equal(t, "", d.LastInteractionDate)
}

func TestSelect_PriorityIndependentOfOrder(t *testing.T) {
	a := Candidate{Value: "low", SourceDataset: "Contact", SourceRecordID: "c-1", Recency: "2026-01-01"}
	b := Candidate{Value: "high", SourceDataset: "SACAA Cleaned", SourceRecordID: "s-1"}

	d1, ok := Select("website", []Candidate{a, b}, testTable(t))
	require.True(t, ok)
	d2, ok := Select("website", []Candidate{b, a}, testTable(t))
	require.True(t, ok)
	assert.Equal(t, d1, d2)
	assert.Equal(t, "high", d1.Value)
}

func TestSelect_RecencyTieBreak(t *testing.T) {
	cands := []Candidate{
		{Value: "+27 11 555 0001", SourceDataset: "CRM Export", SourceRecordID: "a", Recency: "2024-01-01"},
		{Value: "+27 11 555 0002", SourceDataset: "CRM Export", SourceRecordID: "b", Recency: "2025-03-10"},
	}
	d, ok := Select("contact_primary_phone", cands, testTable(t))
	require.True(t, ok)
	assert.Equal(t, "+27 11 555 0002", d.Value)
}

func TestSelect_MissingDateSortsOldest(t *testing.T) {
	cands := []Candidate{
		{Value: "undated", SourceDataset: "CRM Export", SourceRecordID: "a"},
		{Value: "dated", SourceDataset: "CRM Export", SourceRecordID: "b", Recency: "2001-01-01"},
	}
	d, ok := Select("status", cands, testTable(t))
	require.True(t, ok)
	assert.Equal(t, "dated", d.Value)
}

func TestSelect_RecordIDBreaksFullTie(t *testing.T) {
	cands := []Candidate{
		{Value: "second", SourceDataset: "CRM Export", SourceRecordID: "zzz"},
		{Value: "first", SourceDataset: "CRM Export", SourceRecordID: "aaa"},
	}
	d, ok := Select("status", cands, testTable(t))
	require.True(t, ok)
	assert.Equal(t, "first", d.Value)
	assert.Equal(t, "aaa", d.SourceRecordID)
}

func TestSelect_DatasetBreaksTieBeforeRecordID(t *testing.T) {
	cands := []Candidate{
		{Value: "bravo", SourceDataset: "Bravo", SourceRecordID: "a"},
		{Value: "alpha", SourceDataset: "Alpha", SourceRecordID: "z"},
	}
	d, ok := Select("status", cands, testTable(t))
	require.True(t, ok)
	assert.Equal(t, "alpha", d.Value)
}

func TestSelect_FieldAwarePriority(t *testing.T) {
	cands := []Candidate{
		{Value: "regulator text", SourceDataset: "SACAA Cleaned", SourceRecordID: "s-1"},
		{Value: "outreach text", SourceDataset: "Reachout", SourceRecordID: "r-1"},
	}
	// notes ranks Reachout above the regulator, unlike the fallback.
	d, ok := Select("notes", cands, testTable(t))
	require.True(t, ok)
	assert.Equal(t, "outreach text", d.Value)

	d, ok = Select("website", cands, testTable(t))
	require.True(t, ok)
	assert.Equal(t, "regulator text", d.Value)
}

func TestSelect_TrimsWinningValue(t *testing.T) {
	d, ok := Select("status", []Candidate{
		{Value: "  Active ", SourceDataset: "CRM Export", SourceRecordID: "a"},
	}, testTable(t))
	require.True(t, ok)
	assert.Equal(t, "Active", d.Value)
}
