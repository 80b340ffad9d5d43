package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyreach/ssot-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "ssot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testSnapshot(id string, createdAt time.Time) *model.Snapshot {
	return &model.Snapshot{
		ID:      id,
		Country: "South Africa",
		Records: []model.CanonicalRecord{
			{
				OrganizationSlug:    "aero-school",
				OrganizationName:    "Aero School",
				Country:             "South Africa",
				DataQualityScore:    0.85,
				SelectionProvenance: "{}",
			},
		},
		Report: model.ValidationReport{
			PassedRows: 1,
		},
		Metrics:   model.QualityMetrics{Rows: 1, MeanScore: 0.85, MinScore: 0.85, MaxScore: 0.85},
		CreatedAt: createdAt,
	}
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	want := testSnapshot("run-1", time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, s.SaveSnapshot(ctx, want))

	got, err := s.GetSnapshot(ctx, "run-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Country, got.Country)
	assert.Equal(t, want.Records, got.Records)
	assert.Equal(t, want.Report, got.Report)
	assert.Equal(t, want.Metrics, got.Metrics)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := newTestSQLite(t)
	got, err := s.GetSnapshot(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_DuplicateID(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()
	snap := testSnapshot("run-1", time.Now().UTC())
	require.NoError(t, s.SaveSnapshot(ctx, snap))
	assert.Error(t, s.SaveSnapshot(ctx, snap))
}

func TestSQLiteStore_ListNewestFirst(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveSnapshot(ctx, testSnapshot("run-1", base)))
	require.NoError(t, s.SaveSnapshot(ctx, testSnapshot("run-2", base.Add(24*time.Hour))))
	require.NoError(t, s.SaveSnapshot(ctx, testSnapshot("run-3", base.Add(48*time.Hour))))

	metas, err := s.ListSnapshots(ctx, 2)
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, "run-3", metas[0].ID)
	assert.Equal(t, "run-2", metas[1].ID)
	assert.Equal(t, 1, metas[0].Rows)
	assert.Equal(t, 0, metas[0].Failed)
}

func TestSQLiteStore_MigrateIdempotent(t *testing.T) {
	s := newTestSQLite(t)
	assert.NoError(t, s.Migrate(context.Background()))
}
