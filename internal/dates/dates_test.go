package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ISO(t *testing.T) {
	got, ok := Parse("2025-03-10")
	require.True(t, ok)
	assert.Equal(t, "2025-03-10", got.Format(ISO))
}

func TestParse_ISOSlash(t *testing.T) {
	got, ok := Parse("2025/03/10")
	require.True(t, ok)
	assert.Equal(t, "2025-03-10", got.Format(ISO))
}

func TestParse_ISOWithTime(t *testing.T) {
	got, ok := Parse("2025-03-10 14:30:00")
	require.True(t, ok)
	assert.Equal(t, "2025-03-10", got.Format(ISO))
}

func TestParse_DayFirst(t *testing.T) {
	// 05/04/2025 is 5 April under the day-first hypothesis.
	got, ok := Parse("05/04/2025")
	require.True(t, ok)
	assert.Equal(t, "2025-04-05", got.Format(ISO))
}

func TestParse_MonthFirstFallback(t *testing.T) {
	// Day-first cannot parse a month of 25, so month-first kicks in.
	got, ok := Parse("03/25/2024")
	require.True(t, ok)
	assert.Equal(t, "2024-03-25", got.Format(ISO))
}

func TestParse_NativeTime(t *testing.T) {
	ts := time.Date(2024, 7, 1, 13, 5, 0, 0, time.UTC)
	got, ok := Parse(ts)
	require.True(t, ok)
	assert.Equal(t, "2024-07-01", got.Format(ISO))
}

func TestParse_NativeTimePointer(t *testing.T) {
	ts := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	got, ok := Parse(&ts)
	require.True(t, ok)
	assert.Equal(t, "2024-07-01", got.Format(ISO))
}

func TestParse_NilAndBlank(t *testing.T) {
	for _, v := range []any{nil, "", "  ", "n/a", "NaN", (*time.Time)(nil)} {
		_, ok := Parse(v)
		assert.False(t, ok, "value %v should not parse", v)
	}
}

func TestParse_Garbage(t *testing.T) {
	_, ok := Parse("not a date")
	assert.False(t, ok)
}

func TestLatestISO_PicksMax(t *testing.T) {
	got, ok := LatestISO("2024-01-01", "10/03/2025", "2023-12-31")
	require.True(t, ok)
	assert.Equal(t, "2025-03-10", got)
}

func TestLatestISO_SkipsUnparseable(t *testing.T) {
	got, ok := LatestISO("garbage", "", "2022-05-01", nil)
	require.True(t, ok)
	assert.Equal(t, "2022-05-01", got)
}

func TestLatestISO_NothingParses(t *testing.T) {
	_, ok := LatestISO("garbage", "", nil)
	assert.False(t, ok)
}

func TestLatestISO_MixedTypes(t *testing.T) {
	ts := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	got, ok := LatestISO("2025-12-31", ts)
	require.True(t, ok)
	assert.Equal(t, "2026-01-02", got)
}
