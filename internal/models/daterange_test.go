package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("SGT", 8*3600)

	t.Run("drops time of day", func(t *testing.T) {
		t.Parallel()
		in := time.Date(2026, 3, 14, 17, 45, 12, 999, loc)
		got := NormalizeDate(in, loc)
		require.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, loc), got)
	})

	t.Run("keeps the supplied calendar date when zones differ", func(t *testing.T) {
		t.Parallel()
		in := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
		got := NormalizeDate(in, loc)
		require.Equal(t, 14, got.Day())
		require.Equal(t, loc, got.Location())
	})
}

func TestNewDateRange(t *testing.T) {
	t.Parallel()

	loc := time.UTC
	d1 := time.Date(2026, 1, 10, 0, 0, 0, 0, loc)

	t.Run("inclusive on both ends", func(t *testing.T) {
		t.Parallel()
		r, err := NewDateRange(d1, d1.AddDate(0, 0, 2), loc)
		require.NoError(t, err)

		require.True(t, r.Contains(d1), "start midnight is inside")
		require.True(t, r.Contains(d1.AddDate(0, 0, 2)), "end midnight is inside")
		require.True(t, r.Contains(time.Date(2026, 1, 12, 23, 59, 59, 999_999_999, loc)), "end of end day is inside")
		require.False(t, r.Contains(d1.AddDate(0, 0, 3)), "day after end is outside")
		require.False(t, r.Contains(d1.Add(-time.Nanosecond)), "instant before start is outside")
	})

	t.Run("single day window", func(t *testing.T) {
		t.Parallel()
		r, err := NewDateRange(d1, d1, loc)
		require.NoError(t, err)
		require.Equal(t, d1, r.Lower())
		require.Equal(t, d1.AddDate(0, 0, 1), r.Upper())
		require.Len(t, r.Days(), 1)
	})

	t.Run("normalizes time of day on bounds", func(t *testing.T) {
		t.Parallel()
		r, err := NewDateRange(d1.Add(15*time.Hour), d1.Add(3*time.Hour), loc)
		require.NoError(t, err)
		require.Equal(t, d1, r.Start)
		require.Equal(t, d1, r.End)
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		t.Parallel()
		_, err := NewDateRange(d1, d1.AddDate(0, 0, -1), loc)
		require.ErrorIs(t, err, ErrInvertedRange)
	})
}

func TestOptionalDateRange(t *testing.T) {
	t.Parallel()

	d := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("nil when start missing", func(t *testing.T) {
		t.Parallel()
		r, err := OptionalDateRange(nil, &d, time.UTC)
		require.NoError(t, err)
		require.Nil(t, r)
	})

	t.Run("nil when end missing", func(t *testing.T) {
		t.Parallel()
		r, err := OptionalDateRange(&d, nil, time.UTC)
		require.NoError(t, err)
		require.Nil(t, r)
	})

	t.Run("window when both given", func(t *testing.T) {
		t.Parallel()
		r, err := OptionalDateRange(&d, &d, time.UTC)
		require.NoError(t, err)
		require.NotNil(t, r)
	})
}

func TestDefaultDateRange(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 18, 21, 30, 0, 0, time.UTC)
	r := DefaultDateRange(now, time.UTC)

	require.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), r.End)
	require.Equal(t, time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC), r.Start)
	require.Len(t, r.Days(), DefaultWindowDays+1)
	require.Equal(t, "2026-09-18 to 2026-10-18", r.String())
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	got, err := ParseDate("2026-04-05", time.UTC)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("05/04/2026", time.UTC)
	require.Error(t, err)
}
