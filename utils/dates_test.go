package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)

	d, err := ParseDate("2025-03-14", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 14, 0, 0, 0, 0, loc), d)

	d, err = ParseDate("2025-03-14T23:30:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, 14, d.Day())
	assert.Equal(t, loc, d.Location())

	_, err = ParseDate("14/03/2025", loc)
	assert.Error(t, err)
}

func TestDateInKeepsCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	stored := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

	got := DateIn(stored, loc)
	assert.Equal(t, 14, got.Day())
	assert.True(t, SameDay(got, stored))
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, time.March, 14, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysBetween(start, start.Add(time.Hour)))
	assert.Equal(t, 1, DaysBetween(start, time.Date(2025, time.March, 15, 1, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, DaysBetween(start, time.Date(2025, time.March, 13, 1, 0, 0, 0, time.UTC)))
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	before := time.Date(2025, time.March, 8, 0, 0, 0, 0, ny)
	after := time.Date(2025, time.March, 10, 0, 0, 0, 0, ny)
	require.Equal(t, 47*time.Hour, after.Sub(before))
	assert.Equal(t, 2, DaysBetween(before, after))

	fallStart := time.Date(2025, time.November, 1, 23, 0, 0, 0, ny)
	fallEnd := time.Date(2025, time.November, 3, 0, 30, 0, 0, ny)
	assert.Equal(t, 2, DaysBetween(fallStart, fallEnd))
	assert.Equal(t, -2, DaysBetween(fallEnd, fallStart))
}

func TestCombineDateClock(t *testing.T) {
	day := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	slot, err := CombineDateClock(day, "09:45")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 14, 9, 45, 0, 0, time.UTC), slot)

	_, err = CombineDateClock(day, "9am")
	assert.Error(t, err)
	_, err = CombineDateClock(day, "25:00")
	assert.Error(t, err)
}
