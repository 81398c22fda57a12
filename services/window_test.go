package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodBoundsMonthly(t *testing.T) {
	at := time.Date(2025, time.March, 15, 13, 45, 0, 0, time.UTC)
	start, end := PeriodBounds(ViewMonthly, at)

	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestPeriodBoundsYearly(t *testing.T) {
	at := time.Date(2025, time.March, 15, 13, 45, 0, 0, time.UTC)
	start, end := PeriodBounds(ViewYearly, at)

	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestPeriodBoundsWeeklyStartsMonday(t *testing.T) {
	// 2025-03-15 is a Saturday; the containing week starts Monday 03-10
	at := time.Date(2025, time.March, 15, 13, 45, 0, 0, time.UTC)
	start, end := PeriodBounds(ViewWeekly, at)

	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.March, 17, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, time.Monday, start.Weekday())
}

func TestPeriodBoundsWeeklyOnMonday(t *testing.T) {
	at := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	start, _ := PeriodBounds(ViewWeekly, at)

	assert.Equal(t, at, start)
}

func TestPeriodBoundsUnknownViewFallsBackToWeekly(t *testing.T) {
	at := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	start, end := PeriodBounds("bogus", at)
	wantStart, wantEnd := PeriodBounds(ViewWeekly, at)

	assert.Equal(t, wantStart, start)
	assert.Equal(t, wantEnd, end)
}

func TestLeaderboardBounds(t *testing.T) {
	at := time.Date(2025, time.June, 20, 8, 0, 0, 0, time.UTC)

	start, end := LeaderboardBounds(ViewMonthly, at)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), end)

	// Anything other than monthly maps to the current year
	start, end = LeaderboardBounds("yearly", at)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestParseDate(t *testing.T) {
	now := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)

	got, err := ParseDate("", now)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	got, err = ParseDate("2025-03-15", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2025-03-15T10:30:00Z", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC), got)

	_, err = ParseDate("not-a-date", now)
	assert.Error(t, err)
}
