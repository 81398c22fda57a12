package services

import (
	"time"
)

// View types accepted by the activity summary and leaderboard endpoints.
const (
	ViewWeekly  = "weekly"
	ViewMonthly = "monthly"
	ViewYearly  = "yearly"
)

// PeriodBounds returns the calendar window containing at for the given
// view type as [start, end). Weeks start on Monday. Unknown view types
// fall back to weekly, matching the summary view's default chain
// (yearly, monthly, otherwise weekly).
func PeriodBounds(viewType string, at time.Time) (time.Time, time.Time) {
	switch viewType {
	case ViewYearly:
		start := time.Date(at.Year(), time.January, 1, 0, 0, 0, 0, at.Location())
		return start, start.AddDate(1, 0, 0)
	case ViewMonthly:
		start := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, at.Location())
		return start, start.AddDate(0, 1, 0)
	default:
		start := startOfWeek(at)
		return start, start.AddDate(0, 0, 7)
	}
}

// LeaderboardBounds maps a leaderboard time range onto a calendar
// window: the current month for "monthly", the current year otherwise.
func LeaderboardBounds(timeRange string, at time.Time) (time.Time, time.Time) {
	if timeRange == ViewMonthly {
		return PeriodBounds(ViewMonthly, at)
	}
	return PeriodBounds(ViewYearly, at)
}

func startOfWeek(at time.Time) time.Time {
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	offset := int(day.Weekday()-time.Monday+7) % 7
	return day.AddDate(0, 0, -offset)
}

// ParseDate accepts a full RFC 3339 timestamp or a bare yyyy-mm-dd date.
// A missing value resolves to now.
func ParseDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
