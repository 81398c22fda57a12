package services

import (
	"sort"

	"groupfit/models"
)

// DayUserActivity is one user's activity tally for a single calendar day.
type DayUserActivity struct {
	UserID        uint    `json:"userId"`
	UserName      string  `json:"userName"`
	PhotoURL      *string `json:"photoUrl"`
	ActivityCount int     `json:"activityCount"`
}

// GroupActivitiesByDay buckets activities by calendar date, then by user.
// Each activity lands in exactly one (date, user) bucket; the count is the
// number of rows, not duration-weighted. names and photos are keyed by
// user id; users missing a photo get a null photoUrl. Bucket order within
// a day follows first appearance in the input.
func GroupActivitiesByDay(activities []models.Activity, names map[uint]string, photos map[uint]string) map[string][]DayUserActivity {
	byDate := make(map[string][]DayUserActivity)
	index := make(map[string]map[uint]int)

	for _, activity := range activities {
		dateKey := activity.Date.Format("2006-01-02")

		users, ok := index[dateKey]
		if !ok {
			users = make(map[uint]int)
			index[dateKey] = users
		}

		pos, ok := users[activity.UserID]
		if !ok {
			entry := DayUserActivity{
				UserID:   activity.UserID,
				UserName: names[activity.UserID],
			}
			if url, ok := photos[activity.UserID]; ok {
				entry.PhotoURL = &url
			}
			pos = len(byDate[dateKey])
			users[activity.UserID] = pos
			byDate[dateKey] = append(byDate[dateKey], entry)
		}
		byDate[dateKey][pos].ActivityCount++
	}

	return byDate
}

// LeaderboardEntry is one user's total within a leaderboard window.
type LeaderboardEntry struct {
	UserID          uint   `json:"userId"`
	UserName        string `json:"userName"`
	UserEmail       string `json:"userEmail"`
	TotalDuration   int    `json:"totalDuration"`
	TotalActivities int    `json:"totalActivities"`
}

// BuildLeaderboard sums duration and counts rows per user, then sorts by
// total duration descending. The sort is stable so equal totals keep
// first-appearance order.
func BuildLeaderboard(activities []models.Activity, users map[uint]models.User) []LeaderboardEntry {
	totals := make(map[uint]int)
	var order []uint

	for _, activity := range activities {
		if _, ok := totals[activity.UserID]; !ok {
			order = append(order, activity.UserID)
		}
		totals[activity.UserID]++
	}

	entries := make([]LeaderboardEntry, 0, len(order))
	durations := make(map[uint]int)
	for _, activity := range activities {
		durations[activity.UserID] += activity.Duration
	}

	for _, userID := range order {
		entry := LeaderboardEntry{
			UserID:          userID,
			UserEmail:       "unknown",
			TotalDuration:   durations[userID],
			TotalActivities: totals[userID],
		}
		if user, ok := users[userID]; ok {
			entry.UserName = user.Name
			entry.UserEmail = user.Email
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalDuration > entries[j].TotalDuration
	})

	return entries
}
