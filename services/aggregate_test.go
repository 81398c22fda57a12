package services

import (
	"testing"
	"time"

	"groupfit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 9, 0, 0, 0, time.UTC)
}

func TestGroupActivitiesByDay(t *testing.T) {
	activities := []models.Activity{
		{UserID: 1, Duration: 30, Date: day(10)},
		{UserID: 1, Duration: 20, Date: day(10)},
		{UserID: 2, Duration: 45, Date: day(10)},
		{UserID: 2, Duration: 15, Date: day(11)},
	}
	names := map[uint]string{1: "Ana", 2: "Bruno"}
	photos := map[uint]string{1: "https://cdn.example.com/ana.jpg"}

	byDate := GroupActivitiesByDay(activities, names, photos)

	require.Len(t, byDate, 2)

	march10 := byDate["2025-03-10"]
	require.Len(t, march10, 2)
	assert.Equal(t, uint(1), march10[0].UserID)
	assert.Equal(t, "Ana", march10[0].UserName)
	require.NotNil(t, march10[0].PhotoURL)
	assert.Equal(t, "https://cdn.example.com/ana.jpg", *march10[0].PhotoURL)
	assert.Equal(t, 2, march10[0].ActivityCount)

	assert.Equal(t, uint(2), march10[1].UserID)
	assert.Nil(t, march10[1].PhotoURL)
	assert.Equal(t, 1, march10[1].ActivityCount)

	march11 := byDate["2025-03-11"]
	require.Len(t, march11, 1)
	assert.Equal(t, uint(2), march11[0].UserID)
	assert.Equal(t, 1, march11[0].ActivityCount)
}

func TestGroupActivitiesByDayEveryRowCountedOnce(t *testing.T) {
	var activities []models.Activity
	for i := 0; i < 7; i++ {
		activities = append(activities, models.Activity{UserID: uint(i%2 + 1), Date: day(i%3 + 1)})
	}

	byDate := GroupActivitiesByDay(activities, nil, nil)

	total := 0
	for _, users := range byDate {
		for _, u := range users {
			total += u.ActivityCount
		}
	}
	assert.Equal(t, len(activities), total)
}

func TestGroupActivitiesByDayEmpty(t *testing.T) {
	byDate := GroupActivitiesByDay(nil, nil, nil)
	assert.Empty(t, byDate)
}

func TestBuildLeaderboard(t *testing.T) {
	activities := []models.Activity{
		{UserID: 1, Duration: 30, Date: day(1)},
		{UserID: 2, Duration: 45, Date: day(2)},
		{UserID: 1, Duration: 25, Date: day(3)},
		{UserID: 3, Duration: 10, Date: day(4)},
	}
	users := map[uint]models.User{
		1: {ID: 1, Name: "Ana", Email: "ana@example.com"},
		2: {ID: 2, Name: "Bruno", Email: "bruno@example.com"},
	}

	entries := BuildLeaderboard(activities, users)

	require.Len(t, entries, 3)

	// Sorted by total duration descending
	assert.Equal(t, uint(1), entries[0].UserID)
	assert.Equal(t, 55, entries[0].TotalDuration)
	assert.Equal(t, 2, entries[0].TotalActivities)
	assert.Equal(t, "ana@example.com", entries[0].UserEmail)

	assert.Equal(t, uint(2), entries[1].UserID)
	assert.Equal(t, 45, entries[1].TotalDuration)
	assert.Equal(t, 1, entries[1].TotalActivities)

	// Users with no resolved row still appear, with a placeholder email
	assert.Equal(t, uint(3), entries[2].UserID)
	assert.Equal(t, "unknown", entries[2].UserEmail)

	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].TotalDuration, entries[i].TotalDuration)
	}
}

func TestBuildLeaderboardStableForEqualTotals(t *testing.T) {
	activities := []models.Activity{
		{UserID: 7, Duration: 30},
		{UserID: 8, Duration: 30},
	}

	entries := BuildLeaderboard(activities, nil)

	require.Len(t, entries, 2)
	assert.Equal(t, uint(7), entries[0].UserID)
	assert.Equal(t, uint(8), entries[1].UserID)
}

func TestBuildLeaderboardEmpty(t *testing.T) {
	assert.Empty(t, BuildLeaderboard(nil, nil))
}
