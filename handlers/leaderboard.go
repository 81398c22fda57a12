package handlers

import (
	"time"

	"groupfit/database"
	"groupfit/models"
	"groupfit/services"

	"github.com/gofiber/fiber/v2"
)

// Leaderboard sums activity durations per user over the current month or
// year, sorted descending.
func Leaderboard(c *fiber.Ctx) error {
	timeRange := c.Query("timeRange", services.ViewMonthly)
	start, end := services.LeaderboardBounds(timeRange, time.Now())

	var activities []models.Activity
	result := database.DB.
		Where("date >= ? AND date < ?", start, end).
		Find(&activities)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch leaderboard",
		})
	}

	seen := make(map[uint]bool)
	var userIDs []uint
	for _, activity := range activities {
		if !seen[activity.UserID] {
			seen[activity.UserID] = true
			userIDs = append(userIDs, activity.UserID)
		}
	}

	users := make(map[uint]models.User, len(userIDs))
	if len(userIDs) > 0 {
		var rows []models.User
		if result := database.DB.Where("id IN ?", userIDs).Find(&rows); result.Error != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to fetch leaderboard",
			})
		}
		for _, user := range rows {
			users[user.ID] = user
		}
	}

	return c.JSON(fiber.Map{
		"leaderboard": services.BuildLeaderboard(activities, users),
		"timeRange":   timeRange,
		"period": fiber.Map{
			"start": start,
			"end":   end,
		},
	})
}
