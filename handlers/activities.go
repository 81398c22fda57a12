package handlers

import (
	"strconv"
	"time"

	"groupfit/database"
	"groupfit/middleware"
	"groupfit/models"
	"groupfit/observability"

	"github.com/gofiber/fiber/v2"
)

// ListActivities returns the caller's activities, newest date first
func ListActivities(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var activities []models.Activity
	result := database.DB.
		Preload("User").
		Preload("Group").
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&activities)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch activities",
		})
	}

	responses := make([]models.ActivityResponse, len(activities))
	for i := range activities {
		responses[i] = activities[i].ToResponse()
	}

	return c.JSON(fiber.Map{
		"activities": responses,
		"count":      len(responses),
	})
}

// CreateActivity logs an activity into a group the caller belongs to
func CreateActivity(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var input models.ActivityInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if input.ActivityType == "" || input.Duration == 0 || input.Date == "" || input.GroupID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}
	if !models.ValidActivityType(input.ActivityType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid activity type",
		})
	}
	if input.Duration < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Duration must be positive",
		})
	}
	date, err := parseBodyDate(input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date",
		})
	}

	// Activities can only be logged into groups the caller is a member of
	var membership models.GroupMember
	if result := database.DB.Where("group_id = ? AND user_id = ?", input.GroupID, userID).First(&membership); result.Error != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "User is not a member of this group",
		})
	}

	activity := models.Activity{
		UserID:       userID,
		GroupID:      input.GroupID,
		ActivityType: input.ActivityType,
		Duration:     input.Duration,
		Date:         date,
	}
	if result := database.DB.Create(&activity); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error logging activity",
		})
	}

	if result := database.DB.Preload("Group").First(&activity, activity.ID); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error logging activity",
		})
	}

	observability.RecordActivityLogged()

	return c.JSON(fiber.Map{
		"message":  "Activity logged successfully",
		"activity": activity.ToResponse(),
		"groupDetails": fiber.Map{
			"id":   activity.GroupID,
			"name": activity.Group.Name,
		},
	})
}

// UpdateActivity edits an activity owned by the caller
func UpdateActivity(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	activityID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid activity ID",
		})
	}

	var activity models.Activity
	if result := database.DB.First(&activity, activityID); result.Error != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Activity not found",
		})
	}

	if activity.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to edit this activity",
		})
	}

	var input models.ActivityInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if input.ActivityType == "" || input.Duration == 0 || input.Date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}
	if !models.ValidActivityType(input.ActivityType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid activity type",
		})
	}
	if input.Duration < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Duration must be positive",
		})
	}
	date, err := parseBodyDate(input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date",
		})
	}

	activity.ActivityType = input.ActivityType
	activity.Duration = input.Duration
	activity.Date = date

	if result := database.DB.Save(&activity); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update activity",
		})
	}

	if result := database.DB.Preload("Group").First(&activity, activity.ID); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update activity",
		})
	}

	return c.JSON(fiber.Map{
		"activity": activity.ToResponse(),
	})
}

// DeleteActivity removes an activity owned by the caller
func DeleteActivity(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	activityID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid activity ID",
		})
	}

	var activity models.Activity
	if result := database.DB.First(&activity, activityID); result.Error != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Activity not found",
		})
	}

	if activity.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to delete this activity",
		})
	}

	if result := database.DB.Delete(&activity); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete activity",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Activity deleted successfully",
	})
}

func parseBodyDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
