package handlers

import (
	"time"

	"groupfit/database"
	"groupfit/middleware"
	"groupfit/models"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the caller's newest personal-data entry, or null
func GetProfile(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var entry models.PersonalData
	result := database.DB.
		Where("user_id = ?", userID).
		Order("log_date DESC").
		First(&entry)
	if result.Error != nil {
		if isNotFound(result.Error) {
			return c.JSON(fiber.Map{
				"personalData": nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error fetching personal data",
		})
	}

	return c.JSON(fiber.Map{
		"personalData": entry,
	})
}

// UpdateProfile appends a personal-data entry dated now
func UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var input models.PersonalDataInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if input.PhotoURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Photo URL is required",
		})
	}

	entry := models.PersonalData{
		UserID:   userID,
		PhotoURL: input.PhotoURL,
		LogDate:  time.Now(),
	}
	if result := database.DB.Create(&entry); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error updating personal data",
		})
	}

	return c.JSON(fiber.Map{
		"personalData": entry,
	})
}
