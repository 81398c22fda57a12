package handlers

import (
	"strconv"

	"groupfit/database"
	"groupfit/middleware"
	"groupfit/models"

	"github.com/gofiber/fiber/v2"
)

// ListWeights returns the caller's weight entries, newest date first
func ListWeights(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var weights []models.Weight
	result := database.DB.
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&weights)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch weights",
		})
	}

	return c.JSON(fiber.Map{
		"weights": weights,
	})
}

// CreateWeight logs a body-weight entry for the caller
func CreateWeight(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var input models.WeightInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if input.Weight == 0 || input.Date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Weight and date are required",
		})
	}
	if input.Weight < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Weight must be a positive number",
		})
	}
	date, err := parseBodyDate(input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date",
		})
	}

	weight := models.Weight{
		UserID: userID,
		Weight: input.Weight,
		Date:   date,
	}
	if result := database.DB.Create(&weight); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to log weight",
		})
	}

	return c.JSON(fiber.Map{
		"weight": weight,
	})
}

// UpdateWeight edits a weight entry owned by the caller. A foreign entry
// reads as not found, same as a missing one.
func UpdateWeight(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	weightID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid weight ID",
		})
	}

	var input models.WeightInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if input.Weight == 0 || input.Date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Weight and date are required",
		})
	}
	if input.Weight < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Weight must be a positive number",
		})
	}
	date, err := parseBodyDate(input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date",
		})
	}

	var weight models.Weight
	if result := database.DB.Where("id = ? AND user_id = ?", weightID, userID).First(&weight); result.Error != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Weight entry not found or unauthorized",
		})
	}

	weight.Weight = input.Weight
	weight.Date = date

	if result := database.DB.Save(&weight); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update weight entry",
		})
	}

	return c.JSON(fiber.Map{
		"weight": weight,
	})
}

// DeleteWeight removes a weight entry owned by the caller
func DeleteWeight(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	weightID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid weight ID",
		})
	}

	var weight models.Weight
	if result := database.DB.Where("id = ? AND user_id = ?", weightID, userID).First(&weight); result.Error != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Weight entry not found or unauthorized",
		})
	}

	if result := database.DB.Delete(&weight); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete weight entry",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Weight entry deleted successfully",
	})
}
