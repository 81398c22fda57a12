package handlers

import (
	"strconv"

	"groupfit/config"
	"groupfit/database"
	"groupfit/models"

	"github.com/gofiber/fiber/v2"
)

// AdminOverview returns the read-only aggregate listing backing the
// admin dashboard: every user, group, and membership, plus the latest
// 100 activities. Route is gated by AdminRequired.
func AdminOverview(c *fiber.Ctx) error {
	var users []models.User
	if result := database.DB.Order("created_at").Find(&users); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch overview",
		})
	}

	activityCounts, err := countsByColumn(&models.Activity{}, "user_id")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch overview",
		})
	}
	membershipCounts, err := countsByColumn(&models.GroupMember{}, "user_id")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch overview",
		})
	}
	createdGroupCounts, err := countsByColumn(&models.Group{}, "creator_id")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch overview",
		})
	}

	userRows := make([]fiber.Map, len(users))
	for i, user := range users {
		userRows[i] = fiber.Map{
			"id":            user.ID,
			"name":          user.Name,
			"email":         user.Email,
			"role":          user.Role,
			"created_at":    user.CreatedAt,
			"activities":    activityCounts[user.ID],
			"memberships":   membershipCounts[user.ID],
			"createdGroups": createdGroupCounts[user.ID],
		}
	}

	var groups []models.Group
	if result := database.DB.Preload("CreatedBy").Preload("Members").Find(&groups); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch overview",
		})
	}
	groupActivityCounts, err := activityCountsByGroup()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch overview",
		})
	}
	groupRows := make([]fiber.Map, len(groups))
	for i, group := range groups {
		groupRows[i] = fiber.Map{
			"id":          group.ID,
			"name":        group.Name,
			"description": group.Description,
			"createdBy":   group.CreatedBy.ToRef(),
			"members":     len(group.Members),
			"activities":  groupActivityCounts[group.ID],
			"created_at":  group.CreatedAt,
		}
	}

	var activities []models.Activity
	result := database.DB.
		Preload("User").
		Preload("Group").
		Order("created_at DESC").
		Limit(100).
		Find(&activities)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch overview",
		})
	}
	activityRows := make([]models.ActivityResponse, len(activities))
	for i := range activities {
		activityRows[i] = activities[i].ToResponse()
	}

	var memberships []models.GroupMember
	if result := database.DB.Preload("User").Preload("Group").Find(&memberships); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch overview",
		})
	}
	membershipRows := make([]fiber.Map, len(memberships))
	for i, membership := range memberships {
		membershipRows[i] = fiber.Map{
			"id":        membership.ID,
			"user":      membership.User.ToRef(),
			"group":     fiber.Map{"name": membership.Group.Name},
			"role":      membership.Role,
			"joined_at": membership.JoinedAt,
		}
	}

	return c.JSON(fiber.Map{
		"users":        userRows,
		"groups":       groupRows,
		"activities":   activityRows,
		"groupMembers": membershipRows,
	})
}

// ListAuditLogs returns audit logs (admin only)
func ListAuditLogs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	action := c.Query("action")
	userIDStr := c.Query("user_id")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	offset := (page - 1) * limit

	query := database.DB.Model(&models.AuditLog{})
	if action != "" {
		query = query.Where("action = ?", action)
	}
	if userIDStr != "" {
		if userID, err := strconv.ParseUint(userIDStr, 10, 32); err == nil {
			query = query.Where("user_id = ?", userID)
		}
	}

	var total int64
	query.Count(&total)

	var logs []models.AuditLog
	if result := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&logs); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch audit logs",
		})
	}

	return c.JSON(fiber.Map{
		"logs":  logs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetAuditActions returns available audit actions for filtering
func GetAuditActions(c *fiber.Ctx) error {
	actions := []string{
		string(models.AuditActionLogin),
		string(models.AuditActionRegister),
		string(models.AuditActionGroupCreate),
		string(models.AuditActionGroupJoin),
		string(models.AuditActionGroupLeave),
		string(models.AuditActionGroupDelete),
		string(models.AuditActionAccountDelete),
	}

	return c.JSON(actions)
}

type AppSettings struct {
	SessionDurationHours int `json:"session_duration_hours"`
}

// GetSettings returns non-sensitive application settings (admin only)
func GetSettings(c *fiber.Ctx) error {
	cfg := config.GetConfig()
	return c.JSON(AppSettings{
		SessionDurationHours: cfg.SessionDurationHours,
	})
}

// UpdateSettings updates application settings (admin only)
func UpdateSettings(c *fiber.Ctx) error {
	var input AppSettings
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if input.SessionDurationHours < 1 || input.SessionDurationHours > 720 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Session duration must be between 1 and 720 hours",
		})
	}

	cfg := config.GetConfig()
	cfg.SessionDurationHours = input.SessionDurationHours

	if err := cfg.Save(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save settings",
		})
	}

	return c.JSON(AppSettings{
		SessionDurationHours: cfg.SessionDurationHours,
	})
}

// countsByColumn tallies rows of model per distinct value of column
func countsByColumn(model interface{}, column string) (map[uint]int64, error) {
	type row struct {
		Key   uint
		Total int64
	}
	var rows []row
	result := database.DB.Model(model).
		Select(column + " as key, count(*) as total").
		Group(column).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.Key] = r.Total
	}
	return counts, nil
}
