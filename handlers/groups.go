package handlers

import (
	"strconv"
	"time"

	"groupfit/database"
	"groupfit/middleware"
	"groupfit/models"
	"groupfit/observability"
	"groupfit/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListGroups returns groups annotated with membership info for the caller.
// With showAll every group is returned; otherwise only groups the caller
// belongs to.
func ListGroups(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	showAll := c.QueryBool("showAll", false)

	var groups []models.Group
	result := database.DB.
		Preload("Members.User").
		Preload("CreatedBy").
		Order("name").
		Find(&groups)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch groups",
		})
	}

	counts, err := activityCountsByGroup()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch groups",
		})
	}

	formatted := make([]models.GroupResponse, 0, len(groups))
	for i := range groups {
		resp := groups[i].ToResponse(userID, counts[groups[i].ID])
		if !showAll && !resp.IsMember {
			continue
		}
		formatted = append(formatted, resp)
	}

	return c.JSON(fiber.Map{
		"groups": formatted,
		"count":  len(formatted),
	})
}

// CreateGroup creates a group and its creator's ADMIN membership atomically
func CreateGroup(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var input models.GroupInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Group name is required",
		})
	}

	group := models.Group{
		Name:        input.Name,
		Description: input.Description,
		CreatorID:   userID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		member := models.GroupMember{
			GroupID: group.ID,
			UserID:  userID,
			Role:    models.MemberRoleAdmin,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error creating group",
		})
	}

	if result := database.DB.Preload("Members.User").Preload("CreatedBy").First(&group, group.ID); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error creating group",
		})
	}

	observability.RecordGroupCreated()
	services.LogAudit(userID, middleware.GetEmail(c), models.AuditActionGroupCreate, &group.ID, "Created group: "+group.Name, c.IP())

	return c.JSON(fiber.Map{
		"group": group.ToResponse(userID, 0),
	})
}

// JoinGroup adds the caller as a MEMBER
func JoinGroup(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := parseGroupID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	var group models.Group
	if result := database.DB.First(&group, groupID); result.Error != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Group not found",
		})
	}

	// Check if user is already a member
	var existing models.GroupMember
	if result := database.DB.Where("group_id = ? AND user_id = ?", groupID, userID).First(&existing); result.Error == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Already a member of this group",
		})
	}

	membership := models.GroupMember{
		GroupID: groupID,
		UserID:  userID,
		Role:    models.MemberRoleMember,
	}
	if result := database.DB.Create(&membership); result.Error != nil {
		// Concurrent joins lose to the (group_id, user_id) unique index;
		// anything else is a store failure
		var winner models.GroupMember
		if check := database.DB.Where("group_id = ? AND user_id = ?", groupID, userID).First(&winner); check.Error == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Already a member of this group",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to join group",
		})
	}

	services.LogAudit(userID, middleware.GetEmail(c), models.AuditActionGroupJoin, &groupID, "Joined group: "+group.Name, c.IP())

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"membership": membership,
	})
}

// LeaveGroup removes the caller's membership. The creator can never
// leave; the group has to be deleted instead.
func LeaveGroup(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := parseGroupID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	var membership models.GroupMember
	if result := database.DB.Preload("Group").Where("group_id = ? AND user_id = ?", groupID, userID).First(&membership); result.Error != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Not a member of this group",
		})
	}

	if membership.Group.CreatorID == userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Group creator cannot leave the group",
		})
	}

	if result := database.DB.Delete(&membership); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to leave group",
		})
	}

	services.LogAudit(userID, middleware.GetEmail(c), models.AuditActionGroupLeave, &groupID, "Left group: "+membership.Group.Name, c.IP())

	return c.JSON(fiber.Map{
		"message": "Successfully left group",
	})
}

// DeleteGroup removes a group and everything referencing it. Creator only.
func DeleteGroup(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := parseGroupID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	var group models.Group
	if result := database.DB.First(&group, groupID); result.Error != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Group not found",
		})
	}

	if group.CreatorID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the group creator can delete the group",
		})
	}

	// Activities and memberships first, the group row last
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", groupID).Delete(&models.Activity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, groupID).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error deleting group",
		})
	}

	services.LogAudit(userID, middleware.GetEmail(c), models.AuditActionGroupDelete, &groupID, "Deleted group: "+group.Name, c.IP())

	return c.JSON(fiber.Map{
		"message": "Group successfully deleted",
	})
}

// WeeklyActivities returns the group's activities within the requested
// window bucketed per day and per user. Members only.
func WeeklyActivities(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := parseGroupID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	var membership models.GroupMember
	if result := database.DB.Where("group_id = ? AND user_id = ?", groupID, userID).First(&membership); result.Error != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "User is not a member of this group",
		})
	}

	baseDate, err := services.ParseDate(c.Query("date"), time.Now())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date",
		})
	}
	viewType := c.Query("viewType", services.ViewMonthly)
	start, end := services.PeriodBounds(viewType, baseDate)

	var activities []models.Activity
	result := database.DB.
		Where("group_id = ? AND date >= ? AND date < ?", groupID, start, end).
		Order("date ASC").
		Find(&activities)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error fetching activities",
		})
	}

	names, photos, err := userAnnotations(activities)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error fetching activities",
		})
	}

	return c.JSON(fiber.Map{
		"activities": services.GroupActivitiesByDay(activities, names, photos),
	})
}

// RecentActivities returns the group's latest 20 activities with the
// acting user's name and current photo.
func RecentActivities(c *fiber.Ctx) error {
	groupID, err := parseGroupID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	var activities []models.Activity
	result := database.DB.
		Preload("Group").
		Where("group_id = ?", groupID).
		Order("date DESC").
		Limit(20).
		Find(&activities)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error fetching recent activities",
		})
	}

	names, photos, err := userAnnotations(activities)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error fetching recent activities",
		})
	}

	formatted := make([]fiber.Map, len(activities))
	for i, activity := range activities {
		var photoURL *string
		if url, ok := photos[activity.UserID]; ok {
			photoURL = &url
		}
		formatted[i] = fiber.Map{
			"id":           activity.ID,
			"activityType": activity.ActivityType,
			"duration":     activity.Duration,
			"date":         activity.Date,
			"user": fiber.Map{
				"id":       activity.UserID,
				"name":     names[activity.UserID],
				"photoUrl": photoURL,
			},
			"group": fiber.Map{
				"name": activity.Group.Name,
			},
		}
	}

	return c.JSON(fiber.Map{
		"activities": formatted,
	})
}

func parseGroupID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

// activityCountsByGroup tallies activity rows per group id
func activityCountsByGroup() (map[uint]int64, error) {
	type row struct {
		GroupID uint
		Total   int64
	}
	var rows []row
	result := database.DB.Model(&models.Activity{}).
		Select("group_id, count(*) as total").
		Group("group_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.GroupID] = r.Total
	}
	return counts, nil
}

// userAnnotations resolves names and current photos for the users behind
// a batch of activities. The photo is the newest personal-data entry.
func userAnnotations(activities []models.Activity) (map[uint]string, map[uint]string, error) {
	seen := make(map[uint]bool)
	var userIDs []uint
	for _, activity := range activities {
		if !seen[activity.UserID] {
			seen[activity.UserID] = true
			userIDs = append(userIDs, activity.UserID)
		}
	}

	names := make(map[uint]string, len(userIDs))
	photos := make(map[uint]string)
	if len(userIDs) == 0 {
		return names, photos, nil
	}

	var users []models.User
	if result := database.DB.Where("id IN ?", userIDs).Find(&users); result.Error != nil {
		return nil, nil, result.Error
	}
	for _, user := range users {
		names[user.ID] = user.Name
	}

	var entries []models.PersonalData
	result := database.DB.
		Where("user_id IN ?", userIDs).
		Order("log_date DESC").
		Find(&entries)
	if result.Error != nil {
		return nil, nil, result.Error
	}
	for _, entry := range entries {
		if _, ok := photos[entry.UserID]; !ok {
			photos[entry.UserID] = entry.PhotoURL
		}
	}

	return names, photos, nil
}
