package models

import (
	"time"
)

type ActivityType string

const (
	ActivityWalk           ActivityType = "WALK"
	ActivityRun            ActivityType = "RUN"
	ActivityStationaryBike ActivityType = "STATIONARY_BIKE"
	ActivityGym            ActivityType = "GYM"
	ActivityTapOut         ActivityType = "TAP_OUT"
	ActivityPilates        ActivityType = "PILATES"
	ActivityMalova         ActivityType = "MALOVA"
	ActivitySwimming       ActivityType = "SWIMMING"
)

// ActivityTypes lists every accepted activity type.
var ActivityTypes = []ActivityType{
	ActivityWalk,
	ActivityRun,
	ActivityStationaryBike,
	ActivityGym,
	ActivityTapOut,
	ActivityPilates,
	ActivityMalova,
	ActivitySwimming,
}

func ValidActivityType(t ActivityType) bool {
	for _, known := range ActivityTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Activity struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       uint         `gorm:"not null;index" json:"user_id"`
	GroupID      uint         `gorm:"not null;index" json:"group_id"`
	ActivityType ActivityType `gorm:"not null" json:"activityType"`
	Duration     int          `gorm:"not null" json:"duration"` // minutes
	Date         time.Time    `gorm:"not null;index" json:"date"`
	User         User         `gorm:"foreignKey:UserID" json:"-"`
	Group        Group        `gorm:"foreignKey:GroupID" json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
}

// ActivityInput is used for logging and editing activities
type ActivityInput struct {
	ActivityType ActivityType `json:"activityType"`
	Duration     int          `json:"duration"`
	Date         string       `json:"date"`
	GroupID      uint         `json:"groupId"`
}

// GroupRef is the minimal group shape embedded in activity responses
type GroupRef struct {
	Name string `json:"name"`
}

// ActivityResponse is an activity annotated with its user and group
type ActivityResponse struct {
	ID           uint         `json:"id"`
	UserID       uint         `json:"user_id"`
	GroupID      uint         `json:"group_id"`
	ActivityType ActivityType `json:"activityType"`
	Duration     int          `json:"duration"`
	Date         time.Time    `json:"date"`
	CreatedAt    time.Time    `json:"created_at"`
	User         *UserRef     `json:"user,omitempty"`
	Group        *GroupRef    `json:"group,omitempty"`
}

func (a *Activity) ToResponse() ActivityResponse {
	resp := ActivityResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		GroupID:      a.GroupID,
		ActivityType: a.ActivityType,
		Duration:     a.Duration,
		Date:         a.Date,
		CreatedAt:    a.CreatedAt,
	}
	if a.User.ID != 0 {
		ref := a.User.ToRef()
		resp.User = &ref
	}
	if a.Group.ID != 0 {
		resp.Group = &GroupRef{Name: a.Group.Name}
	}
	return resp
}
