package models

import (
	"time"
)

type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "ADMIN"
	MemberRoleMember MemberRole = "MEMBER"
)

type Group struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"not null" json:"name"`
	Description string        `json:"description"`
	CreatorID   uint          `gorm:"not null;index" json:"creator_id"`
	CreatedBy   User          `gorm:"foreignKey:CreatorID" json:"-"`
	Members     []GroupMember `gorm:"foreignKey:GroupID" json:"-"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// A user belongs to a group at most once; the composite unique index
// settles concurrent join attempts.
type GroupMember struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	GroupID  uint       `gorm:"not null;uniqueIndex:idx_group_member" json:"group_id"`
	UserID   uint       `gorm:"not null;uniqueIndex:idx_group_member" json:"user_id"`
	Role     MemberRole `gorm:"not null;default:MEMBER" json:"role"`
	User     User       `gorm:"foreignKey:UserID" json:"-"`
	Group    Group      `gorm:"foreignKey:GroupID" json:"-"`
	JoinedAt time.Time  `gorm:"autoCreateTime" json:"joined_at"`
}

// GroupInput is used for creating groups
type GroupInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GroupMemberResponse is a membership entry within a group listing
type GroupMemberResponse struct {
	User UserRef    `json:"user"`
	Role MemberRole `json:"role"`
}

// GroupResponse is a group annotated with membership info for the caller
type GroupResponse struct {
	ID            uint                  `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	CreatedBy     UserRef               `json:"createdBy"`
	Members       []GroupMemberResponse `json:"members"`
	MemberCount   int                   `json:"memberCount"`
	ActivityCount int64                 `json:"activityCount"`
	IsMember      bool                  `json:"isMember"`
	IsCreator     bool                  `json:"isCreator"`
}

// ToResponse annotates the group for the given caller. Members and
// CreatedBy must be preloaded.
func (g *Group) ToResponse(callerID uint, activityCount int64) GroupResponse {
	resp := GroupResponse{
		ID:            g.ID,
		Name:          g.Name,
		Description:   g.Description,
		CreatedBy:     g.CreatedBy.ToRef(),
		Members:       make([]GroupMemberResponse, len(g.Members)),
		MemberCount:   len(g.Members),
		ActivityCount: activityCount,
		IsCreator:     g.CreatorID == callerID,
	}
	for i, m := range g.Members {
		resp.Members[i] = GroupMemberResponse{
			User: m.User.ToRef(),
			Role: m.Role,
		}
		if m.UserID == callerID {
			resp.IsMember = true
		}
	}
	return resp
}
