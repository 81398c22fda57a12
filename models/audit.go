package models

import (
	"time"
)

type AuditAction string

const (
	AuditActionLogin         AuditAction = "login"
	AuditActionRegister      AuditAction = "register"
	AuditActionGroupCreate   AuditAction = "group_create"
	AuditActionGroupJoin     AuditAction = "group_join"
	AuditActionGroupLeave    AuditAction = "group_leave"
	AuditActionGroupDelete   AuditAction = "group_delete"
	AuditActionAccountDelete AuditAction = "account_delete"
)

type AuditLog struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"index" json:"user_id"`
	Email     string      `json:"email"`
	Action    AuditAction `gorm:"index" json:"action"`
	GroupID   *uint       `gorm:"index" json:"group_id,omitempty"`
	Details   string      `json:"details,omitempty"`
	IPAddress string      `json:"ip_address"`
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
}
