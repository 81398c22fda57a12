package services

import (
	"groupfit/database"
	"groupfit/models"
)

// LogAudit creates an audit log entry
func LogAudit(userID uint, email string, action models.AuditAction, groupID *uint, details string, ipAddress string) {
	log := models.AuditLog{
		UserID:    userID,
		Email:     email,
		Action:    action,
		GroupID:   groupID,
		Details:   details,
		IPAddress: ipAddress,
	}

	// Fire and forget - don't block on audit logging
	go func() {
		database.DB.Create(&log)
	}()
}

// LogAuditSync creates an audit log entry synchronously
func LogAuditSync(userID uint, email string, action models.AuditAction, groupID *uint, details string, ipAddress string) error {
	log := models.AuditLog{
		UserID:    userID,
		Email:     email,
		Action:    action,
		GroupID:   groupID,
		Details:   details,
		IPAddress: ipAddress,
	}

	return database.DB.Create(&log).Error
}
