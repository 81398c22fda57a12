package models

import (
	"time"
)

// PersonalData is an append-only photo log; the newest entry by LogDate
// is the user's current photo.
type PersonalData struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;index" json:"user_id"`
	PhotoURL string    `gorm:"not null" json:"photoUrl"`
	LogDate  time.Time `gorm:"not null;index" json:"logDate"`
}

// PersonalDataInput is used for logging a profile photo
type PersonalDataInput struct {
	PhotoURL string `json:"photoUrl"`
}
