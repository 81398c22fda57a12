package models

import (
	"time"
)

type Weight struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Weight    float64   `gorm:"not null" json:"weight"` // kg
	Date      time.Time `gorm:"not null;index" json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// WeightInput is used for logging and editing weight entries
type WeightInput struct {
	Weight float64 `json:"weight"`
	Date   string  `json:"date"`
}
