package model

import "time"

// Subscriber stores a Telegram chat that receives the recipe digest.
type Subscriber struct {
	ID        uint  `gorm:"primaryKey"`
	ChatID    int64 `gorm:"uniqueIndex"`
	Username  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
