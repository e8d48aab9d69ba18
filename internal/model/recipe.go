package model

import "time"

// Recipe is a single catalog entry. CreatedAt is the listing order key.
type Recipe struct {
	ID           uint  `gorm:"primaryKey"`
	CategoryID   *uint `gorm:"index"`
	Category     *Category
	Title        string
	Description  string    `gorm:"type:text"`
	Instructions string    `gorm:"type:text"`
	Ingredients  string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}
