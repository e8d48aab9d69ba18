package model

import "time"

// Category groups recipes (desserts, main dishes, etc.).
type Category struct {
	ID        uint `gorm:"primaryKey"`
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Recipes   []Recipe `gorm:"foreignKey:CategoryID"`
}

// CategorySummary is a category row annotated with its recipe count.
type CategorySummary struct {
	ID          uint
	Name        string
	RecipeCount int64
}
