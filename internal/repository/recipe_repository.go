package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"recipe-catalog/internal/model"
)

// RecipeRepository reads and stores recipes.
type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create stores a recipe. A zero CreatedAt is filled with the current time.
// Timestamps are kept in UTC so SQLite's text ordering matches time order.
func (r *RecipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = time.Now()
	}
	recipe.CreatedAt = recipe.CreatedAt.UTC()
	if err := r.db.WithContext(ctx).Omit("Category").Create(recipe).Error; err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

// Latest returns up to limit recipes, newest first. Recipes sharing a
// timestamp are ordered by id, highest first.
func (r *RecipeRepository) Latest(ctx context.Context, limit int) ([]model.Recipe, error) {
	recipes := []model.Recipe{}
	if limit <= 0 {
		return recipes, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Category").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("latest recipes: %w", err)
	}
	return recipes, nil
}
