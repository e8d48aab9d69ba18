package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"recipe-catalog/internal/model"
)

// CategoryRepository manages recipe categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Omit("Recipes").Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// ListWithRecipeCount returns every category with the number of recipes
// referencing it, in insertion order. Categories without recipes are
// reported with a zero count. The counts come from one grouped LEFT JOIN.
func (r *CategoryRepository) ListWithRecipeCount(ctx context.Context) ([]model.CategorySummary, error) {
	summaries := []model.CategorySummary{}
	err := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Select("categories.id, categories.name, COUNT(recipes.id) AS recipe_count").
		Joins("LEFT JOIN recipes ON recipes.category_id = categories.id").
		Group("categories.id, categories.name").
		Order("categories.id ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return summaries, nil
}
