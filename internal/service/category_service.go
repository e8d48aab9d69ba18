package service

import (
	"context"

	"recipe-catalog/internal/model"
	"recipe-catalog/internal/repository"
)

// CategoryService provides the category listing.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// Summaries returns all categories with their recipe counts.
func (s *CategoryService) Summaries(ctx context.Context) ([]model.CategorySummary, error) {
	return s.repo.ListWithRecipeCount(ctx)
}
