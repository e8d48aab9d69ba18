package service

import (
	"context"

	"recipe-catalog/internal/model"
	"recipe-catalog/internal/repository"
)

// MainPageLimit is the number of recipes shown on the home page.
const MainPageLimit = 5

// RecipeService serves recipe listings.
type RecipeService struct {
	repo *repository.RecipeRepository
}

func NewRecipeService(repo *repository.RecipeRepository) *RecipeService {
	return &RecipeService{repo: repo}
}

// Latest returns the newest recipes for the home page.
func (s *RecipeService) Latest(ctx context.Context) ([]model.Recipe, error) {
	return s.repo.Latest(ctx, MainPageLimit)
}
