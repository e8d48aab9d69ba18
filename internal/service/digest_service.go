package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"recipe-catalog/internal/model"
)

const (
	NoRecipesText    = "No recipes found."
	NoCategoriesText = "No categories found."
)

// DigestService builds Telegram HTML messages from the catalog listings.
type DigestService struct {
	recipes    *RecipeService
	categories *CategoryService
}

func NewDigestService(recipes *RecipeService, categories *CategoryService) *DigestService {
	return &DigestService{recipes: recipes, categories: categories}
}

// Summary renders the periodic digest: latest recipes followed by the
// category counts.
func (s *DigestService) Summary(ctx context.Context, now time.Time) (string, error) {
	recipes, err := s.recipes.Latest(ctx)
	if err != nil {
		return "", err
	}
	categories, err := s.categories.Summaries(ctx)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.WriteString("📋 <b>Recipe digest</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("02.01.2006")))
	builder.WriteString(FormatLatest(recipes))
	builder.WriteString("\n\n")
	builder.WriteString(FormatCategories(categories))
	return strings.TrimSpace(builder.String()), nil
}

// LatestMessage renders only the latest recipes.
func (s *DigestService) LatestMessage(ctx context.Context) (string, error) {
	recipes, err := s.recipes.Latest(ctx)
	if err != nil {
		return "", err
	}
	return FormatLatest(recipes), nil
}

// CategoriesMessage renders only the category counts.
func (s *DigestService) CategoriesMessage(ctx context.Context) (string, error) {
	categories, err := s.categories.Summaries(ctx)
	if err != nil {
		return "", err
	}
	return FormatCategories(categories), nil
}

func FormatLatest(recipes []model.Recipe) string {
	var builder strings.Builder
	builder.WriteString("🍽 <b>Latest recipes</b>\n")
	if len(recipes) == 0 {
		builder.WriteString(NoRecipesText)
		return builder.String()
	}
	for _, recipe := range recipes {
		builder.WriteString(formatRecipe(recipe))
	}
	return strings.TrimRight(builder.String(), "\n")
}

func FormatCategories(categories []model.CategorySummary) string {
	var builder strings.Builder
	builder.WriteString("📂 <b>Categories</b>\n")
	if len(categories) == 0 {
		builder.WriteString(NoCategoriesText)
		return builder.String()
	}
	for _, cat := range categories {
		builder.WriteString("• " + CategoryLabel(cat) + "\n")
	}
	return strings.TrimRight(builder.String(), "\n")
}

// CategoryLabel renders "<name> (<count> recipes)" with the name escaped.
func CategoryLabel(cat model.CategorySummary) string {
	return fmt.Sprintf("%s (%d recipes)", html.EscapeString(strings.TrimSpace(cat.Name)), cat.RecipeCount)
}

func formatRecipe(recipe model.Recipe) string {
	line := "• <b>" + html.EscapeString(strings.TrimSpace(recipe.Title)) + "</b>"
	if recipe.Category != nil && strings.TrimSpace(recipe.Category.Name) != "" {
		line += " · " + html.EscapeString(strings.TrimSpace(recipe.Category.Name))
	}
	line += fmt.Sprintf(" (%s)\n", recipe.CreatedAt.Format("02.01.2006"))
	if desc := strings.TrimSpace(recipe.Description); desc != "" {
		line += "  " + html.EscapeString(shortText(desc, 120)) + "\n"
	}
	return line
}

// shortText cuts s to at most maxLen runes, appending an ellipsis when cut.
func shortText(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return strings.TrimSpace(string(runes[:maxLen-1])) + "…"
}
