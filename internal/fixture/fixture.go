// Package fixture loads categories and recipes from YAML files.
package fixture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"recipe-catalog/internal/model"
	"recipe-catalog/internal/repository"
)

// File is the top-level fixture document.
type File struct {
	Categories []Category `yaml:"categories"`
	Recipes    []Recipe   `yaml:"recipes"`
}

type Category struct {
	Name    string   `yaml:"name"`
	Recipes []Recipe `yaml:"recipes"`
}

type Recipe struct {
	Title        string     `yaml:"title"`
	Description  string     `yaml:"description"`
	Instructions string     `yaml:"instructions"`
	Ingredients  string     `yaml:"ingredients"`
	CreatedAt    *time.Time `yaml:"created_at"`
}

// Result counts the rows a load inserted.
type Result struct {
	Categories int
	Recipes    int
}

// ReadFile decodes the fixture file at path.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses and validates a fixture document.
func Decode(r io.Reader) (*File, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &file, nil
		}
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// Validate checks required fields before anything touches the database.
func (f *File) Validate() error {
	for i, cat := range f.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return fmt.Errorf("categories[%d]: name is required", i)
		}
		for j, recipe := range cat.Recipes {
			if strings.TrimSpace(recipe.Title) == "" {
				return fmt.Errorf("categories[%d].recipes[%d]: title is required", i, j)
			}
		}
	}
	for i, recipe := range f.Recipes {
		if strings.TrimSpace(recipe.Title) == "" {
			return fmt.Errorf("recipes[%d]: title is required", i)
		}
	}
	return nil
}

// Apply inserts the fixture in a single transaction; on error nothing is kept.
func Apply(ctx context.Context, db *gorm.DB, file *File) (Result, error) {
	var res Result
	if err := file.Validate(); err != nil {
		return res, err
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := repository.NewCategoryRepository(tx)
		recipes := repository.NewRecipeRepository(tx)

		for _, cat := range file.Categories {
			row := model.Category{Name: strings.TrimSpace(cat.Name)}
			if err := categories.Create(ctx, &row); err != nil {
				return err
			}
			res.Categories++
			for _, recipe := range cat.Recipes {
				if err := recipes.Create(ctx, recipe.toModel(&row.ID)); err != nil {
					return err
				}
				res.Recipes++
			}
		}
		for _, recipe := range file.Recipes {
			if err := recipes.Create(ctx, recipe.toModel(nil)); err != nil {
				return err
			}
			res.Recipes++
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("apply fixture: %w", err)
	}
	return res, nil
}

func (r Recipe) toModel(categoryID *uint) *model.Recipe {
	m := &model.Recipe{
		CategoryID:   categoryID,
		Title:        strings.TrimSpace(r.Title),
		Description:  r.Description,
		Instructions: r.Instructions,
		Ingredients:  r.Ingredients,
	}
	if r.CreatedAt != nil {
		m.CreatedAt = *r.CreatedAt
	}
	return m
}
