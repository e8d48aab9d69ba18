package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-catalog/internal/model"
	"recipe-catalog/internal/repository"
	"recipe-catalog/internal/service"
)

type catalog struct {
	server     *Server
	recipeRepo *repository.RecipeRepository
	catRepo    *repository.CategoryRepository
}

func newCatalog(t *testing.T) *catalog {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "web.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	recipeRepo := repository.NewRecipeRepository(db)
	catRepo := repository.NewCategoryRepository(db)
	srv, err := NewServer(
		service.NewRecipeService(recipeRepo),
		service.NewCategoryService(catRepo),
		Options{GinMode: gin.TestMode},
	)
	require.NoError(t, err)
	return &catalog{server: srv, recipeRepo: recipeRepo, catRepo: catRepo}
}

// seed mirrors the classic data set: two categories, six recipes a day
// apart with "Recipe 1" the newest, alternating categories.
func (c *catalog) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	desserts := &model.Category{Name: "Desserts"}
	mains := &model.Category{Name: "Main Dishes"}
	require.NoError(t, c.catRepo.Create(ctx, desserts))
	require.NoError(t, c.catRepo.Create(ctx, mains))

	now := time.Now()
	for i := 0; i < 6; i++ {
		cat := &desserts.ID
		if i%2 == 1 {
			cat = &mains.ID
		}
		require.NoError(t, c.recipeRepo.Create(ctx, &model.Recipe{
			Title:        fmt.Sprintf("Recipe %d", i+1),
			Description:  fmt.Sprintf("Description for recipe %d", i+1),
			Instructions: "Mix and cook.",
			Ingredients:  "Flour, sugar, eggs",
			CategoryID:   cat,
			CreatedAt:    now.Add(-time.Duration(i) * 24 * time.Hour),
		}))
	}
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func TestMainPage(t *testing.T) {
	c := newCatalog(t)
	c.seed(t)

	w := get(t, c.server, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Equal(t, 5, strings.Count(body, `<article class="recipe">`))
	assert.Contains(t, body, "Recipe 1")
	assert.Contains(t, body, "Description for recipe 1")
	assert.Contains(t, body, "Recipe 5")
	assert.NotContains(t, body, "Recipe 6")
	assert.NotContains(t, body, "No recipes found.")

	positions := make([]int, 0, 5)
	for i := 1; i <= 5; i++ {
		positions = append(positions, strings.Index(body, fmt.Sprintf("<h2>Recipe %d</h2>", i)))
	}
	for i := 1; i < len(positions); i++ {
		assert.Less(t, positions[i-1], positions[i], "Recipe %d before Recipe %d", i, i+1)
	}
}

func TestMainPageNoRecipes(t *testing.T) {
	c := newCatalog(t)

	w := get(t, c.server, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, strings.Count(w.Body.String(), `<article class="recipe">`))
	assert.Contains(t, w.Body.String(), "No recipes found.")
}

func TestCategoryListPage(t *testing.T) {
	c := newCatalog(t)
	c.seed(t)
	require.NoError(t, c.catRepo.Create(context.Background(), &model.Category{Name: "Drinks"}))

	w := get(t, c.server, "/categories/")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Desserts (3 recipes)")
	assert.Contains(t, body, "Main Dishes (3 recipes)")
	assert.Contains(t, body, "Drinks (0 recipes)")
	assert.Equal(t, 3, strings.Count(body, "<li>"))
	assert.NotContains(t, body, "No categories found.")
}

func TestCategoryListPageNoCategories(t *testing.T) {
	c := newCatalog(t)

	w := get(t, c.server, "/categories/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No categories found.")
}

func TestPagesAreIdempotent(t *testing.T) {
	c := newCatalog(t)
	c.seed(t)

	for _, path := range []string{"/", "/categories/"} {
		first := get(t, c.server, path).Body.String()
		second := get(t, c.server, path).Body.String()
		assert.Equal(t, first, second, path)
	}
}

func TestSecurityHeaders(t *testing.T) {
	c := newCatalog(t)

	w := get(t, c.server, "/")
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestUnknownRoute(t *testing.T) {
	c := newCatalog(t)

	w := get(t, c.server, "/recipes/1")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type stubRecipes struct {
	recipes []model.Recipe
	err     error
}

func (s stubRecipes) Latest(context.Context) ([]model.Recipe, error) { return s.recipes, s.err }

type stubCategories struct {
	categories []model.CategorySummary
	err        error
}

func (s stubCategories) Summaries(context.Context) ([]model.CategorySummary, error) {
	return s.categories, s.err
}

func TestStoreErrorsRenderServerError(t *testing.T) {
	boom := errors.New("database is locked")
	srv, err := NewServer(stubRecipes{err: boom}, stubCategories{err: boom}, Options{GinMode: gin.TestMode})
	require.NoError(t, err)

	for _, path := range []string{"/", "/categories/"} {
		w := get(t, srv, path)
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.Contains(t, w.Body.String(), "Something went wrong", path)
		assert.NotContains(t, w.Body.String(), "database is locked", path)
	}
}

func TestTemplatesEscapeContent(t *testing.T) {
	srv, err := NewServer(
		stubRecipes{recipes: []model.Recipe{{Title: "<script>x</script>", CreatedAt: time.Now()}}},
		stubCategories{categories: []model.CategorySummary{{ID: 1, Name: "Fish & Chips", RecipeCount: 1}}},
		Options{GinMode: gin.TestMode},
	)
	require.NoError(t, err)

	body := get(t, srv, "/").Body.String()
	assert.NotContains(t, body, "<script>x</script>")
	assert.Contains(t, body, "&lt;script&gt;")

	body = get(t, srv, "/categories/").Body.String()
	assert.Contains(t, body, "Fish &amp; Chips (1 recipes)")
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv, err := NewServer(stubRecipes{}, stubCategories{}, Options{GinMode: gin.TestMode})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
