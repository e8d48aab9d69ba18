package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// mainPage lists the newest recipes.
func (s *Server) mainPage(c *gin.Context) {
	recipes, err := s.recipes.Latest(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	s.render(c, http.StatusOK, pageMain, MainPageData{
		BasePage: BasePage{Title: "Latest recipes"},
		Recipes:  recipes,
	})
}

// categoryListPage lists every category with its recipe count.
func (s *Server) categoryListPage(c *gin.Context) {
	categories, err := s.categories.Summaries(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	s.render(c, http.StatusOK, pageCategoryList, CategoryListPageData{
		BasePage:   BasePage{Title: "Categories"},
		Categories: categories,
	})
}
