// Package web serves the catalog pages.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"

	"recipe-catalog/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageMain         = "main"
	pageCategoryList = "category_list"
	pageError        = "error"
)

// RecipeLister returns the recipes shown on the home page.
type RecipeLister interface {
	Latest(ctx context.Context) ([]model.Recipe, error)
}

// CategoryLister returns categories annotated with recipe counts.
type CategoryLister interface {
	Summaries(ctx context.Context) ([]model.CategorySummary, error)
}

// Options tune the HTTP layer.
type Options struct {
	SSL     bool
	GinMode string
}

// Server holds the gin engine and the parsed page templates.
type Server struct {
	Router     *gin.Engine
	recipes    RecipeLister
	categories CategoryLister
	pages      map[string]*template.Template
}

// BasePage is the data every page template receives.
type BasePage struct {
	Title string
}

// MainPageData is passed to the main template.
type MainPageData struct {
	BasePage
	Recipes []model.Recipe
}

// CategoryListPageData is passed to the category_list template.
type CategoryListPageData struct {
	BasePage
	Categories []model.CategorySummary
}

type errorPageData struct {
	BasePage
	Message string
}

// NewServer builds the engine, parses templates and registers routes.
func NewServer(recipes RecipeLister, categories CategoryLister, opts Options) (*Server, error) {
	if opts.GinMode != "" {
		gin.SetMode(opts.GinMode)
	}

	pages, err := parsePages(pageMain, pageCategoryList, pageError)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}
	if opts.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}
	router.Use(secure.New(secureConfig))

	s := &Server{
		Router:     router,
		recipes:    recipes,
		categories: categories,
		pages:      pages,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.Router.GET("/", s.mainPage)
	s.Router.GET("/categories/", s.categoryListPage)
}

// parsePages pairs base.html with each page file.
func parsePages(names ...string) (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		tmpl, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

// render executes the page into a buffer first so a template failure
// turns into a 500 instead of a truncated 200.
func (s *Server) render(c *gin.Context, status int, page string, data any) {
	tmpl, ok := s.pages[page]
	if !ok {
		s.renderError(c, fmt.Errorf("unknown page %q", page))
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		s.renderError(c, fmt.Errorf("render %s: %w", page, err))
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) renderError(c *gin.Context, err error) {
	log.Printf("[warn] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	_ = c.Error(err)

	data := errorPageData{
		BasePage: BasePage{Title: "Server error"},
		Message:  "Something went wrong while loading this page.",
	}
	var buf bytes.Buffer
	if tmpl, ok := s.pages[pageError]; ok {
		if tmplErr := tmpl.ExecuteTemplate(&buf, "base.html", data); tmplErr == nil {
			c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", buf.Bytes())
			return
		}
	}
	c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then shuts
// it down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[info] http listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	log.Println("[info] http server stopped")
	return nil
}
