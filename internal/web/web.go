// Package web serves the dashboard pages. Pages are static shells; all data
// is loaded by the browser from the JSON API.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	pageHome  = "home"
	pageLogin = "login"
	pageUsers = "users"
)

type pageData struct {
	AppName string
	Title   string
	Active  string
}

type Handler struct {
	AppName string
	pages   map[string]*template.Template
}

// New parses every page together with the shared layout.
func New(appName string) (*Handler, error) {
	if appName == "" {
		appName = "HRIS"
	}
	pages := make(map[string]*template.Template, 3)
	for _, name := range []string{pageHome, pageLogin, pageUsers} {
		t, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Handler{AppName: appName, pages: pages}, nil
}

func (h *Handler) render(c *gin.Context, page, title string) {
	c.Header("Cache-Control", "no-store")
	c.Render(http.StatusOK, render.HTML{
		Template: h.pages[page],
		Name:     "layout",
		Data:     pageData{AppName: h.AppName, Title: title, Active: page},
	})
}

// Home GET /
func (h *Handler) Home(c *gin.Context) { h.render(c, pageHome, "Dashboard") }

// Login GET /login
func (h *Handler) Login(c *gin.Context) { h.render(c, pageLogin, "Login") }

// Users GET /users
func (h *Handler) Users(c *gin.Context) { h.render(c, pageUsers, "Users") }
