package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-hris/internal/interface/http"
	"github.com/oksasatya/go-hris/internal/web"
)

// HealthModule mounts GET /healthz on the engine root.
type HealthModule struct {
	Handler *handlers.HealthHandler
}

func NewHealthModule(h *handlers.HealthHandler) *HealthModule { return &HealthModule{Handler: h} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.Handler.Health)
}

// WebModule mounts the dashboard pages.
type WebModule struct {
	Pages *web.Handler
}

func NewWebModule(p *web.Handler) *WebModule { return &WebModule{Pages: p} }

func (m *WebModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Pages.Home)
	rg.GET("/login", m.Pages.Login)
	rg.GET("/users", m.Pages.Users)
}
