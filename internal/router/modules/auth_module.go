package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-hris/internal/interface/http"
	"github.com/oksasatya/go-hris/internal/interface/middleware"
)

// AuthModule mounts /auth/*. Login and register are rate limited per IP and route.
type AuthModule struct {
	Handler  *handlers.AuthHandler
	Sessions middleware.Authenticator
	Limits   Limits
}

func NewAuthModule(h *handlers.AuthHandler, sessions middleware.Authenticator, limits Limits) *AuthModule {
	return &AuthModule{Handler: h, Sessions: sessions, Limits: limits}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")

	auth.POST("/login", m.Limits.perMinute(10, middleware.KeyByIPAndPath()), m.Handler.Login)
	auth.POST("/register", m.Limits.perMinute(5, middleware.KeyByIPAndPath()), m.Handler.Register)
	auth.POST("/refresh", m.Limits.perMinute(60, middleware.KeyByIPAndPath()), m.Handler.Refresh)
	auth.POST("/logout", m.Handler.Logout)

	auth.GET("/me", middleware.Session(m.Sessions, true), m.Handler.Me)
}
