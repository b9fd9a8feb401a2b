package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-hris/internal/interface/http"
	"github.com/oksasatya/go-hris/internal/interface/middleware"
)

// UserModule mounts the directory under /users.
// Required decides whether a live session is enforced or only attached when present.
type UserModule struct {
	Handler  *handlers.UserHandler
	Sessions middleware.Authenticator
	Required bool
}

func NewUserModule(h *handlers.UserHandler, sessions middleware.Authenticator, required bool) *UserModule {
	return &UserModule{Handler: h, Sessions: sessions, Required: required}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users", middleware.Session(m.Sessions, m.Required))
	{
		users.GET("", m.Handler.List)
		users.POST("", m.Handler.Create)
		users.GET("/search", m.Handler.Search)
		users.GET("/:id", m.Handler.Get)
		users.PUT("/:id", m.Handler.Update)
		users.DELETE("/:id", m.Handler.Delete)
	}
}
