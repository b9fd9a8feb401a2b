package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-hris/internal/interface/http"
	"github.com/oksasatya/go-hris/internal/interface/middleware"
)

type ReferenceModule struct {
	Handler  *handlers.ReferenceHandler
	Sessions middleware.Authenticator
	Required bool
}

func NewReferenceModule(h *handlers.ReferenceHandler, sessions middleware.Authenticator, required bool) *ReferenceModule {
	return &ReferenceModule{Handler: h, Sessions: sessions, Required: required}
}

func (m *ReferenceModule) Register(rg *gin.RouterGroup) {
	session := middleware.Session(m.Sessions, m.Required)
	rg.GET("/roles", session, m.Handler.Roles)
	rg.GET("/organizations", session, m.Handler.Organizations)
}
