package modules

import (
	"expvar"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-hris/internal/interface/middleware"
)

var requestsByStatus = expvar.NewMap("http_requests_by_status")

// CountRequests tallies API responses by status class ("2xx", "4xx", ...).
func CountRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		requestsByStatus.Add(strconv.Itoa(c.Writer.Status()/100)+"xx", 1)
	}
}

// DebugModule exposes expvar at /debug/vars, rate limited per IP.
type DebugModule struct {
	Limits Limits
}

func NewDebugModule(limits Limits) *DebugModule { return &DebugModule{Limits: limits} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", m.Limits.perMinute(120, middleware.KeyByIP()), gin.WrapH(expvar.Handler()))
}
