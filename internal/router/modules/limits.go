package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-hris/internal/interface/middleware"
)

// Limits is the shared limiter backend. A nil Redis turns every limiter into a no-op.
type Limits struct {
	Redis redis.Cmdable
	Allow middleware.AllowFunc
}

func (l Limits) perMinute(n int, key middleware.KeyFunc) gin.HandlerFunc {
	return middleware.RateLimit(l.Redis, n, time.Minute, key, l.Allow)
}
