package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hris/pkg/response"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	DB      Pinger
	Logger  *logrus.Logger
	Timeout time.Duration
}

func NewHealthHandler(db Pinger, logger *logrus.Logger, timeout time.Duration) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{DB: db, Logger: logger, Timeout: timeout}
}

// Health GET /healthz
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()
	if err := h.DB.Ping(ctx); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("health check: database ping failed")
		}
		response.Error[any](c, http.StatusServiceUnavailable, "database unavailable", errorBody{Code: CodeStoreUnavailable})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"database": "ok"}, "ok", nil)
}
