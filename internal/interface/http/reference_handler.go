package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hris/internal/domain/entity"
	"github.com/oksasatya/go-hris/pkg/response"
)

type ReferenceService interface {
	ListRoles(ctx context.Context) ([]entity.Role, error)
	ListOrganizations(ctx context.Context) ([]entity.Organization, error)
}

type ReferenceHandler struct {
	Svc    ReferenceService
	Logger *logrus.Logger
}

func NewReferenceHandler(svc ReferenceService, logger *logrus.Logger) *ReferenceHandler {
	return &ReferenceHandler{Svc: svc, Logger: logger}
}

// Roles GET /api/roles
func (h *ReferenceHandler) Roles(c *gin.Context) {
	roles, err := h.Svc.ListRoles(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err, failMessages{Fallback: "Failed to fetch roles"})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"roles": roles}, "ok", nil)
}

// Organizations GET /api/organizations
func (h *ReferenceHandler) Organizations(c *gin.Context) {
	orgs, err := h.Svc.ListOrganizations(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err, failMessages{Fallback: "Failed to fetch organizations"})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"organizations": orgs}, "ok", nil)
}
