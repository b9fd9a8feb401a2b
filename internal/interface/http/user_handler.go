package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hris/internal/application"
	"github.com/oksasatya/go-hris/internal/domain/entity"
	"github.com/oksasatya/go-hris/pkg/response"
	"github.com/oksasatya/go-hris/pkg/validation"
)

// UserService is the directory surface used by UserHandler.
type UserService interface {
	ListUsers(ctx context.Context, q application.ListQuery) (*application.UserPage, error)
	GetUser(ctx context.Context, id int64) (*entity.UserDetail, error)
	CreateUser(ctx context.Context, in application.CreateUserInput) (int64, error)
	UpdateUser(ctx context.Context, id int64, in application.UpdateUserInput) error
	DeleteUser(ctx context.Context, id int64) error
	SearchUsers(ctx context.Context, q string, size int) ([]entity.UserDetail, error)
}

type UserHandler struct {
	Svc    UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type listUsersQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Search string `form:"search"`
	RoleID int64  `form:"role_id" binding:"omitempty,gte=0"`
}

type searchUsersQuery struct {
	Q    string `form:"q"`
	Size int    `form:"size"`
}

type pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

const userNotFound = "User not found"

func parseUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "Invalid user id", map[string]string{"id": "must be a positive integer"})
		return 0, false
	}
	return id, true
}

// List GET /api/users?page&limit&search&role_id
func (h *UserHandler) List(c *gin.Context) {
	var q listUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid query parameters", validation.ToDetails(err))
		return
	}

	page, err := h.Svc.ListUsers(c.Request.Context(), application.ListQuery{
		Page:     q.Page,
		PageSize: q.Limit,
		Search:   q.Search,
		RoleID:   q.RoleID,
	})
	if err != nil {
		fail(c, h.Logger, err, failMessages{Fallback: "Failed to fetch users"})
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"users": page.Items,
		"pagination": pagination{
			Page:       page.Page,
			Limit:      page.PageSize,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		},
	}, "ok", nil)
}

// Search GET /api/users/search?q&size
func (h *UserHandler) Search(c *gin.Context) {
	var q searchUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid query parameters", validation.ToDetails(err))
		return
	}
	users, err := h.Svc.SearchUsers(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		fail(c, h.Logger, err, failMessages{Fallback: "Failed to search users"})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users}, "ok", nil)
}

// Get GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	u, err := h.Svc.GetUser(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err, failMessages{Fallback: "Failed to fetch user", NotFound: userNotFound})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "ok", nil)
}

// Create POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req application.CreateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	id, err := h.Svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		fail(c, h.Logger, err, failMessages{Fallback: "Failed to create user", Conflict: "Email already exists"})
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"userId": id}, "User created successfully", nil)
}

// Update PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	var req application.UpdateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.UpdateUser(c.Request.Context(), id, req); err != nil {
		fail(c, h.Logger, err, failMessages{Fallback: "Failed to update user", Conflict: "Email already exists", NotFound: userNotFound})
		return
	}
	response.Success[any](c, http.StatusOK, nil, "User updated successfully", nil)
}

// Delete DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteUser(c.Request.Context(), id); err != nil {
		fail(c, h.Logger, err, failMessages{Fallback: "Failed to delete user", NotFound: userNotFound})
		return
	}
	response.Success[any](c, http.StatusOK, nil, "User deleted successfully", nil)
}
