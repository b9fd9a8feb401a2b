package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hris/internal/application"
	"github.com/oksasatya/go-hris/internal/domain/entity"
	"github.com/oksasatya/go-hris/internal/interface/middleware"
	"github.com/oksasatya/go-hris/pkg/helpers"
	"github.com/oksasatya/go-hris/pkg/response"
	"github.com/oksasatya/go-hris/pkg/validation"
)

// AuthService is the part of application.AuthService the handlers call.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*entity.PublicUser, error)
	Register(ctx context.Context, in application.RegisterInput) (int64, error)
	StartSession(ctx context.Context, u *entity.PublicUser) (*application.SessionTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*application.SessionTokens, error)
	Logout(ctx context.Context, sid string) error
	SessionIDFromToken(accessToken, refreshToken string) string
}

type AuthHandler struct {
	Svc     AuthService
	Logger  *logrus.Logger
	Cookies *helpers.SessionCookies
}

func NewAuthHandler(svc AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewSessionCookies(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.Logger, err, failMessages{Fallback: "Internal server error"})
		return
	}

	var meta map[string]any
	tokens, err := h.Svc.StartSession(c.Request.Context(), u)
	if err != nil {
		// the legacy client flow still works without a server session
		h.Logger.WithError(err).WithField("user_id", u.ID).Warn("session start failed")
	} else if tokens != nil {
		h.Cookies.SetPair(c, tokens.AccessToken, tokens.AccessTokenExpiry, tokens.RefreshToken, tokens.RefreshTokenExpiry)
		meta = map[string]any{"access_expires_at": tokens.AccessTokenExpiry, "refresh_expires_at": tokens.RefreshTokenExpiry}
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "Login successful", meta)
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	id, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, h.Logger, err, failMessages{Fallback: "Failed to register user", Conflict: "Email already registered"})
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"userId": id}, "User registered successfully", nil)
}

// Logout POST /api/auth/logout. Always succeeds; a stale or missing session is fine.
func (h *AuthHandler) Logout(c *gin.Context) {
	access, _ := c.Cookie(helpers.AccessCookie)
	refresh, _ := c.Cookie(helpers.RefreshCookie)
	if sid := h.Svc.SessionIDFromToken(access, refresh); sid != "" {
		if err := h.Svc.Logout(c.Request.Context(), sid); err != nil {
			h.Logger.WithError(err).Warn("session revoke failed")
		}
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "Logged out", nil)
}

// Refresh POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(helpers.RefreshCookie)
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	tokens, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		fail(c, h.Logger, err, failMessages{Fallback: "Failed to refresh session"})
		return
	}
	if tokens == nil {
		response.Error[any](c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	h.Cookies.SetPair(c, tokens.AccessToken, tokens.AccessTokenExpiry, tokens.RefreshToken, tokens.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "Session refreshed",
		map[string]any{"access_expires_at": tokens.AccessTokenExpiry, "refresh_expires_at": tokens.RefreshTokenExpiry})
}

// Me GET /api/auth/me; runs behind middleware.Session(required).
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": sess.User}, "ok", nil)
}
