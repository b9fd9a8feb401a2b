package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-hris/internal/domain/entity"
	"github.com/oksasatya/go-hris/pkg/helpers"
	"github.com/oksasatya/go-hris/pkg/response"
)

const (
	CtxSessionKey = "session"
	CtxUserIDKey  = "userID"
)

// Authenticator resolves an access token to a live session.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*entity.Session, error)
}

// accessToken reads the access_token cookie, falling back to an Authorization: Bearer header.
func accessToken(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.AccessCookie); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Session validates the access token against the session store and stores the session
// in the Gin context. When required is false, requests without a valid session pass through.
func Session(auth Authenticator, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			if required {
				response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
				return
			}
			c.Next()
			return
		}

		sess, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if required {
				response.Abort(c, http.StatusUnauthorized, "invalid or expired session", nil)
				return
			}
			c.Next()
			return
		}

		c.Set(CtxSessionKey, sess)
		c.Set(CtxUserIDKey, sess.User.ID)
		c.Next()
	}
}

// SessionFrom returns the session stored by Session, if any.
func SessionFrom(c *gin.Context) (*entity.Session, bool) {
	v, ok := c.Get(CtxSessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*entity.Session)
	return sess, ok && sess != nil
}
