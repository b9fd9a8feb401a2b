package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"

	// RefreshCookiePath limits the refresh token to the endpoints that consume it.
	RefreshCookiePath = "/api/auth"
)

// SessionCookies writes the HttpOnly token pair issued at login and refresh.
type SessionCookies struct {
	Domain string
	Secure bool
}

func NewSessionCookies(domain string, secure bool) *SessionCookies {
	return &SessionCookies{Domain: domain, Secure: secure}
}

func (s *SessionCookies) SetPair(c *gin.Context, access string, accessExp time.Time, refresh string, refreshExp time.Time) {
	s.write(c, AccessCookie, access, "/", secondsUntil(accessExp))
	s.write(c, RefreshCookie, refresh, RefreshCookiePath, secondsUntil(refreshExp))
}

// Clear expires both cookies.
func (s *SessionCookies) Clear(c *gin.Context) {
	s.write(c, AccessCookie, "", "/", -1)
	s.write(c, RefreshCookie, "", RefreshCookiePath, -1)
}

func (s *SessionCookies) write(c *gin.Context, name, value, path string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Domain:   s.Domain,
		MaxAge:   maxAge,
		Secure:   s.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func secondsUntil(exp time.Time) int {
	if d := time.Until(exp); d > 0 {
		return int(d.Seconds())
	}
	return 0
}
