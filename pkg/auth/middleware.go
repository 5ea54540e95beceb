package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/visualvc/versionlog/pkg/apiresponses"
)

// Gin context keys set by the session middleware.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
)

// RequireAPI gates JSON API routes: anonymous requests get a 401 envelope and
// never reach the handler.
func (m *SessionManager) RequireAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := m.Current(c)
		if !ok {
			apiresponses.RespondUnauthorized(c)
			c.Abort()
			return
		}
		c.Set(CtxUserID, session.UserID)
		c.Set(CtxUsername, session.Username)
		c.Next()
	}
}

// RequirePage gates server-rendered pages: anonymous requests are redirected
// to the login page.
func (m *SessionManager) RequirePage(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := m.Current(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.Set(CtxUserID, session.UserID)
		c.Set(CtxUsername, session.Username)
		c.Next()
	}
}
