package auth

import (
	"net/url"

	"github.com/gin-gonic/gin"
)

const flashCookieName = "versionlog_flash"

// SetFlash stores a one-shot message for the next page render. It survives a
// redirect and is cleared as soon as it is read.
func SetFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookieName, url.QueryEscape(message), 60, "/", "", false, true)
}

// PopFlash returns the pending flash message, if any, and clears it.
func PopFlash(c *gin.Context) string {
	raw, err := c.Cookie(flashCookieName)
	if err != nil || raw == "" {
		return ""
	}
	c.SetCookie(flashCookieName, "", -1, "/", "", false, true)

	message, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return message
}
