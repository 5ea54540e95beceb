package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewSessionManager(testCookie, false)

	var seenUser any
	router := gin.New()
	router.GET("/api/versions", m.RequireAPI(), func(c *gin.Context) {
		seenUser, _ = c.Get(CtxUserID)
		c.Status(http.StatusOK)
	})

	// Anonymous: 401, handler untouched.
	w := httptest.NewRecorder()
	anon := requestWithCookie("")
	anon.URL.Path = "/api/versions"
	router.ServeHTTP(w, anon)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, seenUser)
	assert.Contains(t, w.Body.String(), "user not authenticated")

	// Authenticated: handler sees the user id.
	token := startSession(t, m, 9, "alice")
	w = httptest.NewRecorder()
	req := requestWithCookie(token)
	req.URL.Path = "/api/versions"
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(9), seenUser)
}

func TestRequirePageRedirectsToLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewSessionManager(testCookie, false)

	router := gin.New()
	router.GET("/", m.RequirePage("/login"), func(c *gin.Context) {
		c.String(http.StatusOK, "index")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, requestWithCookie(""))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestFlashIsOneShot(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/set", func(c *gin.Context) {
		SetFlash(c, "Registration successful. Please log in.")
		c.Status(http.StatusOK)
	})
	router.GET("/pop", func(c *gin.Context) {
		c.String(http.StatusOK, PopFlash(c))
	})

	// Set the flash and capture its cookie.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// First read returns the message and expires the cookie.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pop", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	router.ServeHTTP(w, req)
	assert.Equal(t, "Registration successful. Please log in.", w.Body.String())

	expired := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == flashCookieName && cookie.MaxAge < 0 {
			expired = true
		}
	}
	assert.True(t, expired, "flash cookie should be cleared after reading")

	// A request without the cookie reads nothing.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pop", nil))
	assert.Empty(t, w.Body.String())
}
