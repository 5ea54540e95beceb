package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCookie = "versionlog_session"

func startSession(t *testing.T, m *SessionManager, userID int64, username string) string {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return m.Start(c, userID, username)
}

func requestWithCookie(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	}
	return req
}

func TestSessionLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewSessionManager(testCookie, false)

	token := startSession(t, m, 7, "alice")
	require.NotEmpty(t, token)
	require.Equal(t, 1, m.Len())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = requestWithCookie(token)

	session, ok := m.Current(c)
	require.True(t, ok)
	assert.Equal(t, int64(7), session.UserID)
	assert.Equal(t, "alice", session.Username)

	m.Clear(c)
	assert.Equal(t, 0, m.Len())

	_, ok = m.Current(c)
	assert.False(t, ok, "cleared session must not resolve")
}

func TestClearIsIdempotent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewSessionManager(testCookie, false)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = requestWithCookie("")

	// Clearing an anonymous client must not panic or grow state.
	m.Clear(c)
	m.Clear(c)
	assert.Equal(t, 0, m.Len())
}

func TestCurrentRejectsUnknownToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewSessionManager(testCookie, false)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = requestWithCookie("not-a-real-token")

	_, ok := m.Current(c)
	assert.False(t, ok)
}

func TestTokensAreUnique(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewSessionManager(testCookie, false)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token := startSession(t, m, int64(i), "user")
		require.False(t, seen[token], "token reuse")
		seen[token] = true
	}
}
