package auth

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Session is the authenticated identity bound to an opaque token.
type Session struct {
	UserID    int64
	Username  string
	CreatedAt time.Time
}

// SessionManager maps opaque cookie tokens to authenticated sessions.
// Sessions live in process memory and have no expiry beyond explicit logout.
type SessionManager struct {
	mu         sync.RWMutex
	sessions   map[string]Session
	cookieName string
	secure     bool
}

func NewSessionManager(cookieName string, secureCookies bool) *SessionManager {
	return &SessionManager{
		sessions:   make(map[string]Session),
		cookieName: cookieName,
		secure:     secureCookies,
	}
}

// Start issues a fresh session token for the user and sets it as an HttpOnly
// session cookie on the response. It returns the token.
func (m *SessionManager) Start(c *gin.Context, userID int64, username string) string {
	token := uuid.NewString()

	m.mu.Lock()
	m.sessions[token] = Session{UserID: userID, Username: username, CreatedAt: time.Now()}
	m.mu.Unlock()

	// maxAge 0 keeps the cookie for the browser session only.
	c.SetCookie(m.cookieName, token, 0, "/", "", m.secure, true)
	return token
}

// Clear revokes the request's session, if any, and expires the cookie.
// Clearing an anonymous request is a no-op, so logout is idempotent.
func (m *SessionManager) Clear(c *gin.Context) {
	if token, err := c.Cookie(m.cookieName); err == nil && token != "" {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
	}
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
}

// Current resolves the request's session cookie to its session, reporting
// whether the client is authenticated.
func (m *SessionManager) Current(c *gin.Context) (Session, bool) {
	token, err := c.Cookie(m.cookieName)
	if err != nil || token == "" {
		return Session{}, false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[token]
	return session, ok
}

// Len returns the number of live sessions (for testing/metrics).
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
