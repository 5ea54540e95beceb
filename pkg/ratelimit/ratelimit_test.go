package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowWithinBurst(t *testing.T) {
	rl := New(Config{PerMinute: 5, Burst: 5})
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d should be allowed", i)
	}
	assert.False(t, rl.Allow("10.0.0.1"), "request past the burst should be denied")
}

func TestAllowIsolatesAddresses(t *testing.T) {
	rl := New(Config{PerMinute: 1, Burst: 1})
	defer rl.Stop()

	require.True(t, rl.Allow("10.0.0.1"))
	require.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"), "a different client must have its own bucket")
	assert.Equal(t, 2, rl.Len())
}

func TestMiddlewareRejectsWith429(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := New(Config{PerMinute: 2, Burst: 2})
	defer rl.Stop()

	router := gin.New()
	router.POST("/login", rl.Middleware(), func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	var codes []int
	for i := 0; i < 4; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{200, 200, 429, 429}, codes)
}

func TestMiddlewareAbortsBeforeHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := New(Config{PerMinute: 1, Burst: 1})
	defer rl.Stop()

	handlerCalls := 0
	router := gin.New()
	router.POST("/login", rl.Middleware(), func(c *gin.Context) {
		handlerCalls++
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		router.ServeHTTP(w, req)
	}

	assert.Equal(t, 1, handlerCalls, "rate-limited requests must not reach the handler")
}

func TestCleanupRemovesStaleEntries(t *testing.T) {
	rl := New(Config{
		PerMinute:       60,
		Burst:           10,
		CleanupInterval: 10 * time.Millisecond,
		MaxAge:          20 * time.Millisecond,
	})
	defer rl.Stop()

	rl.Allow("10.0.0.1")
	require.Equal(t, 1, rl.Len())

	assert.Eventually(t, func() bool {
		return rl.Len() == 0
	}, time.Second, 10*time.Millisecond, "stale entry should be evicted")
}

func TestDefaultsAreOrderedBySensitivity(t *testing.T) {
	register := DefaultRegisterConfig()
	login := DefaultLoginConfig()
	write := DefaultWriteConfig()
	read := DefaultReadConfig()

	assert.Less(t, register.PerMinute, write.PerMinute)
	assert.Less(t, login.PerMinute, write.PerMinute)
	assert.Less(t, write.PerMinute, read.PerMinute)
}

func TestFromRouteLimit(t *testing.T) {
	def := DefaultLoginConfig()

	cfg := FromRouteLimit(0, 0, def)
	assert.Equal(t, def, cfg)

	cfg = FromRouteLimit(10, 4, def)
	assert.Equal(t, 10, cfg.PerMinute)
	assert.Equal(t, 4, cfg.Burst)
	assert.Equal(t, def.CleanupInterval, cfg.CleanupInterval)
}
