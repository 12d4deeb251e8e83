package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("key", 5, time.Minute), "request %d should be allowed", i+1)
	}

	assert.False(t, rl.Allow("key", 5, time.Minute), "6th request should be denied")
}

func TestRateLimiterSeparateKeys(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 3; i++ {
		rl.Allow("verify:1.2.3.4", 3, time.Minute)
	}

	assert.False(t, rl.Allow("verify:1.2.3.4", 3, time.Minute))
	// Другой префикс и другой IP не делят бюджет
	assert.True(t, rl.Allow("resend:1.2.3.4", 3, time.Minute))
	assert.True(t, rl.Allow("verify:5.6.7.8", 3, time.Minute))
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 3; i++ {
		rl.Allow("key", 3, 10*time.Millisecond)
	}
	assert.False(t, rl.Allow("key", 3, 10*time.Millisecond), "should be blocked within window")

	time.Sleep(15 * time.Millisecond)

	assert.True(t, rl.Allow("key", 3, 10*time.Millisecond), "should be allowed after window expires")
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter()

	rl.Allow("expired", 5, 10*time.Millisecond)
	time.Sleep(15 * time.Millisecond)
	rl.Allow("active", 5, time.Minute)

	rl.Cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	_, expiredExists := rl.entries["expired"]
	_, activeExists := rl.entries["active"]
	assert.False(t, expiredExists, "expired entry should have been cleaned up")
	assert.True(t, activeExists, "active entry should still exist")
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter()
	router := gin.New()
	router.POST("/verify", RateLimit(rl, "verify", 2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/verify", nil)
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/verify", nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}
