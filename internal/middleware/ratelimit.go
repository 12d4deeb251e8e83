package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"aiforge_backend/pkg/apperrors"
)

type rateEntry struct {
	count    int
	windowAt time.Time
}

// RateLimiter - in-memory лимитер с фиксированным окном.
// Счетчики живут в памяти процесса: при рестарте окна обнуляются,
// для защиты от перебора кодов этого достаточно.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*rateEntry
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		entries: make(map[string]*rateEntry),
	}
}

// Allow возвращает true, пока ключ не выбрал лимит в текущем окне
func (rl *RateLimiter) Allow(key string, limit int, window time.Duration) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	e, ok := rl.entries[key]
	if !ok || now.After(e.windowAt) {
		rl.entries[key] = &rateEntry{count: 1, windowAt: now.Add(window)}
		return true
	}
	e.count++
	return e.count <= limit
}

// Cleanup удаляет протухшие окна
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, e := range rl.entries {
		if now.After(e.windowAt) {
			delete(rl.entries, key)
		}
	}
}

// StartCleanup запускает периодическую чистку до закрытия stop
func (rl *RateLimiter) StartCleanup(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.Cleanup()
			case <-stop:
				return
			}
		}
	}()
}

// RateLimit - gin-мидлвара поверх лимитера. Ключ - префикс + IP клиента,
// чтобы разные операции не делили один бюджет.
func RateLimit(limiter *RateLimiter, keyPrefix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyPrefix + ":" + c.ClientIP()
		if !limiter.Allow(key, limit, window) {
			apperrors.HandleError(c, apperrors.ErrRateLimited("Too many requests, try again later"))
			c.Abort()
			return
		}
		c.Next()
	}
}
