package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"hostpanel/pkg/utils"
)

// RateLimitMiddleware applies a per-caller token bucket, keyed by the
// authenticated account when present and the client IP otherwise.
func RateLimitMiddleware(r rate.Limit, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := limiters[key]; ok {
			return l
		}
		l := rate.NewLimiter(r, burst)
		limiters[key] = l
		return l
	}

	return func(c *gin.Context) {
		key := c.GetString("account_id")
		if key == "" {
			key = c.ClientIP()
		}

		if !limiterFor(key).Allow() {
			utils.RespondError(c, http.StatusTooManyRequests, "Too many pairing attempts, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
