// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/musichub/musichub-backend/internal/i18n"
	"github.com/musichub/musichub-backend/internal/utils"
)

const visitorTTL = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	visitors map[string]*visitor
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
	}
}

const maxVisitors = 10000

func (rl *RateLimiter) getVisitor(ip string, now time.Time) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	if v, exists := rl.visitors[ip]; exists {
		v.lastSeen = now
		return v.limiter
	}

	// idle visitors are pruned lazily instead of by a background sweeper
	if len(rl.visitors) >= maxVisitors {
		for key, v := range rl.visitors {
			if now.Sub(v.lastSeen) > visitorTTL {
				delete(rl.visitors, key)
			}
		}
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.visitors[ip] = &visitor{limiter, now}
	return limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := rl.getVisitor(ip, time.Now())

		if !limiter.Allow() {
			lang := utils.GetLangFromContext(c)
			utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED", i18n.T(lang, i18n.KeyRateLimited), nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// Limiters groups the per-route-class limiters used by the router.
type Limiters struct {
	General *RateLimiter
	Auth    *RateLimiter
	Upload  *RateLimiter
}

func NewLimiters(requestsPerSecond float64, burst int) *Limiters {
	return &Limiters{
		General: NewRateLimiter(rate.Limit(requestsPerSecond), burst),
		Auth:    NewRateLimiter(rate.Every(12*time.Second), 5), // 5 auth requests per minute
		Upload:  NewRateLimiter(rate.Every(6*time.Second), 10), // 10 uploads per minute
	}
}
