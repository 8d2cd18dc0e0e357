package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fliamecomm/storefront/internal/infrastructure/cache"
	"github.com/fliamecomm/storefront/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitConfig configures a fixed-window rate limit
type RateLimitConfig struct {
	Name    string // key namespace, so separate limits do not share counters
	Limit   int
	Window  time.Duration
	KeyFunc func(*gin.Context) string // defaults to client IP
}

// RateLimit counts requests per key in a shared window counter and answers 429 past the limit.
// Counter failures let the request through.
func RateLimit(counter cache.WindowCounter, cfg RateLimitConfig) gin.HandlerFunc {
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	limit := strconv.Itoa(cfg.Limit)

	return func(c *gin.Context) {
		key := "ratelimit:" + cfg.Name + ":" + keyFunc(c)
		hits, err := counter.Hit(c.Request.Context(), key, cfg.Window)
		if err != nil {
			logger.GetGinLogger(c).Warn("Rate limit counter unavailable", zap.Error(err))
			c.Next()
			return
		}

		remaining := int64(cfg.Limit) - hits
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if hits > int64(cfg.Limit) {
			c.Header("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}

// PostOnly applies mw to POST requests and passes everything else through
func PostOnly(mw gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		mw(c)
	}
}
