package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/infra/cache"
)

// RateLimit allows limit requests per window for each client, keyed by user
// id when authenticated and by IP otherwise. Store failures let traffic through.
func RateLimit(store cache.Store, limit int, window time.Duration, prefix string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}

		client := "ip:" + c.ClientIP()
		if id, ok := UserID(c); ok {
			client = "uid:" + id.String()
		}

		count, ttl, err := store.IncrWindow(c.Request.Context(), "rate:"+prefix+":"+client, window)
		if err != nil {
			log.Warn("rate limit store unavailable", zap.Error(err))
			c.Next()
			return
		}

		remaining := limit - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(int(ttl.Seconds())))

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			httperr.TooManyRequests(c, "rate_limited", "Too many requests, please try again in "+ttl.Round(time.Second).String())
			return
		}
		c.Next()
	}
}
