package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RateLimiterConfig defines a fixed-window rule for a group of endpoints.
type RateLimiterConfig struct {
	RequestsPerWindow int
	WindowDuration    time.Duration
	KeyPrefix         string
}

// RateLimiter is a Redis-backed fixed-window limiter. The client is injected
// at construction; there is no package-level state.
type RateLimiter struct {
	rdb *redis.Client
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{
		rdb: rdb,
	}
}

// Middleware limits requests per client IP under the given config. Redis
// outages fail open: limiting is protection, not a dependency.
func (l *RateLimiter) Middleware(cfg RateLimiterConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", cfg.KeyPrefix, c.ClientIP())
		ctx := c.Request.Context()

		count, err := l.rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		if count == 1 {
			l.rdb.Expire(ctx, key, cfg.WindowDuration)
		}

		if count > int64(cfg.RequestsPerWindow) {
			ttl, _ := l.rdb.TTL(ctx, key).Result()
			c.Header("Retry-After", fmt.Sprintf("%d", int(ttl.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests, please try again later",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
