package middleware

import (
	"net/http"
	"strconv"

	localCache "dashboard/cache"
	"dashboard/config"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	requestsPerSecond = 5
	burst             = 15
	retryAfterSeconds = 5
)

// RateLimiter keeps one token bucket per client IP while the runtime config
// enables it.
func RateLimiter(cfg *config.ConfigManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !cfg.GetConfig().RateLimiter {
			ctx.Next()
			return
		}

		if !limiterFor(ctx.ClientIP()).Allow() {
			ctx.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": "Too many requests. Please wait before trying again.",
				"retry":   retryAfterSeconds,
			})
			return
		}

		ctx.Next()
	}
}

func limiterFor(ip string) *rate.Limiter {
	if val, found := localCache.RateLimiterCache.Get(ip); found {
		return val.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	localCache.RateLimiterCache.Set(ip, limiter, cache.DefaultExpiration)
	return limiter
}
