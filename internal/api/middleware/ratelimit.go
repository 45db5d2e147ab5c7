package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodikal/ny-backend/internal/cache"
)

// RateLimit throttles a route group by client IP within the named scope.
func RateLimit(limiter cache.RateLimiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.Request.Context(), scope, c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
