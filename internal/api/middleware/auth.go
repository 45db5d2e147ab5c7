package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodikal/ny-backend/internal/auth"
	"github.com/foodikal/ny-backend/internal/cache"
	"github.com/foodikal/ny-backend/pkg/logger"
)

// AdminAuth guards the admin surface with the configured PBKDF2 credential.
// Failed attempts count against the auth_fail quota; a caller at that quota
// is refused before the credential is even checked.
func AdminAuth(passwordHash string, limiter cache.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if passwordHash == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "admin access is not configured"})
			return
		}

		ip := c.ClientIP()
		ctx := c.Request.Context()
		if limiter.Blocked(ctx, cache.ScopeAuthFail, ip) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many failed attempts"})
			return
		}

		token, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok || !auth.VerifyPassword(token, passwordHash) {
			limiter.Allow(ctx, cache.ScopeAuthFail, ip)
			logger.Event("auth_failed").Str("ip", ip).Msg("admin auth rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		limiter.Reset(ctx, cache.ScopeAuthFail, ip)
		c.Next()
	}
}
