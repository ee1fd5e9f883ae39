package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mem "wanderplan/pkg/memcache"
	"wanderplan/pkg/utils"
)

// RateLimit throttles each client IP with its own token bucket.
func RateLimit(visitors mem.VisitorStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !visitors.Limiter(c.ClientIP()).Allow() {
			utils.RespondError(c, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
