package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimitMiddleware throttles per client IP against an in-memory
// store. Mounted on the auth endpoints to slow credential stuffing.
func RateLimitMiddleware(rate limiter.Rate) gin.HandlerFunc {
	instance := limiter.New(memory.NewStore(), rate)

	return func(c *gin.Context) {
		limiterCtx, err := instance.Get(c.Request.Context(), c.ClientIP())
		if err != nil {
			c.Next()
			return
		}
		if limiterCtx.Reached {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, slow down."})
			return
		}
		c.Next()
	}
}
