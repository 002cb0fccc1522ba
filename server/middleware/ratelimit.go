package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/taskstats/errors"
	"github.com/kbukum/taskstats/resilience"
)

// RateLimit returns a Gin middleware that rejects requests with 429 once
// limiter runs out of tokens. A nil limiter lets every request through.
func RateLimit(name string, limiter *resilience.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limiter.Allow() {
			c.Next()
			return
		}
		appErr := apperrors.RateLimited(name).WithCause(resilience.ErrRateLimited)
		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
	}
}
