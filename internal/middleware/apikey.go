package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "plantonize/internal/errors"
)

// APIKeyMiddleware guards operational endpoints such as /metrics with a
// static key sent in the X-API-Key header. An empty apiKey disables the check.
func APIKeyMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}
		key := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			abortWithError(c, apperrors.ErrInvalidAPIKey)
			return
		}
		c.Next()
	}
}
