package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/barberdev/barberdev-web/internal/logging"
)

// RequestLogger emits one structured line per request once the handler chain
// finishes.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString(ContextRequestID),
		)
	}
}
