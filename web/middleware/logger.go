package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"todoapi/logger"
)

// RequestLogger logs every request after completion: method, path,
// status and latency.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debugf("%s %s -> %d (%v)",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}
