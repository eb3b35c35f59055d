package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLog writes one structured line per request once the response is
// complete. Health probes are logged at debug level.
func AccessLog(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(RequestIDKey),
			"bytes", c.Writer.Size(),
		}

		if c.FullPath() == "/health/liveness" || c.FullPath() == "/health/readiness" {
			log.Debugw("Request handled", fields...)
			return
		}
		log.Infow("Request handled", fields...)
	}
}
