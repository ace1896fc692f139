package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
)

// Logging writes one structured access-log line per request.
func Logging(logger logging.Logger) gin.HandlerFunc {
	logger = logger.Named("http")
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.FullPath()),
			logging.Int("status", c.Writer.Status()),
			logging.Duration("elapsed", time.Since(started)),
			logging.String("request_id", GetRequestID(c)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logging.String("errors", c.Errors.String()))
			logger.Warn("request failed", fields...)
			return
		}
		logger.Info("request handled", fields...)
	}
}
