package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/prometheus"
)

// Metrics tracks in-flight requests and records per-request counters and
// durations.  Paths are recorded as route templates, not raw URLs, to keep
// label cardinality bounded.
func Metrics(metrics *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		started := time.Now()

		metrics.HTTPActiveRequests.WithLabelValues(c.Request.Method, path).Inc()
		c.Next()
		metrics.HTTPActiveRequests.WithLabelValues(c.Request.Method, path).Dec()

		prometheus.RecordHTTPRequest(metrics, c.Request.Method, path, c.Writer.Status(), time.Since(started))
	}
}
