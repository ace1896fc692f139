package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/unicpatent/unic-ip/internal/infrastructure/cache"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/prometheus"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	cache   cache.Cache
	metrics *prometheus.AppMetrics
}

func NewHealthHandler(c cache.Cache, metrics *prometheus.AppMetrics) *HealthHandler {
	return &HealthHandler{cache: c, metrics: metrics}
}

// Healthz handles GET /healthz.  The cache is the only dependency probed;
// the government APIs are not pinged on every health check.
func (h *HealthHandler) Healthz(c *gin.Context) {
	cacheStatus := "up"
	cacheUp := 1.0
	if err := h.cache.Ping(c.Request.Context()); err != nil {
		cacheStatus = "down"
		cacheUp = 0
	}
	if h.metrics != nil {
		h.metrics.HealthCheckStatus.WithLabelValues("cache").Set(cacheUp)
	}

	c.JSON(200, gin.H{
		"status": "ok",
		"components": gin.H{
			"cache": cacheStatus,
		},
	})
}
