// Package http wires the gin route tree and the HTTP server around the
// lookup service.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/prometheus"
	"github.com/unicpatent/unic-ip/internal/interfaces/http/handlers"
	"github.com/unicpatent/unic-ip/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies needed to
// build the complete route tree.
type RouterConfig struct {
	SearchHandler *handlers.SearchHandler
	ExportHandler *handlers.ExportHandler
	MemberHandler *handlers.MemberHandler
	NotifyHandler *handlers.NotifyHandler
	HealthHandler *handlers.HealthHandler

	Logger  logging.Logger
	Metrics *prometheus.AppMetrics

	// Collector exposes /metrics when set.
	Collector prometheus.MetricsCollector

	// Mode is the gin mode: "debug", "release", or "test".
	Mode string
}

// NewRouter builds the route tree with the global middleware chain applied.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS())
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Metrics(cfg.Metrics))

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Healthz)
	}
	if cfg.Collector != nil {
		r.GET("/metrics", gin.WrapH(cfg.Collector.Handler()))
	}

	api := r.Group("/api")
	{
		if cfg.SearchHandler != nil {
			api.POST("/search-registered", cfg.SearchHandler.SearchRegistered)
			api.POST("/search-application", cfg.SearchHandler.SearchApplication)
			api.POST("/get-patent-details", cfg.SearchHandler.GetPatentDetails)
			api.POST("/get-payment-history", cfg.SearchHandler.GetPaymentHistory)
		}
		if cfg.ExportHandler != nil {
			api.POST("/export-excel", cfg.ExportHandler.ExportExcel)
		}
		if cfg.MemberHandler != nil {
			api.POST("/verify-member", cfg.MemberHandler.VerifyMember)
		}
		if cfg.NotifyHandler != nil {
			api.POST("/send-renewal-request", cfg.NotifyHandler.SendRenewalRequest)
		}
	}

	return r
}
