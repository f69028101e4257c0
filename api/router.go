package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Furafrafrfr/readability/api/handler"
	"github.com/Furafrafrfr/readability/api/middleware"
	"github.com/Furafrafrfr/readability/cache"
	"github.com/Furafrafrfr/readability/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger → CORS → Metrics
//	API:     Auth (if enabled) → RateLimit
//
// Health and metrics endpoints are intentionally outside auth so
// monitoring probes always work.
func NewRouter(cfg *config.Config, cc *cache.Cache, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.CORS(nil))
	r.Use(middleware.Metrics())

	v1 := r.Group("/v1")

	v1.GET("/health", handler.Health(cc, cfg, startTime))
	v1.GET("/metrics", middleware.Handler())

	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.POST("/extract", handler.Extract(cfg, cc))
	protected.POST("/batch", handler.Batch(cfg))

	return r
}
