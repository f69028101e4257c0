package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Furafrafrfr/readability/cache"
	"github.com/Furafrafrfr/readability/config"
	"github.com/Furafrafrfr/readability/models"
)

// version is the build identifier reported by the health endpoint.
const version = "0.1.0"

// Health returns a handler for GET /v1/health.
func Health(cc *cache.Cache, cfg *config.Config, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := models.CacheStats{MaxEntries: cfg.Cache.MaxEntries}
		if cc != nil {
			stats.CurrentSize = cc.Len()
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:     "healthy",
			Uptime:     time.Since(startTime).Round(time.Second).String(),
			CacheStats: stats,
			Version:    version,
		})
	}
}
