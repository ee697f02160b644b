package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nutritrack/backend/internal/api"
	"github.com/nutritrack/backend/internal/database"
	"github.com/nutritrack/backend/internal/middleware"
)

// Handlers bundles the API handlers the router mounts.
type Handlers struct {
	Statistics *api.StatisticsHandler
	Scan       *api.ScanHandler
	Menu       *api.MenuHandler
	User       *api.UserHandler
}

// Limiters holds the optional per-surface rate limiters. Nil limiters are
// skipped, which keeps local development usable without Redis.
type Limiters struct {
	Scan           *middleware.RateLimiter
	MenuGeneration *middleware.RateLimiter
}

// SetupRouter configures the application routes.
func SetupRouter(db *gorm.DB, h Handlers, limiters Limiters, allowedOrigins []string) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(allowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Everything under /api/v1 requires a resolved user identity.
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Identity())

	h.Statistics.RegisterRoutes(v1)
	h.User.RegisterRoutes(v1)

	var scanGuard []gin.HandlerFunc
	if limiters.Scan != nil {
		scanGuard = append(scanGuard, limiters.Scan.Middleware())
	}
	h.Scan.RegisterRoutes(v1, scanGuard...)

	var generationGuard []gin.HandlerFunc
	if limiters.MenuGeneration != nil {
		generationGuard = append(generationGuard, limiters.MenuGeneration.Middleware())
	}
	h.Menu.RegisterRoutes(v1, generationGuard...)

	return router
}
