package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutritrack/backend/internal/service"
)

type StatisticsHandler struct {
	stats *service.StatisticsService
}

func NewStatisticsHandler(stats *service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{stats: stats}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/statistics", h.GetStatistics)
}

// GetStatistics returns the aggregated statistics payload for one window.
// range is today, week, month or custom; custom takes start/end dates.
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	rng := c.DefaultQuery("range", "week")
	stats, err := h.stats.GetStatistics(c.Request.Context(), uid, rng, c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
