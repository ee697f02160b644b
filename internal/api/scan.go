package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nutritrack/backend/internal/service"
	"github.com/nutritrack/backend/internal/types"
)

type ScanHandler struct {
	scans *service.ScanService
	meals *service.MealService
}

func NewScanHandler(scans *service.ScanService, meals *service.MealService) *ScanHandler {
	return &ScanHandler{scans: scans, meals: meals}
}

// RegisterRoutes mounts the scan routes. scanGuard middleware (rate limiting)
// applies to the endpoints that hit external lookup providers.
func (h *ScanHandler) RegisterRoutes(router *gin.RouterGroup, scanGuard ...gin.HandlerFunc) {
	scan := router.Group("/scan")
	{
		scan.POST("/barcode", append(scanGuard, h.ScanBarcode)...)
		scan.POST("/image", append(scanGuard, h.ScanImage)...)
		scan.POST("/log", h.AddToMealLog)
		scan.GET("/history", h.History)
	}
}

func (h *ScanHandler) ScanBarcode(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req types.ScanBarcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.scans.ScanBarcode(c.Request.Context(), uid, req.Barcode)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Product lookup failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ScanHandler) ScanImage(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req types.ScanImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.scans.ScanImage(c.Request.Context(), uid, req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Could not recognize a product in the image"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ScanHandler) AddToMealLog(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req types.AddToMealLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.meals.AddToMealLog(c.Request.Context(), uid, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *ScanHandler) History(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	rows, err := h.scans.History(c.Request.Context(), uid, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch scan history"})
		return
	}

	entries := make([]ScanHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, toScanHistoryEntry(row))
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}
