package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutritrack/backend/internal/service"
	"github.com/nutritrack/backend/internal/types"
)

type MenuHandler struct {
	menus *service.MenuService
}

func NewMenuHandler(menus *service.MenuService) *MenuHandler {
	return &MenuHandler{menus: menus}
}

// RegisterRoutes mounts the menu routes. generationGuard middleware (rate
// limiting) applies to the generation endpoints only.
func (h *MenuHandler) RegisterRoutes(router *gin.RouterGroup, generationGuard ...gin.HandlerFunc) {
	menus := router.Group("/recommended-menus")
	{
		menus.POST("/generate", append(generationGuard, h.Generate)...)
		menus.POST("/generate-custom", append(generationGuard, h.GenerateCustom)...)
		menus.GET("/:id", h.Get)
		menus.POST("/:id/start-today", h.StartToday)
	}
}

func (h *MenuHandler) Generate(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req types.GenerateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	menu, err := h.menus.Generate(c.Request.Context(), uid, req)
	if err != nil {
		h.generationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, menu)
}

func (h *MenuHandler) GenerateCustom(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req types.GenerateCustomMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	menu, err := h.menus.GenerateCustom(c.Request.Context(), uid, req)
	if err != nil {
		h.generationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, menu)
}

func (h *MenuHandler) Get(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	menuID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu id"})
		return
	}

	menu, err := h.menus.Get(c.Request.Context(), uid, menuID)
	if err != nil {
		if errors.Is(err, service.ErrMenuNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
		return
	}

	c.JSON(http.StatusOK, menu)
}

func (h *MenuHandler) StartToday(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	menuID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu id"})
		return
	}

	if err := h.menus.StartToday(c.Request.Context(), uid, menuID); err != nil {
		if errors.Is(err, service.ErrMenuNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start menu"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "started"})
}

// generationError distinguishes a failed generation run from a bad request.
func (h *MenuHandler) generationError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrPlanGeneration) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Menu generation failed, please try again"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
