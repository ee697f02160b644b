package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutritrack/backend/internal/service"
	"github.com/nutritrack/backend/internal/types"
)

type UserHandler struct {
	targets *service.TargetsService
}

func NewUserHandler(targets *service.TargetsService) *UserHandler {
	return &UserHandler{targets: targets}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	user := router.Group("/user")
	{
		user.GET("/targets", h.GetTargets)
		user.PUT("/targets", h.UpdateTargets)
	}
}

func (h *UserHandler) GetTargets(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	row, err := h.targets.Get(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch targets"})
		return
	}

	c.JSON(http.StatusOK, toTargetsResponse(row))
}

func (h *UserHandler) UpdateTargets(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req types.UpdateTargetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row, err := h.targets.Update(c.Request.Context(), uid, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save targets"})
		return
	}

	c.JSON(http.StatusOK, toTargetsResponse(row))
}
