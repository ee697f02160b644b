package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutritrack/backend/internal/middleware"
)

// userID pulls the caller identity resolved by the identity middleware. The
// middleware guards every registered route, so a miss is a wiring bug.
func userID(c *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	}
	return id, ok
}
