package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserIDHeader carries the caller's identity, set by the gateway in front of
// this API.
const UserIDHeader = "X-User-ID"

// Identity resolves the caller from the gateway header and stores the numeric
// user id on the request context under "user_id".
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid user identity"})
			c.Abort()
			return
		}
		c.Set("user_id", uint(id))
		c.Next()
	}
}

// UserID reads the identity placed on the context by Identity.
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
