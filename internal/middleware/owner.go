package middleware

import (
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing

	"github.com/gin-gonic/gin" // Gin web framework
)

// SelfOnlyMiddleware lets the request through only when the path parameter
// names the authenticated user. Must run after JWTAuthMiddleware.
func SelfOnlyMiddleware(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		target, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}
		if uint(target) != userID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You can only modify your own account"})
			return
		}
		c.Next()
	}
}
