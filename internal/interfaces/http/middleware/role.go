package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group to callers whose JWT role is in the
// allowed set. It assumes JWT middleware has already run.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := GetJWTRole(c)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient permissions for this resource",
				},
			})
			return
		}

		c.Next()
	}
}

// RequireAdmin gates a route group to admin callers
func RequireAdmin() gin.HandlerFunc {
	return RequireRole("admin")
}

// RequireCollector gates a route group to team members and admins
func RequireCollector() gin.HandlerFunc {
	return RequireRole("team", "admin")
}
