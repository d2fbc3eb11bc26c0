package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boqbase/internal/pkg/response"
)

// RequireRoles ensures that the authenticated user has one of the given roles
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if !allowed[role.(string)] {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// StaffOnly middleware requires one of the review-staff roles
func StaffOnly() gin.HandlerFunc {
	return RequireRoles("admin", "software_team", "purchase_team")
}
