package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole admits only users whose role is at least as privileged as
// maxRole. Roles are ordered ascending by number: admin=1, manager=2,
// everything from 3 up is an ordinary user.
func RequireRole(maxRole int) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(CtxRole)
		if !exists {
			abortWithStatus(c, http.StatusUnauthorized, "authentication required")
			return
		}
		role, ok := roleVal.(int)
		if !ok || role > maxRole {
			abortWithStatus(c, http.StatusForbidden, "insufficient role")
			return
		}
		c.Next()
	}
}
