// Package middleware provides the gin middleware chain of todoapi:
// bearer-token authentication, role gating and request logging.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todoapi/web/entity"
	"todoapi/web/service"
)

// Context keys set by AuthRequired and trusted by everything downstream.
const (
	CtxUserId   = "userId"
	CtxRole     = "role"
	CtxUsername = "username"
)

// AuthRequired validates the Authorization bearer token and places the
// authenticated user's id, role and username on the request context.
func AuthRequired(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortWithStatus(c, http.StatusUnauthorized, "authentication required")
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			abortWithStatus(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		c.Set(CtxUserId, claims.UserId)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxUsername, claims.Subject)
		c.Next()
	}
}

func abortWithStatus(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, entity.Msg{
		Success: false,
		Message: msg,
	})
}
