// Package controller provides the HTTP request handlers of todoapi: it
// binds wire payloads, calls into the services and renders the response
// envelope.
package controller

import (
	"github.com/gin-gonic/gin"

	"todoapi/web/middleware"
	"todoapi/web/service"
)

// BaseController provides the shared request-context helpers.
type BaseController struct{}

// actor reads the authenticated identity placed on the context by the
// auth middleware. Routes behind AuthRequired can trust it.
func (a *BaseController) actor(c *gin.Context) service.Actor {
	return service.Actor{
		Id:   c.GetInt(middleware.CtxUserId),
		Role: c.GetInt(middleware.CtxRole),
		Name: c.GetString(middleware.CtxUsername),
	}
}
