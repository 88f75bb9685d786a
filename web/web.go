// Package web provides the HTTP server of todoapi: routing, middleware
// and graceful lifecycle.
package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"todoapi/config"
	"todoapi/database"
	"todoapi/logger"
	"todoapi/repository"
	"todoapi/util/common"
	"todoapi/web/controller"
	"todoapi/web/middleware"
	"todoapi/web/service"
)

// Server is the todoapi web server: gin engine, controllers and services
// over one repository store.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	auth  *controller.AuthController
	todos *controller.TodoController
	users *controller.UserAdminController

	authService *service.AuthService
	todoService *service.TodoService
	userService *service.UserAdminService

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// initRouter initializes gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(middleware.RequestLogger())

	store := repository.NewStore(database.GetDB())
	s.authService = service.NewAuthService(store)
	s.todoService = service.NewTodoService(store)
	s.userService = service.NewUserAdminService(store)

	api := engine.Group("/api")
	{
		s.auth = controller.NewAuthController(api.Group("/auth"), s.authService)

		todos := api.Group("/todos")
		todos.Use(middleware.AuthRequired(s.authService))
		s.todos = controller.NewTodoController(todos, s.todoService)

		s.users = controller.NewUserAdminController(api, s.authService, s.userService)
	}

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	return nil
}

// Stop gracefully shuts down the web server.
func (s *Server) Stop() error {
	s.cancel()
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
