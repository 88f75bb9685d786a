package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapi/database/model"
	"todoapi/web/service"
)

type AuthController struct {
	BaseController

	authService *service.AuthService
}

func NewAuthController(g *gin.RouterGroup, authService *service.AuthService) *AuthController {
	a := &AuthController{authService: authService}

	g.POST("/register", a.register)
	g.POST("/login", a.login)
	g.POST("/logout", a.logout)

	return a
}

type registerReq struct {
	Username      string `json:"username" binding:"required"`
	Password      string `json:"password" binding:"required"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	FirstNameRuby string `json:"firstNameRuby"`
	LastNameRuby  string `json:"lastNameRuby"`
	Role          int    `json:"role"`
}

type authResp struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (a *AuthController) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid request body")
		return
	}
	token, user, err := a.authService.Register(service.RegisterInput{
		Username:      req.Username,
		Password:      req.Password,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		FirstNameRuby: req.FirstNameRuby,
		LastNameRuby:  req.LastNameRuby,
		Role:          req.Role,
	})
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, authResp{Token: token, User: user})
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid request body")
		return
	}
	token, user, err := a.authService.Login(req.Username, req.Password)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, authResp{Token: token, User: user})
}

// logout exists so clients have a uniform endpoint to drop their
// credential against. Tokens are stateless; the server keeps nothing.
func (a *AuthController) logout(c *gin.Context) {
	jsonMsgObj(c, "logged out", nil)
}
