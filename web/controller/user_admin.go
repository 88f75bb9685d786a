package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todoapi/database/model"
	"todoapi/web/middleware"
	"todoapi/web/service"
)

type UserAdminController struct {
	BaseController

	userService *service.UserAdminService
}

// NewUserAdminController registers the user-management routes. Managers
// may read; only admins may mutate. The /me routes are open to any
// authenticated user.
func NewUserAdminController(api *gin.RouterGroup, auth *service.AuthService, userService *service.UserAdminService) *UserAdminController {
	u := &UserAdminController{userService: userService}

	users := api.Group("/users")
	users.Use(middleware.AuthRequired(auth), middleware.RequireRole(model.RoleManager))
	{
		users.GET("", u.list)
		users.GET("/:id", u.get)

		admin := users.Group("")
		admin.Use(middleware.RequireRole(model.RoleAdmin))
		{
			admin.POST("", u.create)
			admin.PATCH("/:id", u.update)
			admin.PATCH("/:id/password", u.resetPassword)
			admin.POST("/:id/password/init", u.initializePassword)
			admin.DELETE("/:id", u.delete)
		}
	}

	me := api.Group("/me")
	me.Use(middleware.AuthRequired(auth))
	{
		me.GET("", u.me)
		me.PATCH("", u.updateProfile)
		me.PATCH("/password", u.changePassword)
	}

	return u
}

func (u *UserAdminController) list(c *gin.Context) {
	users, err := u.userService.List()
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, users)
}

func (u *UserAdminController) get(c *gin.Context) {
	id, err := userId(c)
	if err != nil {
		jsonErr(c, err)
		return
	}
	user, err := u.userService.Get(id)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, user)
}

type createUserReq struct {
	Username      string `json:"username" binding:"required"`
	Password      string `json:"password"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	FirstNameRuby string `json:"firstNameRuby"`
	LastNameRuby  string `json:"lastNameRuby"`
	Role          int    `json:"role"`
}

func (u *UserAdminController) create(c *gin.Context) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid request body")
		return
	}
	user, err := u.userService.Create(u.actor(c), service.CreateUserInput{
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
	jsonObj(c, user)
}

type updateUserReq struct {
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	FirstNameRuby *string `json:"firstNameRuby"`
	LastNameRuby  *string `json:"lastNameRuby"`
	Role          *int    `json:"role"`
}

func (u *UserAdminController) update(c *gin.Context) {
	id, err := userId(c)
	if err != nil {
		jsonErr(c, err)
		return
	}
	var req updateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid request body")
		return
	}
	user, err := u.userService.Update(u.actor(c), id, service.UpdateUserInput{
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
	jsonObj(c, user)
}

type passwordReq struct {
	Password string `json:"password" binding:"required"`
}

func (u *UserAdminController) resetPassword(c *gin.Context) {
	id, err := userId(c)
	if err != nil {
		jsonErr(c, err)
		return
	}
	var req passwordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid request body")
		return
	}
	if err := u.userService.ResetPassword(u.actor(c), id, req.Password); err != nil {
		jsonErr(c, err)
		return
	}
	jsonMsgObj(c, "password updated", nil)
}

func (u *UserAdminController) initializePassword(c *gin.Context) {
	id, err := userId(c)
	if err != nil {
		jsonErr(c, err)
		return
	}
	var req passwordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid request body")
		return
	}
	if err := u.userService.InitializePassword(u.actor(c), id, req.Password); err != nil {
		jsonErr(c, err)
		return
	}
	jsonMsgObj(c, "password initialized", nil)
}

func (u *UserAdminController) delete(c *gin.Context) {
	id, err := userId(c)
	if err != nil {
		jsonErr(c, err)
		return
	}
	if err := u.userService.Delete(u.actor(c), id); err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, nil)
}

func (u *UserAdminController) me(c *gin.Context) {
	user, err := u.userService.Get(u.actor(c).Id)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, user)
}

func (u *UserAdminController) updateProfile(c *gin.Context) {
	var req updateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid request body")
		return
	}
	user, err := u.userService.UpdateProfile(u.actor(c), service.UpdateUserInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		FirstNameRuby: req.FirstNameRuby,
		LastNameRuby:  req.LastNameRuby,
	})
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, user)
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (u *UserAdminController) changePassword(c *gin.Context) {
	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid request body")
		return
	}
	if err := u.userService.ChangePassword(u.actor(c), req.CurrentPassword, req.NewPassword); err != nil {
		jsonErr(c, err)
		return
	}
	jsonMsgObj(c, "password updated", nil)
}

func userId(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, service.ErrUserNotFound
	}
	return id, nil
}
