package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todoapi/web/entity"
	"todoapi/web/service"
)

type TodoController struct {
	BaseController

	todoService *service.TodoService
}

// NewTodoController registers the todo routes. The group is expected to
// already carry the auth middleware.
func NewTodoController(g *gin.RouterGroup, todoService *service.TodoService) *TodoController {
	t := &TodoController{todoService: todoService}

	g.GET("", t.list)
	g.POST("", t.create)
	g.GET("/:id", t.get)
	g.PUT("/:id", t.update)
	g.DELETE("/:id", t.delete)

	return t
}

type createTodoReq struct {
	Title        string `json:"title" binding:"required"`
	Descriptions string `json:"descriptions"`
}

func (t *TodoController) create(c *gin.Context) {
	var req createTodoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid request body")
		return
	}
	todo, err := t.todoService.Create(t.actor(c), req.Title, req.Descriptions)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, todo)
}

func (t *TodoController) list(c *gin.Context) {
	var query entity.TodoListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid query parameters")
		return
	}
	page, err := t.todoService.List(t.actor(c), query)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, page)
}

func (t *TodoController) get(c *gin.Context) {
	id, err := todoId(c)
	if err != nil {
		jsonErr(c, err)
		return
	}
	todo, err := t.todoService.Get(t.actor(c), id)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, todo)
}

type updateTodoReq struct {
	Title        *string `json:"title"`
	Descriptions *string `json:"descriptions"`
	Completed    *bool   `json:"completed"`
}

func (t *TodoController) update(c *gin.Context) {
	id, err := todoId(c)
	if err != nil {
		jsonErr(c, err)
		return
	}
	var req updateTodoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid request body")
		return
	}
	todo, err := t.todoService.Update(t.actor(c), id, service.UpdateTodoInput{
		Title:        req.Title,
		Descriptions: req.Descriptions,
		Completed:    req.Completed,
	})
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, todo)
}

func (t *TodoController) delete(c *gin.Context) {
	id, err := todoId(c)
	if err != nil {
		jsonErr(c, err)
		return
	}
	if err := t.todoService.Delete(t.actor(c), id); err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, nil)
}

// todoId parses the path id. A malformed id is reported the same way as a
// missing todo so the route does not leak which ids are well-formed.
func todoId(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, service.ErrTodoNotFound
	}
	return id, nil
}
