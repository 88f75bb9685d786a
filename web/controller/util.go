package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapi/database/model"
	"todoapi/logger"
	"todoapi/web/entity"
	"todoapi/web/service"
)

// jsonObj sends a success envelope with data.
func jsonObj(c *gin.Context, obj any) {
	jsonMsgObj(c, "", obj)
}

// jsonMsgObj sends a success envelope with a message and data.
func jsonMsgObj(c *gin.Context, msg string, obj any) {
	c.JSON(http.StatusOK, entity.Msg{
		Success: true,
		Message: msg,
		Data:    obj,
	})
}

// jsonErr translates a service failure into its HTTP status and an
// envelope carrying the user-facing message. Unrecognized errors become a
// generic 500 with no internal detail leaked.
func jsonErr(c *gin.Context, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("request failed:", err)
		msg = "internal server error"
	}
	c.JSON(status, entity.Msg{
		Success: false,
		Message: msg,
	})
}

func statusOf(err error) int {
	var validationErr *model.ValidationError
	var stateErr *model.InvalidStateError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &stateErr):
		return http.StatusConflict
	case errors.Is(err, service.ErrDuplicateUsername):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrTodoNotFound), errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// pureJsonMsg sends an envelope with a custom status code.
func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Message: msg,
	})
}
