package util

import (
	"edu_assessment_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Fields  interface{} `json:"fields,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// RenderError maps an error kind onto the HTTP surface. Validation errors
// carry field-keyed messages; store errors are the only ones logged as
// incidents, permission denials are logged at info.
func RenderError(c *gin.Context, err error) {
	if err == nil {
		InternalServerError(c)
		return
	}
	appErr := AsAppError(err)
	switch appErr.Kind {
	case KindValidation:
		c.JSON(http.StatusBadRequest, Response{
			Code:    http.StatusBadRequest,
			Message: appErr.Message,
			Fields:  appErr.Fields,
		})
	case KindPermission:
		logger.Log.Info("permission denied", zap.String("path", c.FullPath()), zap.String("reason", appErr.Message))
		Error(c, http.StatusForbidden, appErr.Message)
	case KindNotFound:
		NotFound(c)
	case KindConflict:
		Error(c, http.StatusConflict, appErr.Message)
	default:
		logger.Log.Error("store error", zap.String("path", c.FullPath()), zap.Error(err))
		InternalServerError(c)
	}
}
