package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "vikendica/errors"
	"vikendica/services/logger"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// MessageResponse is returned by operations that have nothing but a confirmation to report
type MessageResponse struct {
	Message string `json:"message"`
}

var errorLogger logger.Logger = logger.NewDiscardLogger()

// SetLogger sets where Error reports internal failures
func SetLogger(l logger.Logger) {
	if l != nil {
		errorLogger = l
	}
}

// Success writes data as is with 200
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes {message, <key>: data} with 201
func Created(c *gin.Context, message, key string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"message": message,
		key:       data,
	})
}

// WithMessage writes {message, <key>: data} with 200
func WithMessage(c *gin.Context, message, key string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		key:       data,
	})
}

// Message writes {message} with 200
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// Error maps err to its status. Anything that is not an AppError is logged and reported as 500
// without detail.
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		errorLogger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		ServerError(c)
		return
	}
	if appErr.Code == apperrors.ErrCodeInternal {
		errorLogger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Err)
	}
	c.AbortWithStatusJSON(apperrors.HTTPStatus(appErr.Code), ErrorResponse{
		Message: appErr.Message,
		Code:    string(appErr.Code),
	})
}

// BadRequest reports invalid input
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Message: message,
		Code:    string(apperrors.ErrCodeInvalidInput),
	})
}

// Unauthorized reports a missing or invalid token
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Message: message,
		Code:    string(apperrors.ErrCodeUnauthorized),
	})
}

// Forbidden reports a caller without access
func Forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
		Message: message,
		Code:    string(apperrors.ErrCodeForbidden),
	})
}

// ServerError reports a generic internal failure
func ServerError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Message: "Internal server error",
		Code:    string(apperrors.ErrCodeInternal),
	})
}
