package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/authd/errors"
	"github.com/skillsenselab/authd/logger"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// RespondOK sends a 200 response wrapping data.
func RespondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// RespondCreated sends a 201 response wrapping data.
func RespondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// RespondWithError inspects err: for an *apperrors.AppError the status and
// message come from the error; anything else reduces to a generic 500. The
// cause never reaches the client either way.
func RespondWithError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			logger.Error("Request failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": appErr.Error(),
			})
		}
		c.JSON(appErr.HTTPStatus, Response{Success: false, Message: appErr.Message})
		return
	}

	logger.Error("Unhandled error", map[string]interface{}{
		"path":  c.Request.URL.Path,
		"error": err.Error(),
	})
	c.JSON(http.StatusInternalServerError, Response{Success: false, Message: "Internal server error"})
}

// AbortWithError writes the error envelope and stops the middleware chain.
func AbortWithError(c *gin.Context, err error) {
	RespondWithError(c, err)
	c.Abort()
}

// AbortUnauthorized stops the middleware chain with a 401 envelope.
func AbortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Success: false, Message: message})
}
