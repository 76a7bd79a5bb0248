package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/ecohealth/sentinel/internal/apperr"
	"github.com/ecohealth/sentinel/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached with c.Error as
// {success:false, message}. Server errors are logged; stack traces are only
// exposed when debug is set.
func ErrorHandler(debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := apperr.StatusOf(err)
		body := gin.H{"success": false, "message": apperr.MessageOf(err)}
		if status >= http.StatusInternalServerError {
			logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		if debug {
			body["stack"] = fmt.Sprintf("%+v", err)
		}
		c.JSON(status, body)
	}
}

// Recovery converts panics into the error envelope.
func Recovery(debugMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, r)
				body := gin.H{"success": false, "message": "Internal Server Error"}
				if debugMode {
					body["stack"] = string(debug.Stack())
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, body)
			}
		}()
		c.Next()
	}
}

// NotFound is the NoRoute handler.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"message": fmt.Sprintf("Route %s %s not found", c.Request.Method, c.Request.URL.Path),
	})
}
