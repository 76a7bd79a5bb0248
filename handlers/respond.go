package handlers

import (
	"net/http"
	"strconv"

	"github.com/ecohealth/sentinel/internal/apperr"
	"github.com/gin-gonic/gin"
)

// ok writes {success:true, data}.
func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// bind decodes the JSON body into v, reporting malformed input as a 400.
func bind(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		_ = c.Error(apperr.Wrap(http.StatusBadRequest, "Invalid request body", err))
		return false
	}
	return true
}

// intQuery parses an optional integer query parameter.
func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		_ = c.Error(apperr.BadRequest(name + " must be an integer"))
		return 0, false
	}
	return n, true
}
