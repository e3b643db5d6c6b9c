package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	intconfig "reservas/internal/config"
	"reservas/internal/http/middleware"
)

var env intconfig.Env

// Init hands the loaded environment to the handler package. Called once from
// the router before any route is mounted.
func Init(e intconfig.Env) {
	env = e
}

// RespondError sends the standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "cuerpo vacío", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "payload no válido", err)
		return false
	}
	return true
}

// PathID parses the :id parameter; 0 means it already responded with 400.
func PathID(c *gin.Context) int64 {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id no válido", nil)
		return 0
	}
	return id
}
