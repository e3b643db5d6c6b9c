package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	intconfig "reservas/internal/config"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		RespondError(c, http.StatusInternalServerError, "la base de datos no responde", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "conexión a la base de datos OK"})
}
