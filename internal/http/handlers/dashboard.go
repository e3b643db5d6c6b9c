package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reservas/internal/repositories"
)

// GET /api/dashboard (admin) — catalog totals and the latest reservations.
func Dashboard(c *gin.Context) {
	totals, err := repositories.StatsRepository{}.Totals()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "no se pudieron cargar las estadísticas", err)
		return
	}

	recent, err := repositories.ReservationRepository{}.ListRecent(5)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "no se pudieron cargar las reservas recientes", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totals":              totals,
		"recent_reservations": recent,
	})
}
