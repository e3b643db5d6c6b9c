package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reservas/internal/repositories"
)

// GET /api/users (admin)
func ListUsers(c *gin.Context) {
	users, err := repositories.UserRepository{}.List()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "no se pudieron cargar los usuarios", err)
		return
	}

	out := make([]AuthUser, 0, len(users))
	for _, u := range users {
		out = append(out, AuthUser{ID: u.ID, Username: u.Username, Role: u.Role})
	}
	c.JSON(http.StatusOK, out)
}
