package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"reservas/internal/http/middleware"
	"reservas/internal/repositories"
	"reservas/internal/services"
)

func tripService(c *gin.Context) services.TripService {
	return services.TripService{
		TripRepo:  repositories.TripRepository{},
		UploadDir: env.UploadDir,
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/trips
func ListTrips(c *gin.Context) {
	trips, err := repositories.TripRepository{}.List()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "no se pudieron cargar los viajes", err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// GET /api/trips/:id
func GetTrip(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		return
	}
	trip, err := repositories.TripRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func tripFormInput(c *gin.Context) (services.TripInput, *services.ImageUpload) {
	in := services.TripInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Date:        c.PostForm("date"),
		Price:       c.PostForm("price"),
	}

	var img *services.ImageUpload
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		img = &services.ImageUpload{
			Filename: fh.Filename,
			Open: func() (io.ReadCloser, error) { return fh.Open() },
		}
	}
	return in, img
}

// POST /api/trips (admin, multipart form)
func CreateTrip(c *gin.Context) {
	in, img := tripFormInput(c)
	trip, err := tripService(c).Create(in, img)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// PUT /api/trips/:id (admin, multipart form)
func UpdateTrip(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		return
	}
	in, img := tripFormInput(c)
	trip, err := tripService(c).Update(id, in, img)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// DELETE /api/trips/:id (admin)
func DeleteTrip(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		return
	}
	if err := tripService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "viaje eliminado"})
}
