package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reservas/internal/http/middleware"
	"reservas/internal/repositories"
	"reservas/internal/services"
)

func reservationService(c *gin.Context) services.ReservationService {
	return services.ReservationService{
		ReservationRepo: repositories.ReservationRepository{},
		TripRepo:        repositories.TripRepository{},
		Limit:           env.ReservationLimit,
		RequestID:       middleware.GetRequestID(c),
	}
}

// GET /api/reservations — admins see everything, users their own.
func ListReservations(c *gin.Context) {
	out, err := reservationService(c).List(middleware.CurrentIdentity(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/reservations
func CreateReservation(c *gin.Context) {
	var in services.ReservationInput
	if !BindJSONOrError(c, &in) {
		return
	}

	rv, err := reservationService(c).Create(middleware.CurrentIdentity(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}

// GET /api/reservations/:id
func GetReservation(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		return
	}
	rv, err := reservationService(c).Get(middleware.CurrentIdentity(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rv)
}

// PUT /api/reservations/:id
func UpdateReservation(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		return
	}

	var in services.ReservationInput
	if !BindJSONOrError(c, &in) {
		return
	}

	rv, err := reservationService(c).Update(middleware.CurrentIdentity(c), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rv)
}

// DELETE /api/reservations/:id
func DeleteReservation(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		return
	}
	if err := reservationService(c).Delete(middleware.CurrentIdentity(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reserva eliminada"})
}

// GET /api/reservations/:id/voucher — PDF comprobante.
func GetReservationVoucher(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		return
	}

	svc := services.VoucherService{
		ReservationRepo: repositories.ReservationRepository{},
		TripRepo:        repositories.TripRepository{},
		RequestID:       middleware.GetRequestID(c),
	}

	pdf, filename, err := svc.Generate(middleware.CurrentIdentity(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
