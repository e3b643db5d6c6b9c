package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"reservas/internal/domain"
	"reservas/internal/domain/models"
	"reservas/internal/repositories"
	"reservas/internal/utils"
)

// VoucherService renders a downloadable comprobante PDF for a reservation.
type VoucherService struct {
	ReservationRepo repositories.ReservationRepository
	TripRepo        repositories.TripRepository
	RequestID       string
}

// Generate returns the PDF bytes and a suggested filename. Only the owner or
// an admin may download.
func (s VoucherService) Generate(identity domain.Identity, reservationID int64) ([]byte, string, error) {
	rv, err := s.ReservationRepo.GetByID(reservationID)
	if err != nil {
		return nil, "", err
	}
	if !identity.CanManage(rv.UserID) {
		return nil, "", domain.ForbiddenError{}
	}

	trip, err := s.TripRepo.GetByID(rv.TripID)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "comprobante", "generar", fmt.Sprintf("reserva_id=%d", reservationID))
	return buildVoucherPDF(rv, trip)
}

func buildVoucherPDF(rv models.Reservation, trip models.Trip) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Comprobante de reserva", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "COMPROBANTE DE RESERVA")
	pdf.Ln(12)

	price := "-"
	if trip.Price != nil {
		price = *trip.Price
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Reserva        : #%d", rv.ID),
		fmt.Sprintf("Titular        : %s", safe(rv.HolderName)),
		fmt.Sprintf("Correo         : %s", safe(rv.HolderEmail)),
		fmt.Sprintf("Viaje          : %s", safe(trip.Name)),
		fmt.Sprintf("Fecha          : %s", safe(rv.Date)),
		fmt.Sprintf("Precio         : %s", price),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	if strings.TrimSpace(rv.Message) != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, "Mensaje: "+rv.Message, "", "", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Presenta este comprobante al inicio del viaje.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RESERVA_%d.pdf", rv.ID)
	return buf.Bytes(), filename, nil
}

func safe(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
