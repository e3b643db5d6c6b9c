package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"

	"reservas/internal/domain"
	"reservas/internal/domain/models"
	"reservas/internal/repositories"
	"reservas/internal/utils"
)

// DefaultReservationLimit caps open reservations per user unless overridden
// through configuration.
const DefaultReservationLimit = 7

// ReservationService gates every reservation write behind the booking rules:
// a per-user cap, one reservation per date, and owner-or-admin mutation.
type ReservationService struct {
	ReservationRepo repositories.ReservationRepository
	TripRepo        repositories.TripRepository
	Limit           int
	RequestID       string
}

type ReservationInput struct {
	HolderName  string `json:"holder_name"`
	HolderEmail string `json:"holder_email"`
	Date        string `json:"date"`
	Message     string `json:"message"`
	TripID      int64  `json:"trip_id"`
}

func (s ReservationService) limit() int {
	if s.Limit > 0 {
		return s.Limit
	}
	return DefaultReservationLimit
}

func (s ReservationService) Create(identity domain.Identity, in ReservationInput) (models.Reservation, error) {
	var out models.Reservation

	if identity.IsAnonymous() {
		return out, domain.UnauthorizedError{}
	}
	if err := s.validateInput(&in); err != nil {
		return out, err
	}

	count, err := s.ReservationRepo.CountByUser(identity.ID)
	if err != nil {
		return out, err
	}
	if count >= s.limit() {
		utils.LogEvent(s.RequestID, "reserva", "limite", "user_id="+strconv.FormatInt(identity.ID, 10))
		return out, domain.ErrCapacityExceeded
	}

	if err := s.checkDuplicates(identity.ID, in.TripID, in.Date, 0); err != nil {
		return out, err
	}

	rv := models.Reservation{
		HolderName:  in.HolderName,
		HolderEmail: in.HolderEmail,
		Date:        in.Date,
		Message:     in.Message,
		TripID:      in.TripID,
		UserID:      identity.ID,
	}

	id, err := s.ReservationRepo.Create(rv)
	if err != nil {
		// The unique key on (user_id, trip_date) is the real guard; a
		// concurrent insert that won the race lands here.
		if isDuplicateKey(err) {
			return out, domain.ErrDuplicateDate
		}
		return out, err
	}

	rv.ID = id
	utils.LogEvent(s.RequestID, "reserva", "crear", "id="+strconv.FormatInt(id, 10))
	return rv, nil
}

func (s ReservationService) Update(identity domain.Identity, id int64, in ReservationInput) (models.Reservation, error) {
	var out models.Reservation

	existing, err := s.ReservationRepo.GetByID(id)
	if err != nil {
		return out, err
	}
	if !identity.CanManage(existing.UserID) {
		return out, domain.ForbiddenError{Msg: "solo el titular o un administrador puede modificar la reserva"}
	}
	if err := s.validateInput(&in); err != nil {
		return out, err
	}

	// Duplicate checks exclude the row being edited; the cap is not
	// re-applied because an edit never changes the count.
	if err := s.checkDuplicates(existing.UserID, in.TripID, in.Date, id); err != nil {
		return out, err
	}

	existing.HolderName = in.HolderName
	existing.HolderEmail = in.HolderEmail
	existing.Date = in.Date
	existing.Message = in.Message
	existing.TripID = in.TripID

	if err := s.ReservationRepo.Update(existing); err != nil {
		if isDuplicateKey(err) {
			return out, domain.ErrDuplicateDate
		}
		return out, err
	}

	utils.LogEvent(s.RequestID, "reserva", "actualizar", "id="+strconv.FormatInt(id, 10))
	return existing, nil
}

func (s ReservationService) Delete(identity domain.Identity, id int64) error {
	existing, err := s.ReservationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if !identity.CanManage(existing.UserID) {
		return domain.ForbiddenError{Msg: "solo el titular o un administrador puede eliminar la reserva"}
	}
	if err := s.ReservationRepo.Delete(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "reserva", "eliminar", "id="+strconv.FormatInt(id, 10))
	return nil
}

func (s ReservationService) Get(identity domain.Identity, id int64) (models.Reservation, error) {
	rv, err := s.ReservationRepo.GetByID(id)
	if err != nil {
		return rv, err
	}
	if !identity.CanManage(rv.UserID) {
		return models.Reservation{}, domain.ForbiddenError{}
	}
	return rv, nil
}

// List returns every reservation for admins and only the caller's otherwise.
func (s ReservationService) List(identity domain.Identity) ([]models.Reservation, error) {
	if identity.IsAnonymous() {
		return nil, domain.UnauthorizedError{}
	}
	if identity.IsAdmin() {
		return s.ReservationRepo.ListAll()
	}
	return s.ReservationRepo.ListByUser(identity.ID)
}

func (s ReservationService) validateInput(in *ReservationInput) error {
	in.HolderName = strings.TrimSpace(in.HolderName)
	in.HolderEmail = strings.TrimSpace(in.HolderEmail)
	in.Date = strings.TrimSpace(in.Date)
	in.Message = strings.TrimSpace(in.Message)

	if in.HolderName == "" {
		return domain.ValidationError{Field: "holder_name", Msg: "el nombre es obligatorio"}
	}
	if in.HolderEmail == "" || !strings.Contains(in.HolderEmail, "@") {
		return domain.ValidationError{Field: "holder_email", Msg: "el correo no es válido"}
	}
	if !utils.ValidDate(in.Date) {
		return domain.ValidationError{Field: "date", Msg: "la fecha debe tener formato AAAA-MM-DD"}
	}
	if in.TripID <= 0 {
		return domain.ValidationError{Field: "trip_id", Msg: "el viaje es obligatorio"}
	}

	ok, err := s.TripRepo.Exists(in.TripID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFoundError{Resource: "viaje"}
	}
	return nil
}

// checkDuplicates runs the trip+date lookup before the date-only one so the
// caller gets the most specific message available.
func (s ReservationService) checkDuplicates(userID, tripID int64, date string, excludeID int64) error {
	if dup, err := s.ReservationRepo.ExistsOnTripDate(userID, tripID, date, excludeID); err != nil {
		return err
	} else if dup {
		return domain.ErrDuplicateTripDate
	}
	if dup, err := s.ReservationRepo.ExistsOnDate(userID, date, excludeID); err != nil {
		return err
	} else if dup {
		return domain.ErrDuplicateDate
	}
	return nil
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
