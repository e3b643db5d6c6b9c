package repositories

import (
	"database/sql"

	intconfig "reservas/internal/config"
	intdb "reservas/internal/db"
	"reservas/internal/domain"
	"reservas/internal/domain/models"
)

type ReservationRepository struct {
	DB *sql.DB
}

func (r ReservationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const reservationColumns = `
	r.id, r.holder_name, r.holder_email,
	DATE_FORMAT(r.trip_date, '%Y-%m-%d'),
	COALESCE(r.message, ''), r.trip_id, r.user_id,
	COALESCE(t.name, ''),
	DATE_FORMAT(r.created_at, '%Y-%m-%d %H:%i:%s')`

func scanReservation(row interface{ Scan(...any) error }) (models.Reservation, error) {
	var rv models.Reservation
	err := row.Scan(
		&rv.ID, &rv.HolderName, &rv.HolderEmail,
		&rv.Date, &rv.Message, &rv.TripID, &rv.UserID,
		&rv.TripName, &rv.CreatedAt,
	)
	return rv, err
}

func (r ReservationRepository) GetByID(id int64) (models.Reservation, error) {
	row := r.db().QueryRow(`
		SELECT `+reservationColumns+`
		FROM reservations r
		LEFT JOIN trips t ON t.id = r.trip_id
		WHERE r.id = ?`, id)
	rv, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return rv, domain.NotFoundError{Resource: "reserva"}
	}
	return rv, err
}

func (r ReservationRepository) listQuery(where string, args ...any) ([]models.Reservation, error) {
	rows, err := r.db().Query(`
		SELECT `+reservationColumns+`
		FROM reservations r
		LEFT JOIN trips t ON t.id = r.trip_id
		`+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Reservation{}
	for rows.Next() {
		rv, err := scanReservation(rows)
		if err != nil {
			return out, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r ReservationRepository) ListAll() ([]models.Reservation, error) {
	return r.listQuery(`ORDER BY r.id ASC`)
}

func (r ReservationRepository) ListByUser(userID int64) ([]models.Reservation, error) {
	return r.listQuery(`WHERE r.user_id = ? ORDER BY r.id ASC`, userID)
}

// ListRecent returns the newest reservations for the dashboard.
func (r ReservationRepository) ListRecent(limit int) ([]models.Reservation, error) {
	return r.listQuery(`ORDER BY r.id DESC LIMIT ?`, limit)
}

func (r ReservationRepository) CountByUser(userID int64) (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM reservations WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}

// ExistsOnDate reports a reservation by userID on date, skipping excludeID
// (0 to exclude nothing) so edits never collide with themselves.
func (r ReservationRepository) ExistsOnDate(userID int64, date string, excludeID int64) (bool, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM reservations
		WHERE user_id = ? AND trip_date = ? AND id != ?`,
		userID, date, excludeID).Scan(&n)
	return n > 0, err
}

func (r ReservationRepository) ExistsOnTripDate(userID, tripID int64, date string, excludeID int64) (bool, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM reservations
		WHERE user_id = ? AND trip_id = ? AND trip_date = ? AND id != ?`,
		userID, tripID, date, excludeID).Scan(&n)
	return n > 0, err
}

func (r ReservationRepository) Create(rv models.Reservation) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO reservations (holder_name, holder_email, trip_date, message, trip_id, user_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rv.HolderName, rv.HolderEmail, rv.Date, intdb.NullIfEmpty(rv.Message), rv.TripID, rv.UserID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ReservationRepository) Update(rv models.Reservation) error {
	_, err := r.db().Exec(`
		UPDATE reservations
		SET holder_name = ?, holder_email = ?, trip_date = ?, message = ?, trip_id = ?
		WHERE id = ?`,
		rv.HolderName, rv.HolderEmail, rv.Date, intdb.NullIfEmpty(rv.Message), rv.TripID, rv.ID)
	return err
}

func (r ReservationRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "reserva"}
	}
	return nil
}
