package repositories

import (
	"database/sql"

	intconfig "reservas/internal/config"
	intdb "reservas/internal/db"
	"reservas/internal/domain"
	"reservas/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r TripRepository) List() ([]models.Trip, error) {
	rows, err := r.db().Query(`
		SELECT id, name, description,
		       COALESCE(DATE_FORMAT(trip_date, '%Y-%m-%d'), ''),
		       price, COALESCE(image, '')
		FROM trips
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		var t models.Trip
		var price sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Date, &price, &t.Image); err != nil {
			return out, err
		}
		if price.Valid {
			t.Price = &price.String
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepository) GetByID(id int64) (models.Trip, error) {
	var t models.Trip
	var price sql.NullString
	err := r.db().QueryRow(`
		SELECT id, name, description,
		       COALESCE(DATE_FORMAT(trip_date, '%Y-%m-%d'), ''),
		       price, COALESCE(image, '')
		FROM trips
		WHERE id = ?`, id).
		Scan(&t.ID, &t.Name, &t.Description, &t.Date, &price, &t.Image)
	if err == sql.ErrNoRows {
		return t, domain.NotFoundError{Resource: "viaje"}
	}
	if err != nil {
		return t, err
	}
	if price.Valid {
		t.Price = &price.String
	}
	return t, nil
}

func (r TripRepository) Exists(id int64) (bool, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM trips WHERE id = ?`, id).Scan(&n)
	return n > 0, err
}

func (r TripRepository) Create(t models.Trip) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO trips (name, description, trip_date, price, image)
		VALUES (?, ?, ?, ?, ?)`,
		t.Name, t.Description,
		intdb.NullIfEmpty(t.Date), priceValue(t.Price), intdb.NullIfEmpty(t.Image))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TripRepository) Update(t models.Trip) error {
	res, err := r.db().Exec(`
		UPDATE trips
		SET name = ?, description = ?, trip_date = ?, price = ?, image = ?
		WHERE id = ?`,
		t.Name, t.Description,
		intdb.NullIfEmpty(t.Date), priceValue(t.Price), intdb.NullIfEmpty(t.Image),
		t.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// RowsAffected is 0 for a no-op update too, so double check.
		if ok, err2 := r.Exists(t.ID); err2 == nil && !ok {
			return domain.NotFoundError{Resource: "viaje"}
		}
	}
	return nil
}

// Delete removes the trip; reservations referencing it go with it via the FK.
func (r TripRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "viaje"}
	}
	return nil
}

func priceValue(p *string) any {
	if p == nil || *p == "" {
		return nil
	}
	return *p
}
