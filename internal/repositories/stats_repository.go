package repositories

import (
	"database/sql"

	intconfig "reservas/internal/config"
)

// StatsRepository backs the admin dashboard counters.
type StatsRepository struct {
	DB *sql.DB
}

func (r StatsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

type Totals struct {
	Trips        int `json:"total_trips"`
	Reservations int `json:"total_reservations"`
	Users        int `json:"total_users"`
}

func (r StatsRepository) Totals() (Totals, error) {
	var t Totals
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM trips`).Scan(&t.Trips); err != nil {
		return t, err
	}
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM reservations`).Scan(&t.Reservations); err != nil {
		return t, err
	}
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM users`).Scan(&t.Users); err != nil {
		return t, err
	}
	return t, nil
}
