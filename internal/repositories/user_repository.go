package repositories

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	intconfig "reservas/internal/config"
	"reservas/internal/domain"
	"reservas/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return u, domain.NotFoundError{Resource: "usuario"}
	}
	return u, err
}

func (r UserRepository) GetByUsername(username string) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return u, domain.NotFoundError{Resource: "usuario"}
	}
	return u, err
}

func (r UserRepository) ExistsByUsername(username string) (bool, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&n)
	return n > 0, err
}

func (r UserRepository) Create(username, passwordHash, role string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (username, password_hash, role)
		VALUES (?, ?, ?)`, username, passwordHash, role)
	if err != nil {
		// uq_users_username catches a registration that raced past the
		// exists check.
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return 0, domain.ConflictError{Resource: "usuario", Msg: "el usuario ya existe"}
		}
		return 0, err
	}
	return res.LastInsertId()
}

// UpdatePassword replaces the stored credential. Used only by the reset flow.
func (r UserRepository) UpdatePassword(id int64, passwordHash string) error {
	res, err := r.db().Exec(`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "usuario"}
	}
	return nil
}

func (r UserRepository) List() ([]models.User, error) {
	rows, err := r.db().Query(`
		SELECT id, username, password_hash, role, created_at
		FROM users
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return out, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
