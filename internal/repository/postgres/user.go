package postgres

import (
	"database/sql"

	"typelearn/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// EnsureExists creates the user row if it doesn't exist
func (r *UserRepo) EnsureExists(userID int64) error {
	query := `
		INSERT INTO users (user_id, name)
		VALUES ($1, '')
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(query, userID)
	return err
}

// Get returns the user, or (nil, nil) if it doesn't exist
func (r *UserRepo) Get(userID int64) (*domain.User, error) {
	var u domain.User
	query := `SELECT user_id, name, created_at FROM users WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&u.UserID, &u.Name, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// Upsert inserts or replaces the user row. Check-then-write; callers hold
// the per-user lock.
func (r *UserRepo) Upsert(u *domain.User) error {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE user_id = $1)`
	if err := r.db.QueryRow(query, u.UserID).Scan(&exists); err != nil {
		return err
	}

	if exists {
		query = `UPDATE users SET name = $2, created_at = $3 WHERE user_id = $1`
	} else {
		query = `INSERT INTO users (user_id, name, created_at) VALUES ($1, $2, $3)`
	}
	_, err := r.db.Exec(query, u.UserID, u.Name, u.CreatedAt)
	return err
}

// List returns all users
func (r *UserRepo) List() ([]domain.User, error) {
	query := `SELECT user_id, name, created_at FROM users ORDER BY user_id`
	return r.list(query)
}

// ListByUser returns the single matching user as a slice, for export
func (r *UserRepo) ListByUser(userID int64) ([]domain.User, error) {
	query := `SELECT user_id, name, created_at FROM users WHERE user_id = $1`
	return r.list(query, userID)
}

func (r *UserRepo) list(query string, args ...interface{}) ([]domain.User, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.UserID, &u.Name, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
