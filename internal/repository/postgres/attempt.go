package postgres

import (
	"database/sql"

	"typelearn/internal/domain"
)

// AttemptRepo implements repository.AttemptRepository
type AttemptRepo struct {
	db *sql.DB
}

// NewAttemptRepo creates a new typing attempt repository
func NewAttemptRepo(db *sql.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Insert logs a typing attempt
func (r *AttemptRepo) Insert(a *domain.TypingAttempt) error {
	query := `
		INSERT INTO typing_attempts (user_id, session_id, word, typed, correct, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(query, a.UserID, a.SessionID, a.Word, a.Typed, a.Correct, a.CreatedAt)
	return err
}

// InsertIfAbsent stores an attempt with an explicit id only if it is not
// already present. Used by import: attempt rows are immutable.
func (r *AttemptRepo) InsertIfAbsent(a *domain.TypingAttempt) error {
	query := `
		INSERT INTO typing_attempts (id, user_id, session_id, word, typed, correct, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.db.Exec(query, a.ID, a.UserID, a.SessionID, a.Word, a.Typed, a.Correct, a.CreatedAt)
	return err
}

// List returns all typing attempts
func (r *AttemptRepo) List() ([]domain.TypingAttempt, error) {
	query := `
		SELECT id, user_id, session_id, word, typed, correct, created_at
		FROM typing_attempts
		ORDER BY id
	`
	return r.list(query)
}

// ListByUser returns all of the user's typing attempts
func (r *AttemptRepo) ListByUser(userID int64) ([]domain.TypingAttempt, error) {
	query := `
		SELECT id, user_id, session_id, word, typed, correct, created_at
		FROM typing_attempts
		WHERE user_id = $1
		ORDER BY id
	`
	return r.list(query, userID)
}

func (r *AttemptRepo) list(query string, args ...interface{}) ([]domain.TypingAttempt, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []domain.TypingAttempt
	for rows.Next() {
		var a domain.TypingAttempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.SessionID, &a.Word, &a.Typed, &a.Correct, &a.CreatedAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}
