package postgres

import (
	"database/sql"

	"typelearn/internal/domain"
)

// CustomWordRepo implements repository.CustomWordRepository
type CustomWordRepo struct {
	db *sql.DB
}

// NewCustomWordRepo creates a new custom word repository
func NewCustomWordRepo(db *sql.DB) *CustomWordRepo {
	return &CustomWordRepo{db: db}
}

// Upsert inserts or replaces a custom word by its id. Check-then-write;
// callers hold the per-user lock.
func (r *CustomWordRepo) Upsert(w *domain.CustomWord) error {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM custom_words WHERE id = $1)`
	if err := r.db.QueryRow(query, w.ID).Scan(&exists); err != nil {
		return err
	}

	if exists {
		query = `UPDATE custom_words SET word = $2, category = $3 WHERE id = $1`
		_, err := r.db.Exec(query, w.ID, w.Word, w.Category)
		return err
	}

	query = `INSERT INTO custom_words (id, user_id, word, category, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(query, w.ID, w.UserID, w.Word, w.Category, w.CreatedAt)
	return err
}

// List returns all custom words
func (r *CustomWordRepo) List() ([]domain.CustomWord, error) {
	query := `
		SELECT id, user_id, word, category, created_at
		FROM custom_words
		ORDER BY id
	`
	return r.list(query)
}

// ListByUser returns the user's custom words
func (r *CustomWordRepo) ListByUser(userID int64) ([]domain.CustomWord, error) {
	query := `
		SELECT id, user_id, word, category, created_at
		FROM custom_words
		WHERE user_id = $1
		ORDER BY id
	`
	return r.list(query, userID)
}

func (r *CustomWordRepo) list(query string, args ...interface{}) ([]domain.CustomWord, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []domain.CustomWord
	for rows.Next() {
		var w domain.CustomWord
		if err := rows.Scan(&w.ID, &w.UserID, &w.Word, &w.Category, &w.CreatedAt); err != nil {
			return nil, err
		}
		words = append(words, w)
	}

	return words, rows.Err()
}
