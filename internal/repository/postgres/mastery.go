package postgres

import (
	"database/sql"

	"github.com/lib/pq"

	"typelearn/internal/domain"
)

// MasteryRepo implements repository.MasteryRepository
type MasteryRepo struct {
	db *sql.DB
}

// NewMasteryRepo creates a new word mastery repository
func NewMasteryRepo(db *sql.DB) *MasteryRepo {
	return &MasteryRepo{db: db}
}

const masteryColumns = `user_id, word, category, correct_count, wrong_count, total_seen,
		comprehension_correct, comprehension_wrong, mastery_level, last_seen_at`

// Get returns the mastery record for a word, or (nil, nil) if the user
// has never typed it
func (r *MasteryRepo) Get(userID int64, word string) (*domain.WordMastery, error) {
	query := `
		SELECT ` + masteryColumns + `
		FROM word_mastery
		WHERE user_id = $1 AND word = $2
	`
	m, err := scanMastery(r.db.QueryRow(query, userID, word))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Upsert inserts or replaces the mastery record for (user_id, word).
// Check-then-write; callers hold the per-user lock.
func (r *MasteryRepo) Upsert(m *domain.WordMastery) error {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM word_mastery WHERE user_id = $1 AND word = $2)`
	if err := r.db.QueryRow(query, m.UserID, m.Word).Scan(&exists); err != nil {
		return err
	}

	if exists {
		query = `
			UPDATE word_mastery
			SET category = $3, correct_count = $4, wrong_count = $5, total_seen = $6,
				comprehension_correct = $7, comprehension_wrong = $8, mastery_level = $9, last_seen_at = $10
			WHERE user_id = $1 AND word = $2
		`
	} else {
		query = `
			INSERT INTO word_mastery (` + masteryColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
	}
	_, err := r.db.Exec(query,
		m.UserID, m.Word, m.Category, m.CorrectCount, m.WrongCount, m.TotalSeen,
		m.ComprehensionCorrect, m.ComprehensionWrong, string(m.Level), m.LastSeenAt,
	)
	return err
}

// ListByLevels returns the user's words at any of the given mastery levels
func (r *MasteryRepo) ListByLevels(userID int64, levels ...domain.MasteryLevel) ([]domain.WordMastery, error) {
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = string(l)
	}

	query := `
		SELECT ` + masteryColumns + `
		FROM word_mastery
		WHERE user_id = $1 AND mastery_level = ANY($2)
		ORDER BY word
	`
	return r.list(query, userID, pq.Array(names))
}

// ListNeedsPractice returns words still being learned or with at least one
// wrong attempt, most-wrong first
func (r *MasteryRepo) ListNeedsPractice(userID int64) ([]domain.WordMastery, error) {
	query := `
		SELECT ` + masteryColumns + `
		FROM word_mastery
		WHERE user_id = $1 AND (mastery_level = 'learning' OR wrong_count > 0)
		ORDER BY wrong_count DESC, word
	`
	return r.list(query, userID)
}

// List returns all mastery records
func (r *MasteryRepo) List() ([]domain.WordMastery, error) {
	query := `SELECT ` + masteryColumns + ` FROM word_mastery ORDER BY user_id, word`
	return r.list(query)
}

// ListByUser returns all of the user's mastery records
func (r *MasteryRepo) ListByUser(userID int64) ([]domain.WordMastery, error) {
	query := `SELECT ` + masteryColumns + ` FROM word_mastery WHERE user_id = $1 ORDER BY word`
	return r.list(query, userID)
}

// DeleteByUser removes all of the user's mastery records (bulk reset)
func (r *MasteryRepo) DeleteByUser(userID int64) error {
	query := `DELETE FROM word_mastery WHERE user_id = $1`
	_, err := r.db.Exec(query, userID)
	return err
}

func (r *MasteryRepo) list(query string, args ...interface{}) ([]domain.WordMastery, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.WordMastery
	for rows.Next() {
		m, err := scanMastery(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *m)
	}

	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMastery(row rowScanner) (*domain.WordMastery, error) {
	var m domain.WordMastery
	var level string
	err := row.Scan(
		&m.UserID, &m.Word, &m.Category, &m.CorrectCount, &m.WrongCount, &m.TotalSeen,
		&m.ComprehensionCorrect, &m.ComprehensionWrong, &level, &m.LastSeenAt,
	)
	if err != nil {
		return nil, err
	}
	m.Level = domain.MasteryLevel(level)
	return &m, nil
}
