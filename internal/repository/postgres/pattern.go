package postgres

import (
	"database/sql"
	"time"

	"typelearn/internal/domain"
)

// PatternRepo implements repository.PatternRepository
type PatternRepo struct {
	db *sql.DB
}

// NewPatternRepo creates a new mistake pattern repository
func NewPatternRepo(db *sql.DB) *PatternRepo {
	return &PatternRepo{db: db}
}

const patternColumns = `user_id, pattern_type, from_char, to_char, frequency,
		first_occurrence, last_occurrence`

// Get returns the pattern record, or (nil, nil) if it doesn't exist
func (r *PatternRepo) Get(userID int64, patternType domain.PatternType, fromChar, toChar string) (*domain.MistakePattern, error) {
	query := `
		SELECT ` + patternColumns + `
		FROM mistake_patterns
		WHERE user_id = $1 AND pattern_type = $2 AND from_char = $3 AND to_char = $4
	`
	p, err := scanPattern(r.db.QueryRow(query, userID, string(patternType), fromChar, toChar))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Insert stores a new pattern record
func (r *PatternRepo) Insert(p *domain.MistakePattern) error {
	query := `
		INSERT INTO mistake_patterns (` + patternColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(query,
		p.UserID, string(p.Type), p.FromChar, p.ToChar, p.Frequency,
		p.FirstOccurrence, p.LastOccurrence,
	)
	return err
}

// Update replaces the frequency and last occurrence of an existing pattern
func (r *PatternRepo) Update(p *domain.MistakePattern) error {
	query := `
		UPDATE mistake_patterns
		SET frequency = $5, last_occurrence = $6
		WHERE user_id = $1 AND pattern_type = $2 AND from_char = $3 AND to_char = $4
	`
	_, err := r.db.Exec(query,
		p.UserID, string(p.Type), p.FromChar, p.ToChar, p.Frequency, p.LastOccurrence,
	)
	return err
}

// ListTop returns the user's highest-frequency patterns first
func (r *PatternRepo) ListTop(userID int64, limit int) ([]domain.MistakePattern, error) {
	query := `
		SELECT ` + patternColumns + `
		FROM mistake_patterns
		WHERE user_id = $1
		ORDER BY frequency DESC, last_occurrence DESC
		LIMIT $2
	`
	return r.list(query, userID, limit)
}

// List returns all mistake patterns
func (r *PatternRepo) List() ([]domain.MistakePattern, error) {
	query := `SELECT ` + patternColumns + ` FROM mistake_patterns ORDER BY user_id, frequency DESC`
	return r.list(query)
}

// ListByUser returns all of the user's mistake patterns
func (r *PatternRepo) ListByUser(userID int64) ([]domain.MistakePattern, error) {
	query := `SELECT ` + patternColumns + ` FROM mistake_patterns WHERE user_id = $1 ORDER BY frequency DESC`
	return r.list(query, userID)
}

// DeleteOlderThan removes the user's patterns last seen before the cutoff,
// returning the number of rows removed
func (r *PatternRepo) DeleteOlderThan(userID int64, cutoff time.Time) (int64, error) {
	query := `DELETE FROM mistake_patterns WHERE user_id = $1 AND last_occurrence < $2`
	result, err := r.db.Exec(query, userID, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PatternRepo) list(query string, args ...interface{}) ([]domain.MistakePattern, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patterns []domain.MistakePattern
	for rows.Next() {
		p, err := scanPattern(rows)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, *p)
	}

	return patterns, rows.Err()
}

func scanPattern(row rowScanner) (*domain.MistakePattern, error) {
	var p domain.MistakePattern
	var patternType string
	err := row.Scan(
		&p.UserID, &patternType, &p.FromChar, &p.ToChar, &p.Frequency,
		&p.FirstOccurrence, &p.LastOccurrence,
	)
	if err != nil {
		return nil, err
	}
	p.Type = domain.PatternType(patternType)
	return &p, nil
}
