package postgres

import (
	"database/sql"

	"typelearn/internal/domain"
)

// ProgressRepo implements repository.ProgressRepository
type ProgressRepo struct {
	db *sql.DB
}

// NewProgressRepo creates a new progress summary repository
func NewProgressRepo(db *sql.DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

const progressColumns = `user_id, current_level, total_sessions, total_words_typed,
		average_accuracy, average_wpm, streak, last_session_date`

// Get returns the user's summary, or (nil, nil) if it hasn't been computed yet
func (r *ProgressRepo) Get(userID int64) (*domain.ProgressSummary, error) {
	query := `SELECT ` + progressColumns + ` FROM progress WHERE user_id = $1`
	p, err := scanProgress(r.db.QueryRow(query, userID))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Upsert fully replaces the user's summary row. Check-then-write; callers
// hold the per-user lock.
func (r *ProgressRepo) Upsert(p *domain.ProgressSummary) error {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM progress WHERE user_id = $1)`
	if err := r.db.QueryRow(query, p.UserID).Scan(&exists); err != nil {
		return err
	}

	if exists {
		query = `
			UPDATE progress
			SET current_level = $2, total_sessions = $3, total_words_typed = $4,
				average_accuracy = $5, average_wpm = $6, streak = $7, last_session_date = $8
			WHERE user_id = $1
		`
	} else {
		query = `
			INSERT INTO progress (` + progressColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
	}
	_, err := r.db.Exec(query,
		p.UserID, p.CurrentLevel, p.TotalSessions, p.TotalWordsTyped,
		p.AverageAccuracy, p.AverageWPM, p.Streak, nullableTime(p.LastSessionDate),
	)
	return err
}

// List returns all progress summaries
func (r *ProgressRepo) List() ([]domain.ProgressSummary, error) {
	query := `SELECT ` + progressColumns + ` FROM progress ORDER BY user_id`
	return r.list(query)
}

// ListByUser returns the user's summary as a slice, for export
func (r *ProgressRepo) ListByUser(userID int64) ([]domain.ProgressSummary, error) {
	query := `SELECT ` + progressColumns + ` FROM progress WHERE user_id = $1`
	return r.list(query, userID)
}

func (r *ProgressRepo) list(query string, args ...interface{}) ([]domain.ProgressSummary, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.ProgressSummary
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *p)
	}

	return summaries, rows.Err()
}

func scanProgress(row rowScanner) (*domain.ProgressSummary, error) {
	var p domain.ProgressSummary
	var lastSession sql.NullTime
	err := row.Scan(
		&p.UserID, &p.CurrentLevel, &p.TotalSessions, &p.TotalWordsTyped,
		&p.AverageAccuracy, &p.AverageWPM, &p.Streak, &lastSession,
	)
	if err != nil {
		return nil, err
	}
	if lastSession.Valid {
		p.LastSessionDate = &lastSession.Time
	}
	return &p, nil
}
