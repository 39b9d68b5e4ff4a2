package postgres

import (
	"database/sql"
	"time"

	"typelearn/internal/domain"
)

// SessionRepo implements repository.SessionRepository
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

const sessionColumns = `id, user_id, start_time, end_time, level, total_words, correct_words,
		accuracy, words_per_minute`

// Insert stores a new session row
func (r *SessionRepo) Insert(s *domain.Session) error {
	query := `
		INSERT INTO sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(query,
		s.ID, s.UserID, s.StartTime, nullableTime(s.EndTime), s.Level,
		s.TotalWords, s.CorrectWords, s.Accuracy, s.WordsPerMinute,
	)
	return err
}

// InsertIfAbsent stores a session only if its id is not already present.
// Used by import: sessions are immutable once closed.
func (r *SessionRepo) InsertIfAbsent(s *domain.Session) error {
	query := `
		INSERT INTO sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.db.Exec(query,
		s.ID, s.UserID, s.StartTime, nullableTime(s.EndTime), s.Level,
		s.TotalWords, s.CorrectWords, s.Accuracy, s.WordsPerMinute,
	)
	return err
}

// Get returns the session, or (nil, nil) if it doesn't exist
func (r *SessionRepo) Get(id string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`
	s, err := scanSession(r.db.QueryRow(query, id))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Update replaces the session row by id
func (r *SessionRepo) Update(s *domain.Session) error {
	query := `
		UPDATE sessions
		SET end_time = $2, level = $3, total_words = $4, correct_words = $5,
			accuracy = $6, words_per_minute = $7
		WHERE id = $1
	`
	_, err := r.db.Exec(query,
		s.ID, nullableTime(s.EndTime), s.Level, s.TotalWords, s.CorrectWords,
		s.Accuracy, s.WordsPerMinute,
	)
	return err
}

// ListClosedByUser returns all closed sessions for the user, oldest first
func (r *SessionRepo) ListClosedByUser(userID int64) ([]domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE user_id = $1 AND end_time IS NOT NULL
		ORDER BY end_time
	`
	return r.list(query, userID)
}

// ListClosedSince returns closed sessions ending at or after the given time
func (r *SessionRepo) ListClosedSince(userID int64, since time.Time) ([]domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE user_id = $1 AND end_time IS NOT NULL AND end_time >= $2
		ORDER BY end_time
	`
	return r.list(query, userID, since)
}

// ListRecentClosed returns the most recently closed sessions, newest first
func (r *SessionRepo) ListRecentClosed(userID int64, limit int) ([]domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE user_id = $1 AND end_time IS NOT NULL
		ORDER BY end_time DESC
		LIMIT $2
	`
	return r.list(query, userID, limit)
}

// List returns all sessions
func (r *SessionRepo) List() ([]domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY start_time`
	return r.list(query)
}

// ListByUser returns all of the user's sessions, open ones included
func (r *SessionRepo) ListByUser(userID int64) ([]domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE user_id = $1 ORDER BY start_time`
	return r.list(query, userID)
}

func (r *SessionRepo) list(query string, args ...interface{}) ([]domain.Session, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}

	return sessions, rows.Err()
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var s domain.Session
	var endTime sql.NullTime
	err := row.Scan(
		&s.ID, &s.UserID, &s.StartTime, &endTime, &s.Level,
		&s.TotalWords, &s.CorrectWords, &s.Accuracy, &s.WordsPerMinute,
	)
	if err != nil {
		return nil, err
	}
	if endTime.Valid {
		s.EndTime = &endTime.Time
	}
	return &s, nil
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
