package domain

import "time"

// Session represents one practice session. EndTime nil means the session
// is still open; a session is closed exactly once and is immutable after.
type Session struct {
	ID             string     `json:"id" validate:"required"`
	UserID         int64      `json:"user_id" validate:"required"`
	StartTime      time.Time  `json:"start_time" validate:"required"`
	EndTime        *time.Time `json:"end_time"`
	Level          string     `json:"level"`
	TotalWords     int        `json:"total_words" validate:"min=0"`
	CorrectWords   int        `json:"correct_words" validate:"min=0"`
	Accuracy       float64    `json:"accuracy" validate:"min=0,max=100"`
	WordsPerMinute float64    `json:"words_per_minute" validate:"min=0"`
}

// Closed reports whether the session has been closed with final stats.
func (s *Session) Closed() bool {
	return s.EndTime != nil
}

// TypingAttempt is one raw per-word attempt within a session.
type TypingAttempt struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id" validate:"required"`
	SessionID string    `json:"session_id"`
	Word      string    `json:"word" validate:"required"`
	Typed     string    `json:"typed"`
	Correct   bool      `json:"correct"`
	CreatedAt time.Time `json:"created_at"`
}
