package domain

import "time"

// User represents a learner account.
type User struct {
	UserID    int64     `json:"user_id" validate:"required"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSettings holds per-user preferences. One row per user, upserted whole.
type UserSettings struct {
	UserID       int64  `json:"user_id" validate:"required"`
	SoundEnabled bool   `json:"sound_enabled"`
	Theme        string `json:"theme"`
	DailyGoal    int    `json:"daily_goal" validate:"min=0"`
}

// CustomWord is a user-added practice word.
type CustomWord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id" validate:"required"`
	Word      string    `json:"word" validate:"required"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}
