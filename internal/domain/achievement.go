package domain

import "time"

// Achievement is a write-once unlock per (UserID, ID) pair, where ID is the
// rule identifier. Re-unlocking is a no-op and never refreshes UnlockedAt.
type Achievement struct {
	ID          string    `json:"id" validate:"required"`
	UserID      int64     `json:"user_id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Category    string    `json:"category"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}
