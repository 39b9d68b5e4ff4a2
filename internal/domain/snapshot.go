package domain

import "time"

// SnapshotVersion is the current export document version. Import accepts
// only this version.
const SnapshotVersion = "1.0"

// Snapshot is a versioned bundle of persisted records for one user or for
// all users. It is immutable once produced and consumed only by import.
// Cache entries are deliberately excluded: the cache is process-wide,
// expiring state, not user-owned data.
type Snapshot struct {
	Version         string            `json:"version"`
	ExportedAt      time.Time         `json:"exported_at"`
	Users           []User            `json:"users"`
	Sessions        []Session         `json:"sessions"`
	Progress        []ProgressSummary `json:"progress"`
	Achievements    []Achievement     `json:"achievements"`
	WordMastery     []WordMastery     `json:"word_mastery"`
	MistakePatterns []MistakePattern  `json:"mistake_patterns"`
	CustomWords     []CustomWord      `json:"custom_words"`
	TypingAttempts  []TypingAttempt   `json:"typing_attempts"`
	UserSettings    []UserSettings    `json:"user_settings"`
}
