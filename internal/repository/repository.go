package repository

import (
	"time"

	"typelearn/internal/domain"
)

// UserRepository defines user account data operations.
type UserRepository interface {
	EnsureExists(userID int64) error
	Get(userID int64) (*domain.User, error)
	Upsert(u *domain.User) error
	List() ([]domain.User, error)
	ListByUser(userID int64) ([]domain.User, error)
}

// SettingsRepository defines per-user settings operations.
type SettingsRepository interface {
	Get(userID int64) (*domain.UserSettings, error)
	Upsert(s *domain.UserSettings) error
	List() ([]domain.UserSettings, error)
	ListByUser(userID int64) ([]domain.UserSettings, error)
}

// CustomWordRepository defines user-added word operations.
type CustomWordRepository interface {
	Upsert(w *domain.CustomWord) error
	List() ([]domain.CustomWord, error)
	ListByUser(userID int64) ([]domain.CustomWord, error)
}

// MasteryRepository defines per-word mastery data operations.
// Get returns (nil, nil) for a word the user has never seen; "not yet seen"
// is a normal state, not an error.
type MasteryRepository interface {
	Get(userID int64, word string) (*domain.WordMastery, error)
	Upsert(m *domain.WordMastery) error
	ListByLevels(userID int64, levels ...domain.MasteryLevel) ([]domain.WordMastery, error)
	ListNeedsPractice(userID int64) ([]domain.WordMastery, error)
	List() ([]domain.WordMastery, error)
	ListByUser(userID int64) ([]domain.WordMastery, error)
	DeleteByUser(userID int64) error
}

// SessionRepository defines practice session data operations.
// Get returns (nil, nil) when the session does not exist.
type SessionRepository interface {
	Insert(s *domain.Session) error
	InsertIfAbsent(s *domain.Session) error
	Get(id string) (*domain.Session, error)
	Update(s *domain.Session) error
	ListClosedByUser(userID int64) ([]domain.Session, error)
	ListClosedSince(userID int64, since time.Time) ([]domain.Session, error)
	ListRecentClosed(userID int64, limit int) ([]domain.Session, error)
	List() ([]domain.Session, error)
	ListByUser(userID int64) ([]domain.Session, error)
}

// AttemptRepository defines raw typing attempt log operations.
type AttemptRepository interface {
	Insert(a *domain.TypingAttempt) error
	InsertIfAbsent(a *domain.TypingAttempt) error
	List() ([]domain.TypingAttempt, error)
	ListByUser(userID int64) ([]domain.TypingAttempt, error)
}

// ProgressRepository defines progress summary data operations.
// Get returns (nil, nil) when no summary has been computed yet.
type ProgressRepository interface {
	Get(userID int64) (*domain.ProgressSummary, error)
	Upsert(p *domain.ProgressSummary) error
	List() ([]domain.ProgressSummary, error)
	ListByUser(userID int64) ([]domain.ProgressSummary, error)
}

// AchievementRepository defines achievement unlock data operations.
// Achievements are write-once per (userID, id); Insert is always guarded by
// an Exists check under the caller's per-user lock.
type AchievementRepository interface {
	Exists(userID int64, id string) (bool, error)
	Insert(a *domain.Achievement) error
	List() ([]domain.Achievement, error)
	ListByUser(userID int64) ([]domain.Achievement, error)
}

// PatternRepository defines mistake pattern data operations.
// Get returns (nil, nil) for a pattern not yet recorded.
type PatternRepository interface {
	Get(userID int64, patternType domain.PatternType, fromChar, toChar string) (*domain.MistakePattern, error)
	Insert(p *domain.MistakePattern) error
	Update(p *domain.MistakePattern) error
	ListTop(userID int64, limit int) ([]domain.MistakePattern, error)
	List() ([]domain.MistakePattern, error)
	ListByUser(userID int64) ([]domain.MistakePattern, error)
	DeleteOlderThan(userID int64, cutoff time.Time) (int64, error)
}

// CacheRepository defines key/value cache operations. Get returns
// (nil, nil) for an absent key; expiry filtering is done by the service.
type CacheRepository interface {
	Upsert(e *domain.CacheEntry) error
	Get(key string) (*domain.CacheEntry, error)
	Delete(key string) error
	DeleteExpired(now time.Time) (int64, error)
}
