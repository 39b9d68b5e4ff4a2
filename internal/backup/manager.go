package backup

import (
	"fmt"
	"time"

	"typelearn/internal/domain"
	"typelearn/internal/repository"
	"typelearn/internal/service"

	"go.uber.org/zap"
)

// Cache keys for the local latest-snapshot copy: a fixed name plus a
// companion timestamp key.
const (
	CacheKeyLatest   = "backup:latest"
	CacheKeyLatestAt = "backup:latest_at"
)

// Stores groups every repository the snapshot manager reads and writes.
type Stores struct {
	Users        repository.UserRepository
	Settings     repository.SettingsRepository
	CustomWords  repository.CustomWordRepository
	Mastery      repository.MasteryRepository
	Sessions     repository.SessionRepository
	Attempts     repository.AttemptRepository
	Progress     repository.ProgressRepository
	Achievements repository.AchievementRepository
	Patterns     repository.PatternRepository
}

// Manager builds and consumes versioned snapshots of user-scoped records.
type Manager struct {
	stores Stores
	cache  *service.CacheService
	locks  *service.UserLocks
	logger *zap.Logger
	now    func() time.Time
}

// NewManager creates a new snapshot manager
func NewManager(stores Stores, cache *service.CacheService, locks *service.UserLocks, logger *zap.Logger) *Manager {
	return &Manager{
		stores: stores,
		cache:  cache,
		locks:  locks,
		logger: logger,
		now:    time.Now,
	}
}

// ExportUser builds a snapshot of every record type scoped to one user.
func (m *Manager) ExportUser(userID int64) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{
		Version:    domain.SnapshotVersion,
		ExportedAt: m.now(),
	}

	var err error
	if snap.Users, err = m.stores.Users.ListByUser(userID); err != nil {
		return nil, fmt.Errorf("export users: %w", err)
	}
	if snap.Sessions, err = m.stores.Sessions.ListByUser(userID); err != nil {
		return nil, fmt.Errorf("export sessions: %w", err)
	}
	if snap.Progress, err = m.stores.Progress.ListByUser(userID); err != nil {
		return nil, fmt.Errorf("export progress: %w", err)
	}
	if snap.Achievements, err = m.stores.Achievements.ListByUser(userID); err != nil {
		return nil, fmt.Errorf("export achievements: %w", err)
	}
	if snap.WordMastery, err = m.stores.Mastery.ListByUser(userID); err != nil {
		return nil, fmt.Errorf("export word mastery: %w", err)
	}
	if snap.MistakePatterns, err = m.stores.Patterns.ListByUser(userID); err != nil {
		return nil, fmt.Errorf("export mistake patterns: %w", err)
	}
	if snap.CustomWords, err = m.stores.CustomWords.ListByUser(userID); err != nil {
		return nil, fmt.Errorf("export custom words: %w", err)
	}
	if snap.TypingAttempts, err = m.stores.Attempts.ListByUser(userID); err != nil {
		return nil, fmt.Errorf("export typing attempts: %w", err)
	}
	if snap.UserSettings, err = m.stores.Settings.ListByUser(userID); err != nil {
		return nil, fmt.Errorf("export user settings: %w", err)
	}

	normalize(snap)
	return snap, nil
}

// ExportAll builds a snapshot of every record type across all users.
func (m *Manager) ExportAll() (*domain.Snapshot, error) {
	snap := &domain.Snapshot{
		Version:    domain.SnapshotVersion,
		ExportedAt: m.now(),
	}

	var err error
	if snap.Users, err = m.stores.Users.List(); err != nil {
		return nil, fmt.Errorf("export users: %w", err)
	}
	if snap.Sessions, err = m.stores.Sessions.List(); err != nil {
		return nil, fmt.Errorf("export sessions: %w", err)
	}
	if snap.Progress, err = m.stores.Progress.List(); err != nil {
		return nil, fmt.Errorf("export progress: %w", err)
	}
	if snap.Achievements, err = m.stores.Achievements.List(); err != nil {
		return nil, fmt.Errorf("export achievements: %w", err)
	}
	if snap.WordMastery, err = m.stores.Mastery.List(); err != nil {
		return nil, fmt.Errorf("export word mastery: %w", err)
	}
	if snap.MistakePatterns, err = m.stores.Patterns.List(); err != nil {
		return nil, fmt.Errorf("export mistake patterns: %w", err)
	}
	if snap.CustomWords, err = m.stores.CustomWords.List(); err != nil {
		return nil, fmt.Errorf("export custom words: %w", err)
	}
	if snap.TypingAttempts, err = m.stores.Attempts.List(); err != nil {
		return nil, fmt.Errorf("export typing attempts: %w", err)
	}
	if snap.UserSettings, err = m.stores.Settings.List(); err != nil {
		return nil, fmt.Errorf("export user settings: %w", err)
	}

	normalize(snap)
	return snap, nil
}

// ImportStats counts what an import applied and what it skipped.
type ImportStats struct {
	Applied int
	Skipped int
}

// ImportUser applies a snapshot's records for one user. Snapshot-level
// validation failures abort the whole import; once the snapshot is
// accepted, individual invalid records are logged and skipped. Mutable
// record types are upserted by primary key; write-once types (achievements)
// and immutable rows (sessions, typing attempts) are inserted only if
// absent, so re-importing never overwrites an existing unlock timestamp.
func (m *Manager) ImportUser(snap *domain.Snapshot, userID int64) (*ImportStats, error) {
	if err := ValidateSnapshot(snap); err != nil {
		return nil, err
	}

	lock := m.locks.For(userID)
	lock.Lock()
	defer lock.Unlock()

	stats := &ImportStats{}

	for i := range snap.Users {
		u := snap.Users[i]
		if u.UserID != userID {
			continue
		}
		if !m.admit("user", &u, stats) {
			continue
		}
		if err := m.stores.Users.Upsert(&u); err != nil {
			return stats, fmt.Errorf("import user: %w", err)
		}
		stats.Applied++
	}

	for i := range snap.UserSettings {
		s := snap.UserSettings[i]
		if s.UserID != userID {
			continue
		}
		if !m.admit("user settings", &s, stats) {
			continue
		}
		if err := m.stores.Settings.Upsert(&s); err != nil {
			return stats, fmt.Errorf("import user settings: %w", err)
		}
		stats.Applied++
	}

	for i := range snap.Progress {
		p := snap.Progress[i]
		if p.UserID != userID {
			continue
		}
		if !m.admit("progress", &p, stats) {
			continue
		}
		if err := m.stores.Progress.Upsert(&p); err != nil {
			return stats, fmt.Errorf("import progress: %w", err)
		}
		stats.Applied++
	}

	for i := range snap.WordMastery {
		w := snap.WordMastery[i]
		if w.UserID != userID {
			continue
		}
		if !m.admit("word mastery", &w, stats) {
			continue
		}
		if err := m.stores.Mastery.Upsert(&w); err != nil {
			return stats, fmt.Errorf("import word mastery: %w", err)
		}
		stats.Applied++
	}

	for i := range snap.CustomWords {
		w := snap.CustomWords[i]
		if w.UserID != userID {
			continue
		}
		if !m.admit("custom word", &w, stats) {
			continue
		}
		if err := m.stores.CustomWords.Upsert(&w); err != nil {
			return stats, fmt.Errorf("import custom word: %w", err)
		}
		stats.Applied++
	}

	for i := range snap.MistakePatterns {
		p := snap.MistakePatterns[i]
		if p.UserID != userID {
			continue
		}
		if !m.admit("mistake pattern", &p, stats) {
			continue
		}
		if err := m.upsertPattern(&p); err != nil {
			return stats, fmt.Errorf("import mistake pattern: %w", err)
		}
		stats.Applied++
	}

	for i := range snap.Sessions {
		s := snap.Sessions[i]
		if s.UserID != userID {
			continue
		}
		if !m.admit("session", &s, stats) {
			continue
		}
		if err := m.stores.Sessions.InsertIfAbsent(&s); err != nil {
			return stats, fmt.Errorf("import session: %w", err)
		}
		stats.Applied++
	}

	for i := range snap.TypingAttempts {
		a := snap.TypingAttempts[i]
		if a.UserID != userID {
			continue
		}
		if !m.admit("typing attempt", &a, stats) {
			continue
		}
		if err := m.stores.Attempts.InsertIfAbsent(&a); err != nil {
			return stats, fmt.Errorf("import typing attempt: %w", err)
		}
		stats.Applied++
	}

	for i := range snap.Achievements {
		a := snap.Achievements[i]
		if a.UserID != userID {
			continue
		}
		if !m.admit("achievement", &a, stats) {
			continue
		}
		exists, err := m.stores.Achievements.Exists(a.UserID, a.ID)
		if err != nil {
			return stats, fmt.Errorf("import achievement: %w", err)
		}
		if exists {
			continue
		}
		if err := m.stores.Achievements.Insert(&a); err != nil {
			return stats, fmt.Errorf("import achievement: %w", err)
		}
		stats.Applied++
	}

	m.logger.Info("Snapshot imported",
		zap.Int64("user_id", userID),
		zap.Int("applied", stats.Applied),
		zap.Int("skipped", stats.Skipped),
	)

	return stats, nil
}

// admit validates one record; invalid records are logged, counted as
// skipped, and never abort the import.
func (m *Manager) admit(kind string, record interface{}, stats *ImportStats) bool {
	result := ValidateRecord(record)
	if result.Valid {
		return true
	}

	m.logger.Warn("Skipping invalid record in snapshot",
		zap.String("kind", kind),
		zap.Strings("errors", result.Errors),
	)
	stats.Skipped++
	return false
}

// upsertPattern replaces a pattern row by its composite key.
func (m *Manager) upsertPattern(p *domain.MistakePattern) error {
	existing, err := m.stores.Patterns.Get(p.UserID, p.Type, p.FromChar, p.ToChar)
	if err != nil {
		return err
	}
	if existing == nil {
		return m.stores.Patterns.Insert(p)
	}

	existing.Frequency = p.Frequency
	existing.LastOccurrence = p.LastOccurrence
	return m.stores.Patterns.Update(existing)
}

// normalize replaces nil record slices with empty ones so an exported
// document always carries every required array.
func normalize(snap *domain.Snapshot) {
	if snap.Users == nil {
		snap.Users = []domain.User{}
	}
	if snap.Sessions == nil {
		snap.Sessions = []domain.Session{}
	}
	if snap.Progress == nil {
		snap.Progress = []domain.ProgressSummary{}
	}
	if snap.Achievements == nil {
		snap.Achievements = []domain.Achievement{}
	}
	if snap.WordMastery == nil {
		snap.WordMastery = []domain.WordMastery{}
	}
	if snap.MistakePatterns == nil {
		snap.MistakePatterns = []domain.MistakePattern{}
	}
	if snap.CustomWords == nil {
		snap.CustomWords = []domain.CustomWord{}
	}
	if snap.TypingAttempts == nil {
		snap.TypingAttempts = []domain.TypingAttempt{}
	}
	if snap.UserSettings == nil {
		snap.UserSettings = []domain.UserSettings{}
	}
}
