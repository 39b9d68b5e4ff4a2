package testutil

import (
	"time"

	"typelearn/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureExists(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) Get(userID int64) (*domain.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Upsert(u *domain.User) error {
	args := m.Called(u)
	return args.Error(0)
}

func (m *MockUserRepository) List() ([]domain.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) ListByUser(userID int64) ([]domain.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockSettingsRepository is a mock for SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(userID int64) (*domain.UserSettings, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserSettings), args.Error(1)
}

func (m *MockSettingsRepository) Upsert(s *domain.UserSettings) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockSettingsRepository) List() ([]domain.UserSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserSettings), args.Error(1)
}

func (m *MockSettingsRepository) ListByUser(userID int64) ([]domain.UserSettings, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserSettings), args.Error(1)
}

// MockCustomWordRepository is a mock for CustomWordRepository
type MockCustomWordRepository struct {
	mock.Mock
}

func (m *MockCustomWordRepository) Upsert(w *domain.CustomWord) error {
	args := m.Called(w)
	return args.Error(0)
}

func (m *MockCustomWordRepository) List() ([]domain.CustomWord, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomWord), args.Error(1)
}

func (m *MockCustomWordRepository) ListByUser(userID int64) ([]domain.CustomWord, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomWord), args.Error(1)
}

// MockMasteryRepository is a mock for MasteryRepository
type MockMasteryRepository struct {
	mock.Mock
}

func (m *MockMasteryRepository) Get(userID int64, word string) (*domain.WordMastery, error) {
	args := m.Called(userID, word)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WordMastery), args.Error(1)
}

func (m *MockMasteryRepository) Upsert(w *domain.WordMastery) error {
	args := m.Called(w)
	return args.Error(0)
}

func (m *MockMasteryRepository) ListByLevels(userID int64, levels ...domain.MasteryLevel) ([]domain.WordMastery, error) {
	callArgs := []interface{}{userID}
	for _, l := range levels {
		callArgs = append(callArgs, l)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordMastery), args.Error(1)
}

func (m *MockMasteryRepository) ListNeedsPractice(userID int64) ([]domain.WordMastery, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordMastery), args.Error(1)
}

func (m *MockMasteryRepository) List() ([]domain.WordMastery, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordMastery), args.Error(1)
}

func (m *MockMasteryRepository) ListByUser(userID int64) ([]domain.WordMastery, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordMastery), args.Error(1)
}

func (m *MockMasteryRepository) DeleteByUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockSessionRepository is a mock for SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Insert(s *domain.Session) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockSessionRepository) InsertIfAbsent(s *domain.Session) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(id string) (*domain.Session, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) Update(s *domain.Session) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockSessionRepository) ListClosedByUser(userID int64) ([]domain.Session, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *MockSessionRepository) ListClosedSince(userID int64, since time.Time) ([]domain.Session, error) {
	args := m.Called(userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *MockSessionRepository) ListRecentClosed(userID int64, limit int) ([]domain.Session, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *MockSessionRepository) List() ([]domain.Session, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *MockSessionRepository) ListByUser(userID int64) ([]domain.Session, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Session), args.Error(1)
}

// MockAttemptRepository is a mock for AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Insert(a *domain.TypingAttempt) error {
	args := m.Called(a)
	return args.Error(0)
}

func (m *MockAttemptRepository) InsertIfAbsent(a *domain.TypingAttempt) error {
	args := m.Called(a)
	return args.Error(0)
}

func (m *MockAttemptRepository) List() ([]domain.TypingAttempt, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TypingAttempt), args.Error(1)
}

func (m *MockAttemptRepository) ListByUser(userID int64) ([]domain.TypingAttempt, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TypingAttempt), args.Error(1)
}

// MockProgressRepository is a mock for ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(userID int64) (*domain.ProgressSummary, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgressSummary), args.Error(1)
}

func (m *MockProgressRepository) Upsert(p *domain.ProgressSummary) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockProgressRepository) List() ([]domain.ProgressSummary, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProgressSummary), args.Error(1)
}

func (m *MockProgressRepository) ListByUser(userID int64) ([]domain.ProgressSummary, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProgressSummary), args.Error(1)
}

// MockAchievementRepository is a mock for AchievementRepository
type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) Exists(userID int64, id string) (bool, error) {
	args := m.Called(userID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAchievementRepository) Insert(a *domain.Achievement) error {
	args := m.Called(a)
	return args.Error(0)
}

func (m *MockAchievementRepository) List() ([]domain.Achievement, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Achievement), args.Error(1)
}

func (m *MockAchievementRepository) ListByUser(userID int64) ([]domain.Achievement, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Achievement), args.Error(1)
}

// MockPatternRepository is a mock for PatternRepository
type MockPatternRepository struct {
	mock.Mock
}

func (m *MockPatternRepository) Get(userID int64, patternType domain.PatternType, fromChar, toChar string) (*domain.MistakePattern, error) {
	args := m.Called(userID, patternType, fromChar, toChar)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MistakePattern), args.Error(1)
}

func (m *MockPatternRepository) Insert(p *domain.MistakePattern) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockPatternRepository) Update(p *domain.MistakePattern) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockPatternRepository) ListTop(userID int64, limit int) ([]domain.MistakePattern, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MistakePattern), args.Error(1)
}

func (m *MockPatternRepository) List() ([]domain.MistakePattern, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MistakePattern), args.Error(1)
}

func (m *MockPatternRepository) ListByUser(userID int64) ([]domain.MistakePattern, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MistakePattern), args.Error(1)
}

func (m *MockPatternRepository) DeleteOlderThan(userID int64, cutoff time.Time) (int64, error) {
	args := m.Called(userID, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockCacheRepository is a mock for CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Upsert(e *domain.CacheEntry) error {
	args := m.Called(e)
	return args.Error(0)
}

func (m *MockCacheRepository) Get(key string) (*domain.CacheEntry, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CacheEntry), args.Error(1)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteExpired(now time.Time) (int64, error) {
	args := m.Called(now)
	return args.Get(0).(int64), args.Error(1)
}
