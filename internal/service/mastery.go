package service

import (
	"time"

	"typelearn/internal/domain"
	"typelearn/internal/repository"

	"go.uber.org/zap"
)

// MasteryService classifies per-word mastery from typing and comprehension
// outcomes. Records are created on the first typing event for a word and
// reclassified after every event; they are never deleted except by Reset.
type MasteryService struct {
	masteryRepo repository.MasteryRepository
	locks       *UserLocks
	logger      *zap.Logger
	now         func() time.Time
}

// NewMasteryService creates a new mastery service
func NewMasteryService(masteryRepo repository.MasteryRepository, locks *UserLocks, logger *zap.Logger) *MasteryService {
	return &MasteryService{
		masteryRepo: masteryRepo,
		locks:       locks,
		logger:      logger,
		now:         time.Now,
	}
}

// RecordTyping updates the word's mastery record with one typing outcome,
// creating the record on first sight, and reclassifies it.
func (s *MasteryService) RecordTyping(userID int64, word, category string, correct bool) (*domain.WordMastery, error) {
	lock := s.locks.For(userID)
	lock.Lock()
	defer lock.Unlock()

	m, err := s.masteryRepo.Get(userID, word)
	if err != nil {
		return nil, err
	}

	if m == nil {
		m = &domain.WordMastery{
			UserID:   userID,
			Word:     word,
			Category: category,
		}
	}

	if correct {
		m.CorrectCount++
	} else {
		m.WrongCount++
	}
	m.TotalSeen = m.CorrectCount + m.WrongCount
	m.LastSeenAt = s.now()
	m.Level = m.Classify()

	if err := s.masteryRepo.Upsert(m); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordComprehension updates the word's comprehension counts and
// reclassifies it. Comprehension cannot precede typing: an event for a word
// the user has never typed is a no-op and returns (nil, nil).
func (s *MasteryService) RecordComprehension(userID int64, word string, correct bool) (*domain.WordMastery, error) {
	lock := s.locks.For(userID)
	lock.Lock()
	defer lock.Unlock()

	m, err := s.masteryRepo.Get(userID, word)
	if err != nil {
		return nil, err
	}

	if m == nil {
		s.logger.Debug("Comprehension event for unseen word ignored",
			zap.Int64("user_id", userID),
			zap.String("word", word),
		)
		return nil, nil
	}

	if correct {
		m.ComprehensionCorrect++
	} else {
		m.ComprehensionWrong++
	}
	m.LastSeenAt = s.now()
	m.Level = m.Classify()

	if err := s.masteryRepo.Upsert(m); err != nil {
		return nil, err
	}

	return m, nil
}

// Lookup returns the mastery record for a word, or (nil, nil) if the user
// has never typed it — "not yet seen" is a normal state, not an error.
func (s *MasteryService) Lookup(userID int64, word string) (*domain.WordMastery, error) {
	return s.masteryRepo.Get(userID, word)
}

// NeedsPractice returns words still being learned or with at least one wrong
// attempt, ordered most-wrong first.
func (s *MasteryService) NeedsPractice(userID int64) ([]domain.WordMastery, error) {
	return s.masteryRepo.ListNeedsPractice(userID)
}

// Mastered returns the user's mastered words.
func (s *MasteryService) Mastered(userID int64) ([]domain.WordMastery, error) {
	return s.masteryRepo.ListByLevels(userID, domain.MasteryMastered)
}

// InProgress returns words in learning or reviewing state.
func (s *MasteryService) InProgress(userID int64) ([]domain.WordMastery, error) {
	return s.masteryRepo.ListByLevels(userID, domain.MasteryLearning, domain.MasteryReviewing)
}

// Reset bulk-deletes all of the user's mastery records.
func (s *MasteryService) Reset(userID int64) error {
	lock := s.locks.For(userID)
	lock.Lock()
	defer lock.Unlock()

	s.logger.Info("Resetting word mastery", zap.Int64("user_id", userID))
	return s.masteryRepo.DeleteByUser(userID)
}
