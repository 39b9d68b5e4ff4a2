package service

import (
	"time"

	"typelearn/internal/domain"
	"typelearn/internal/repository"

	"go.uber.org/zap"
)

// PatternService aggregates per-character typing mistakes into frequency
// counters. Aggregation is per-character only; it never looks at whole words.
type PatternService struct {
	patternRepo repository.PatternRepository
	locks       *UserLocks
	logger      *zap.Logger
	now         func() time.Time
}

// NewPatternService creates a new mistake pattern service
func NewPatternService(patternRepo repository.PatternRepository, locks *UserLocks, logger *zap.Logger) *PatternService {
	return &PatternService{
		patternRepo: patternRepo,
		locks:       locks,
		logger:      logger,
		now:         time.Now,
	}
}

// patternEvent is one detected mismatch at a single index.
type patternEvent struct {
	patternType domain.PatternType
	fromChar    string
	toChar      string
}

// Analyze walks expected and typed index-by-index and upserts a frequency
// record for every mismatch: a substitution when a different character was
// typed, an omission when the expected character was not typed at all.
// It returns the number of mismatches recorded.
func (s *PatternService) Analyze(userID int64, expected, typed string) (int, error) {
	events := diffChars(expected, typed)
	if len(events) == 0 {
		return 0, nil
	}

	lock := s.locks.For(userID)
	lock.Lock()
	defer lock.Unlock()

	now := s.now()
	for _, ev := range events {
		existing, err := s.patternRepo.Get(userID, ev.patternType, ev.fromChar, ev.toChar)
		if err != nil {
			return 0, err
		}

		if existing == nil {
			p := &domain.MistakePattern{
				UserID:          userID,
				Type:            ev.patternType,
				FromChar:        ev.fromChar,
				ToChar:          ev.toChar,
				Frequency:       1,
				FirstOccurrence: now,
				LastOccurrence:  now,
			}
			if err := s.patternRepo.Insert(p); err != nil {
				return 0, err
			}
			continue
		}

		existing.Frequency++
		existing.LastOccurrence = now
		if err := s.patternRepo.Update(existing); err != nil {
			return 0, err
		}
	}

	return len(events), nil
}

// TopPatterns returns the user's most frequent mistake patterns.
func (s *PatternService) TopPatterns(userID int64, limit int) ([]domain.MistakePattern, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.patternRepo.ListTop(userID, limit)
}

// Cleanup deletes the user's patterns whose last occurrence is older than
// daysOld days. Storage hygiene only; analysis never triggers it.
func (s *PatternService) Cleanup(userID int64, daysOld int) (int64, error) {
	lock := s.locks.For(userID)
	lock.Lock()
	defer lock.Unlock()

	cutoff := s.now().AddDate(0, 0, -daysOld)
	removed, err := s.patternRepo.DeleteOlderThan(userID, cutoff)
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		s.logger.Info("Removed stale mistake patterns",
			zap.Int64("user_id", userID),
			zap.Int64("removed", removed),
		)
	}

	return removed, nil
}

// diffChars compares expected and typed rune-by-rune up to the longer
// length and returns one event per differing index.
func diffChars(expected, typed string) []patternEvent {
	expectedRunes := []rune(expected)
	typedRunes := []rune(typed)

	length := len(expectedRunes)
	if len(typedRunes) > length {
		length = len(typedRunes)
	}

	var events []patternEvent
	for i := 0; i < length; i++ {
		var fromChar, toChar string
		if i < len(expectedRunes) {
			fromChar = string(expectedRunes[i])
		}
		if i < len(typedRunes) {
			toChar = string(typedRunes[i])
		}

		if fromChar == toChar {
			continue
		}

		patternType := domain.PatternSubstitution
		if toChar == "" {
			patternType = domain.PatternOmission
		}
		events = append(events, patternEvent{patternType: patternType, fromChar: fromChar, toChar: toChar})
	}

	return events
}
