package testutil

import (
	"time"

	"typelearn/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestMastery creates a mastery record with the level derived from the
// given counts
func NewTestMastery(userID int64, word string, correct, wrong, comprehensionCorrect, comprehensionWrong int) *domain.WordMastery {
	m := &domain.WordMastery{
		UserID:               userID,
		Word:                 word,
		CorrectCount:         correct,
		WrongCount:           wrong,
		TotalSeen:            correct + wrong,
		ComprehensionCorrect: comprehensionCorrect,
		ComprehensionWrong:   comprehensionWrong,
		LastSeenAt:           time.Now(),
	}
	m.Level = m.Classify()
	return m
}

// NewClosedSession creates a closed session ending at the given time
func NewClosedSession(id string, userID int64, end time.Time, totalWords, correctWords int, accuracy, wpm float64) domain.Session {
	start := end.Add(-10 * time.Minute)
	return domain.Session{
		ID:             id,
		UserID:         userID,
		StartTime:      start,
		EndTime:        &end,
		Level:          domain.LevelBeginner,
		TotalWords:     totalWords,
		CorrectWords:   correctWords,
		Accuracy:       accuracy,
		WordsPerMinute: wpm,
	}
}

// NewTestSummary creates a progress summary with the given session count,
// words and streak
func NewTestSummary(userID int64, sessions, words, streak int, accuracy, wpm float64) *domain.ProgressSummary {
	now := time.Now()
	return &domain.ProgressSummary{
		UserID:          userID,
		CurrentLevel:    domain.LevelFor(words, accuracy),
		TotalSessions:   sessions,
		TotalWordsTyped: words,
		AverageAccuracy: accuracy,
		AverageWPM:      wpm,
		Streak:          streak,
		LastSessionDate: &now,
	}
}
