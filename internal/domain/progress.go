package domain

import "time"

// Learner levels, ordered from introductory to highest tier.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelExpert       = "expert"
)

// ProgressSummary is the one-row-per-user aggregate over closed sessions.
// It is fully recomputed and upserted; it is never edited by hand.
type ProgressSummary struct {
	UserID          int64      `json:"user_id" validate:"required"`
	CurrentLevel    string     `json:"current_level" validate:"oneof=beginner intermediate advanced expert"`
	TotalSessions   int        `json:"total_sessions" validate:"min=0"`
	TotalWordsTyped int        `json:"total_words_typed" validate:"min=0"`
	AverageAccuracy float64    `json:"average_accuracy" validate:"min=0,max=100"`
	AverageWPM      float64    `json:"average_wpm" validate:"min=0"`
	Streak          int        `json:"streak" validate:"min=0"`
	LastSessionDate *time.Time `json:"last_session_date"`
}

// LevelFor returns the learner tier for the given totals. Every tier above
// beginner requires both a minimum word count and a minimum average accuracy.
func LevelFor(totalWords int, averageAccuracy float64) string {
	switch {
	case totalWords >= 5000 && averageAccuracy >= 95:
		return LevelExpert
	case totalWords >= 2000 && averageAccuracy >= 85:
		return LevelAdvanced
	case totalWords >= 500 && averageAccuracy >= 70:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}
