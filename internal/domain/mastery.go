package domain

import "time"

// MasteryLevel classifies how well a user knows a word.
type MasteryLevel string

const (
	MasteryNew       MasteryLevel = "new"
	MasteryLearning  MasteryLevel = "learning"
	MasteryReviewing MasteryLevel = "reviewing"
	MasteryMastered  MasteryLevel = "mastered"
)

// WordMastery tracks a user's typing and comprehension history for one word.
// Level is always derived from the counts via Classify; callers never set it
// directly. Invariant: TotalSeen == CorrectCount + WrongCount.
type WordMastery struct {
	UserID               int64        `json:"user_id" validate:"required"`
	Word                 string       `json:"word" validate:"required"`
	Category             string       `json:"category"`
	CorrectCount         int          `json:"correct_count" validate:"min=0"`
	WrongCount           int          `json:"wrong_count" validate:"min=0"`
	TotalSeen            int          `json:"total_seen" validate:"min=0"`
	ComprehensionCorrect int          `json:"comprehension_correct" validate:"min=0"`
	ComprehensionWrong   int          `json:"comprehension_wrong" validate:"min=0"`
	Level                MasteryLevel `json:"mastery_level" validate:"oneof=new learning reviewing mastered"`
	LastSeenAt           time.Time    `json:"last_seen_at"`
}

// Classify derives the mastery level from the current counts.
// Rules are ordered; the first match wins.
func (w *WordMastery) Classify() MasteryLevel {
	if w.TotalSeen == 0 {
		return MasteryNew
	}

	typingAccuracy := float64(w.CorrectCount) / float64(w.TotalSeen)

	comprehensionTotal := w.ComprehensionCorrect + w.ComprehensionWrong
	comprehensionAccuracy := 0.0
	if comprehensionTotal > 0 {
		comprehensionAccuracy = float64(w.ComprehensionCorrect) / float64(comprehensionTotal)
	}

	if w.CorrectCount >= 3 && typingAccuracy >= 0.8 &&
		w.ComprehensionCorrect >= 2 && comprehensionAccuracy >= 0.7 {
		return MasteryMastered
	}

	if w.CorrectCount >= 2 && typingAccuracy >= 0.6 {
		return MasteryReviewing
	}

	return MasteryLearning
}
