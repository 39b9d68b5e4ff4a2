package domain

import "time"

// PatternType classifies a character-level typing mistake.
type PatternType string

const (
	// PatternSubstitution: a character was typed but differs from the expected one.
	PatternSubstitution PatternType = "substitution"
	// PatternOmission: an expected character was not typed at all.
	PatternOmission PatternType = "omission"
)

// MistakePattern is a running frequency counter keyed by
// (UserID, Type, FromChar, ToChar). FromChar or ToChar may be empty when
// one side of the comparison has no character at that index.
type MistakePattern struct {
	UserID          int64       `json:"user_id" validate:"required"`
	Type            PatternType `json:"pattern_type" validate:"oneof=substitution omission"`
	FromChar        string      `json:"from_char"`
	ToChar          string      `json:"to_char"`
	Frequency       int         `json:"frequency" validate:"min=1"`
	FirstOccurrence time.Time   `json:"first_occurrence"`
	LastOccurrence  time.Time   `json:"last_occurrence"`
}
