package service

import (
	"testing"
	"time"

	"typelearn/internal/domain"
	"typelearn/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPatternService_Analyze_Substitution(t *testing.T) {
	mockRepo := new(testutil.MockPatternRepository)

	mockRepo.On("Get", int64(123), domain.PatternSubstitution, "a", "o").Return(nil, nil)
	mockRepo.On("Insert", mock.MatchedBy(func(p *domain.MistakePattern) bool {
		return p.Type == domain.PatternSubstitution && p.FromChar == "a" &&
			p.ToChar == "o" && p.Frequency == 1
	})).Return(nil)

	service := NewPatternService(mockRepo, NewUserLocks(), testutil.NewTestLogger())

	count, err := service.Analyze(123, "cat", "cot")

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	mockRepo.AssertExpectations(t)
}

func TestPatternService_Analyze_Omission(t *testing.T) {
	mockRepo := new(testutil.MockPatternRepository)

	mockRepo.On("Get", int64(123), domain.PatternOmission, "t", "").Return(nil, nil)
	mockRepo.On("Insert", mock.MatchedBy(func(p *domain.MistakePattern) bool {
		return p.Type == domain.PatternOmission && p.FromChar == "t" && p.ToChar == ""
	})).Return(nil)

	service := NewPatternService(mockRepo, NewUserLocks(), testutil.NewTestLogger())

	count, err := service.Analyze(123, "cat", "ca")

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	mockRepo.AssertExpectations(t)
}

func TestPatternService_Analyze_RepeatBumpsFrequency(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	existing := &domain.MistakePattern{
		UserID:          123,
		Type:            domain.PatternSubstitution,
		FromChar:        "a",
		ToChar:          "o",
		Frequency:       4,
		FirstOccurrence: now.Add(-time.Hour),
		LastOccurrence:  now.Add(-time.Hour),
	}

	mockRepo := new(testutil.MockPatternRepository)
	mockRepo.On("Get", int64(123), domain.PatternSubstitution, "a", "o").Return(existing, nil)
	mockRepo.On("Update", mock.MatchedBy(func(p *domain.MistakePattern) bool {
		return p.Frequency == 5 && p.LastOccurrence.Equal(now) &&
			p.FirstOccurrence.Equal(now.Add(-time.Hour))
	})).Return(nil)

	service := NewPatternService(mockRepo, NewUserLocks(), testutil.NewTestLogger())
	service.now = func() time.Time { return now }

	count, err := service.Analyze(123, "cat", "cot")

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	mockRepo.AssertExpectations(t)
}

func TestPatternService_Analyze_PerfectTyping(t *testing.T) {
	mockRepo := new(testutil.MockPatternRepository)

	service := NewPatternService(mockRepo, NewUserLocks(), testutil.NewTestLogger())

	count, err := service.Analyze(123, "cat", "cat")

	assert.NoError(t, err)
	assert.Equal(t, 0, count)
	mockRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPatternService_TopPatterns_DefaultLimit(t *testing.T) {
	patterns := []domain.MistakePattern{
		{UserID: 123, Type: domain.PatternSubstitution, FromChar: "a", ToChar: "o", Frequency: 9},
	}

	mockRepo := new(testutil.MockPatternRepository)
	mockRepo.On("ListTop", int64(123), 10).Return(patterns, nil)

	service := NewPatternService(mockRepo, NewUserLocks(), testutil.NewTestLogger())

	result, err := service.TopPatterns(123, 0)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	mockRepo.AssertExpectations(t)
}

func TestPatternService_Cleanup(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	mockRepo := new(testutil.MockPatternRepository)
	mockRepo.On("DeleteOlderThan", int64(123), now.AddDate(0, 0, -90)).Return(int64(4), nil)

	service := NewPatternService(mockRepo, NewUserLocks(), testutil.NewTestLogger())
	service.now = func() time.Time { return now }

	removed, err := service.Cleanup(123, 90)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), removed)
	mockRepo.AssertExpectations(t)
}

func TestDiffChars(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		typed    string
		events   []patternEvent
	}{
		{
			name:     "exact match",
			expected: "cat",
			typed:    "cat",
			events:   nil,
		},
		{
			name:     "single substitution",
			expected: "cat",
			typed:    "cot",
			events: []patternEvent{
				{patternType: domain.PatternSubstitution, fromChar: "a", toChar: "o"},
			},
		},
		{
			name:     "trailing omission",
			expected: "cat",
			typed:    "ca",
			events: []patternEvent{
				{patternType: domain.PatternOmission, fromChar: "t", toChar: ""},
			},
		},
		{
			name:     "extra trailing character",
			expected: "ca",
			typed:    "cat",
			events: []patternEvent{
				{patternType: domain.PatternSubstitution, fromChar: "", toChar: "t"},
			},
		},
		{
			name:     "everything wrong",
			expected: "ab",
			typed:    "xy",
			events: []patternEvent{
				{patternType: domain.PatternSubstitution, fromChar: "a", toChar: "x"},
				{patternType: domain.PatternSubstitution, fromChar: "b", toChar: "y"},
			},
		},
		{
			name:     "multibyte runes compare whole",
			expected: "naïve",
			typed:    "naive",
			events: []patternEvent{
				{patternType: domain.PatternSubstitution, fromChar: "ï", toChar: "i"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.events, diffChars(tt.expected, tt.typed))
		})
	}
}
