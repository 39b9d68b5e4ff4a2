package service

import (
	"fmt"
	"testing"
	"time"

	"typelearn/internal/domain"
	"typelearn/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProgressService_Recompute(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	sessions := []domain.Session{
		testutil.NewClosedSession("sess-1", 123, now.AddDate(0, 0, -1), 20, 18, 90, 30),
		testutil.NewClosedSession("sess-2", 123, now.Add(-time.Hour), 30, 24, 80, 40),
	}

	mockSessions := new(testutil.MockSessionRepository)
	mockProgress := new(testutil.MockProgressRepository)

	mockSessions.On("ListClosedByUser", int64(123)).Return(sessions, nil)
	mockProgress.On("Upsert", mock.MatchedBy(func(p *domain.ProgressSummary) bool {
		return p.UserID == 123 && p.TotalSessions == 2 && p.TotalWordsTyped == 50 &&
			p.AverageAccuracy == 85 && p.AverageWPM == 35 && p.Streak == 2
	})).Return(nil)

	service := NewProgressService(mockSessions, mockProgress, testutil.NewTestLogger())
	service.now = func() time.Time { return now }

	summary, err := service.Recompute(123)

	assert.NoError(t, err)
	assert.NotNil(t, summary)
	assert.Equal(t, domain.LevelBeginner, summary.CurrentLevel)
	assert.Equal(t, 2, summary.Streak)
	assert.NotNil(t, summary.LastSessionDate)
	assert.Equal(t, now.Add(-time.Hour), *summary.LastSessionDate)
	mockSessions.AssertExpectations(t)
	mockProgress.AssertExpectations(t)
}

func TestProgressService_Recompute_NoSessions(t *testing.T) {
	mockSessions := new(testutil.MockSessionRepository)
	mockProgress := new(testutil.MockProgressRepository)

	mockSessions.On("ListClosedByUser", int64(123)).Return([]domain.Session{}, nil)
	mockProgress.On("Upsert", mock.MatchedBy(func(p *domain.ProgressSummary) bool {
		return p.TotalSessions == 0 && p.CurrentLevel == domain.LevelBeginner &&
			p.Streak == 0 && p.LastSessionDate == nil
	})).Return(nil)

	service := NewProgressService(mockSessions, mockProgress, testutil.NewTestLogger())

	summary, err := service.Recompute(123)

	assert.NoError(t, err)
	assert.Equal(t, 0, summary.TotalSessions)
	mockSessions.AssertExpectations(t)
	mockProgress.AssertExpectations(t)
}

func TestProgressService_Summary_NotFound(t *testing.T) {
	mockSessions := new(testutil.MockSessionRepository)
	mockProgress := new(testutil.MockProgressRepository)

	mockProgress.On("Get", int64(123)).Return(nil, nil)

	service := NewProgressService(mockSessions, mockProgress, testutil.NewTestLogger())

	summary, err := service.Summary(123)

	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, summary)
	mockProgress.AssertExpectations(t)
}

func TestProgressService_Summary_Found(t *testing.T) {
	stored := testutil.NewTestSummary(123, 10, 200, 2, 85, 35)

	mockSessions := new(testutil.MockSessionRepository)
	mockProgress := new(testutil.MockProgressRepository)

	mockProgress.On("Get", int64(123)).Return(stored, nil)

	service := NewProgressService(mockSessions, mockProgress, testutil.NewTestLogger())

	summary, err := service.Summary(123)

	assert.NoError(t, err)
	assert.Equal(t, stored, summary)
	mockProgress.AssertExpectations(t)
}

func TestProgressService_ImprovementRate(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		sessions []domain.Session
		expected float64
	}{
		{
			name: "newer half better",
			sessions: []domain.Session{
				testutil.NewClosedSession("old-1", 123, now.AddDate(0, 0, -10), 20, 16, 80, 30),
				testutil.NewClosedSession("new-1", 123, now.AddDate(0, 0, -2), 20, 18, 90, 30),
			},
			expected: 12.5,
		},
		{
			name: "no older sessions",
			sessions: []domain.Session{
				testutil.NewClosedSession("new-1", 123, now.AddDate(0, 0, -2), 20, 18, 90, 30),
			},
			expected: 0,
		},
		{
			name:     "empty window",
			sessions: []domain.Session{},
			expected: 0,
		},
		{
			name: "older mean is zero",
			sessions: []domain.Session{
				testutil.NewClosedSession("old-1", 123, now.AddDate(0, 0, -10), 20, 0, 0, 30),
				testutil.NewClosedSession("new-1", 123, now.AddDate(0, 0, -2), 20, 18, 90, 30),
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSessions := new(testutil.MockSessionRepository)
			mockProgress := new(testutil.MockProgressRepository)

			mockSessions.On("ListClosedSince", int64(123), now.AddDate(0, 0, -14)).Return(tt.sessions, nil)

			service := NewProgressService(mockSessions, mockProgress, testutil.NewTestLogger())
			service.now = func() time.Time { return now }

			rate, err := service.ImprovementRate(123, 14)

			assert.NoError(t, err)
			assert.InDelta(t, tt.expected, rate, 0.001)
			mockSessions.AssertExpectations(t)
		})
	}
}

func TestProgressService_ImprovementRate_RepoError(t *testing.T) {
	mockSessions := new(testutil.MockSessionRepository)
	mockProgress := new(testutil.MockProgressRepository)

	mockSessions.On("ListClosedSince", int64(123), mock.Anything).Return(nil, fmt.Errorf("db error"))

	service := NewProgressService(mockSessions, mockProgress, testutil.NewTestLogger())

	rate, err := service.ImprovementRate(123, 14)

	assert.Error(t, err)
	assert.Equal(t, 0.0, rate)
	mockSessions.AssertExpectations(t)
}

func TestCurrentStreak(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	day := func(daysAgo int) time.Time {
		return now.AddDate(0, 0, -daysAgo)
	}

	tests := []struct {
		name     string
		endTimes []time.Time
		expected int
	}{
		{
			name:     "no sessions",
			endTimes: nil,
			expected: 0,
		},
		{
			name:     "session today only",
			endTimes: []time.Time{day(0)},
			expected: 1,
		},
		{
			name:     "three consecutive days ending today",
			endTimes: []time.Time{day(0), day(1), day(2)},
			expected: 3,
		},
		{
			name:     "yesterday keeps the streak intact",
			endTimes: []time.Time{day(1), day(2)},
			expected: 2,
		},
		{
			name:     "gap two days ago breaks it",
			endTimes: []time.Time{day(2), day(3)},
			expected: 0,
		},
		{
			name:     "gap in the middle stops the walk",
			endTimes: []time.Time{day(0), day(1), day(5), day(6)},
			expected: 2,
		},
		{
			name:     "multiple sessions on one day count once",
			endTimes: []time.Time{day(0), day(0).Add(-2 * time.Hour), day(1)},
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sessions []domain.Session
			for i, end := range tt.endTimes {
				sessions = append(sessions, testutil.NewClosedSession(
					fmt.Sprintf("sess-%d", i), 123, end, 10, 9, 90, 30))
			}

			assert.Equal(t, tt.expected, currentStreak(sessions, now))
		})
	}
}
