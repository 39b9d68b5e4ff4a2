package service

import (
	"fmt"
	"time"

	"typelearn/internal/domain"
	"typelearn/internal/repository"

	"go.uber.org/zap"
)

// Rule is one declarative achievement rule. Qualifies must be free of side
// effects; the only side effect of checking is the insert of new unlocks.
type Rule struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Category    string
	Qualifies   func(*domain.ProgressSummary) bool
}

// DefaultRules returns the fixed, ordered rule list. Unlock order is list
// order, not significance order.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID: "first_session", Title: "First Steps", Icon: "👣", Category: "sessions",
			Description: "Complete your first practice session",
			Qualifies:   func(p *domain.ProgressSummary) bool { return p.TotalSessions >= 1 },
		},
		{
			ID: "sessions_10", Title: "Regular", Icon: "📅", Category: "sessions",
			Description: "Complete 10 practice sessions",
			Qualifies:   func(p *domain.ProgressSummary) bool { return p.TotalSessions >= 10 },
		},
		{
			ID: "sessions_50", Title: "Dedicated", Icon: "🏅", Category: "sessions",
			Description: "Complete 50 practice sessions",
			Qualifies:   func(p *domain.ProgressSummary) bool { return p.TotalSessions >= 50 },
		},
		{
			ID: "sessions_100", Title: "Centurion", Icon: "💯", Category: "sessions",
			Description: "Complete 100 practice sessions",
			Qualifies:   func(p *domain.ProgressSummary) bool { return p.TotalSessions >= 100 },
		},
		{
			ID: "streak_3", Title: "Warming Up", Icon: "🔥", Category: "streaks",
			Description: "Practice 3 days in a row",
			Qualifies:   func(p *domain.ProgressSummary) bool { return p.Streak >= 3 },
		},
		{
			ID: "streak_7", Title: "One Full Week", Icon: "🗓️", Category: "streaks",
			Description: "Practice 7 days in a row",
			Qualifies:   func(p *domain.ProgressSummary) bool { return p.Streak >= 7 },
		},
		{
			ID: "streak_30", Title: "Unstoppable", Icon: "🚀", Category: "streaks",
			Description: "Practice 30 days in a row",
			Qualifies:   func(p *domain.ProgressSummary) bool { return p.Streak >= 30 },
		},
		{
			ID: "words_100", Title: "Wordsmith", Icon: "✏️", Category: "words",
			Description: "Type 100 words",
			Qualifies:   func(p *domain.ProgressSummary) bool { return p.TotalWordsTyped >= 100 },
		},
		{
			ID: "words_1000", Title: "Vocabulary Builder", Icon: "📚", Category: "words",
			Description: "Type 1000 words",
			Qualifies:   func(p *domain.ProgressSummary) bool { return p.TotalWordsTyped >= 1000 },
		},
		{
			ID: "words_5000", Title: "Word Machine", Icon: "⚙️", Category: "words",
			Description: "Type 5000 words",
			Qualifies:   func(p *domain.ProgressSummary) bool { return p.TotalWordsTyped >= 5000 },
		},
		{
			ID: "accuracy_90", Title: "Precision", Icon: "🎯", Category: "accuracy",
			Description: "Keep average accuracy at 90% over at least 5 sessions",
			Qualifies: func(p *domain.ProgressSummary) bool {
				return p.TotalSessions >= 5 && p.AverageAccuracy >= 90
			},
		},
		{
			ID: "speed_40", Title: "Quick Fingers", Icon: "⚡", Category: "speed",
			Description: "Reach an average of 40 words per minute",
			Qualifies:   func(p *domain.ProgressSummary) bool { return p.AverageWPM >= 40 },
		},
		{
			ID: "speed_60", Title: "Speed Demon", Icon: "🏎️", Category: "speed",
			Description: "Reach an average of 60 words per minute",
			Qualifies:   func(p *domain.ProgressSummary) bool { return p.AverageWPM >= 60 },
		},
	}
}

// AchievementService evaluates the rule list against a user's progress
// summary and records new unlocks. Unlocks are write-once: re-checking with
// no new sessions unlocks nothing.
type AchievementService struct {
	achievementRepo repository.AchievementRepository
	progressRepo    repository.ProgressRepository
	rules           []Rule
	logger          *zap.Logger
	now             func() time.Time
}

// NewAchievementService creates a new achievement service with the default
// rule list
func NewAchievementService(achievementRepo repository.AchievementRepository, progressRepo repository.ProgressRepository, logger *zap.Logger) *AchievementService {
	return &AchievementService{
		achievementRepo: achievementRepo,
		progressRepo:    progressRepo,
		rules:           DefaultRules(),
		logger:          logger,
		now:             time.Now,
	}
}

// Check evaluates every rule against the user's stored summary and inserts
// an unlock for each qualifying rule not yet recorded, returning the new
// unlocks in rule order. Callers must hold the user's lock: the
// existence-check-then-insert sequence is not atomic on its own.
func (s *AchievementService) Check(userID int64) ([]domain.Achievement, error) {
	summary, err := s.progressRepo.Get(userID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, fmt.Errorf("progress summary for user %d: %w", userID, domain.ErrNotFound)
	}

	var unlocked []domain.Achievement
	for _, rule := range s.rules {
		if !rule.Qualifies(summary) {
			continue
		}

		exists, err := s.achievementRepo.Exists(userID, rule.ID)
		if err != nil {
			return unlocked, err
		}
		if exists {
			continue
		}

		a := domain.Achievement{
			ID:          rule.ID,
			UserID:      userID,
			Title:       rule.Title,
			Description: rule.Description,
			Icon:        rule.Icon,
			Category:    rule.Category,
			UnlockedAt:  s.now(),
		}
		if err := s.achievementRepo.Insert(&a); err != nil {
			return unlocked, err
		}

		s.logger.Info("Achievement unlocked",
			zap.Int64("user_id", userID),
			zap.String("achievement", rule.ID),
		)
		unlocked = append(unlocked, a)
	}

	return unlocked, nil
}

// ListByUser returns the user's unlocked achievements.
func (s *AchievementService) ListByUser(userID int64) ([]domain.Achievement, error) {
	return s.achievementRepo.ListByUser(userID)
}
