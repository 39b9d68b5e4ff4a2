package service

import (
	"fmt"
	"sort"
	"time"

	"typelearn/internal/domain"
	"typelearn/internal/repository"

	"go.uber.org/zap"
)

// ProgressService recomputes per-user progress summaries from the closed
// session history. Recompute fully replaces the stored row; nothing is
// patched incrementally.
type ProgressService struct {
	sessionRepo  repository.SessionRepository
	progressRepo repository.ProgressRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewProgressService creates a new progress service
func NewProgressService(sessionRepo repository.SessionRepository, progressRepo repository.ProgressRepository, logger *zap.Logger) *ProgressService {
	return &ProgressService{
		sessionRepo:  sessionRepo,
		progressRepo: progressRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Recompute rebuilds the user's summary from all closed sessions and
// upserts it. Callers must hold the user's lock.
func (s *ProgressService) Recompute(userID int64) (*domain.ProgressSummary, error) {
	sessions, err := s.sessionRepo.ListClosedByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	summary := &domain.ProgressSummary{
		UserID:       userID,
		CurrentLevel: domain.LevelBeginner,
	}

	var accuracySum, wpmSum float64
	var lastSession time.Time
	for i := range sessions {
		sess := &sessions[i]
		summary.TotalSessions++
		summary.TotalWordsTyped += sess.TotalWords
		accuracySum += sess.Accuracy
		wpmSum += sess.WordsPerMinute
		if sess.EndTime.After(lastSession) {
			lastSession = *sess.EndTime
		}
	}

	if summary.TotalSessions > 0 {
		summary.AverageAccuracy = accuracySum / float64(summary.TotalSessions)
		summary.AverageWPM = wpmSum / float64(summary.TotalSessions)
		summary.LastSessionDate = &lastSession
	}

	summary.CurrentLevel = domain.LevelFor(summary.TotalWordsTyped, summary.AverageAccuracy)
	summary.Streak = currentStreak(sessions, s.now())

	if err := s.progressRepo.Upsert(summary); err != nil {
		return nil, fmt.Errorf("upsert summary: %w", err)
	}

	s.logger.Debug("Progress recomputed",
		zap.Int64("user_id", userID),
		zap.Int("sessions", summary.TotalSessions),
		zap.Int("streak", summary.Streak),
	)

	return summary, nil
}

// Summary returns the stored summary for a user. A user with no computed
// summary is a NotFound error, not an empty value.
func (s *ProgressService) Summary(userID int64) (*domain.ProgressSummary, error) {
	summary, err := s.progressRepo.Get(userID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, fmt.Errorf("progress summary for user %d: %w", userID, domain.ErrNotFound)
	}
	return summary, nil
}

// ImprovementRate compares mean accuracy of the newer half of the window
// against the older half and returns the delta as a percentage. Returns 0
// when either half has no sessions; it never divides by zero.
func (s *ProgressService) ImprovementRate(userID int64, windowDays int) (float64, error) {
	now := s.now()
	since := now.AddDate(0, 0, -windowDays)

	sessions, err := s.sessionRepo.ListClosedSince(userID, since)
	if err != nil {
		return 0, err
	}

	midpoint := now.Add(-time.Duration(windowDays) * 24 * time.Hour / 2)

	var olderSum, newerSum float64
	var olderCount, newerCount int
	for i := range sessions {
		sess := &sessions[i]
		if sess.EndTime.Before(midpoint) {
			olderSum += sess.Accuracy
			olderCount++
		} else {
			newerSum += sess.Accuracy
			newerCount++
		}
	}

	if olderCount == 0 || newerCount == 0 {
		return 0, nil
	}

	olderMean := olderSum / float64(olderCount)
	newerMean := newerSum / float64(newerCount)
	if olderMean == 0 {
		return 0, nil
	}

	return (newerMean - olderMean) / olderMean * 100, nil
}

// currentStreak counts consecutive calendar days with at least one closed
// session, walking backward from today. The most recent practice day may be
// today or yesterday; any older anchor means the streak is already broken.
func currentStreak(sessions []domain.Session, today time.Time) int {
	dates := distinctDatesDesc(sessions)
	if len(dates) == 0 {
		return 0
	}

	todayMidnight := midnight(today)

	anchor := daysBetween(dates[0], todayMidnight)
	if anchor > 1 {
		return 0
	}

	streak := 0
	for _, d := range dates {
		diff := daysBetween(d, todayMidnight)
		if diff == anchor+streak {
			streak++
		} else if diff > anchor+streak {
			break
		}
	}

	return streak
}

// daysBetween counts calendar days from an earlier midnight to a later one,
// rounding so DST-shortened or -lengthened days still count as one day.
func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours()/24 + 0.5)
}

// distinctDatesDesc returns the distinct local calendar days of the
// sessions' end times, newest first.
func distinctDatesDesc(sessions []domain.Session) []time.Time {
	seen := make(map[time.Time]bool)
	for i := range sessions {
		if sessions[i].EndTime == nil {
			continue
		}
		seen[midnight(*sessions[i].EndTime)] = true
	}

	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	return dates
}

// midnight truncates a time to local midnight.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
