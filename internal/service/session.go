package service

import (
	"fmt"
	"time"

	"typelearn/internal/domain"
	"typelearn/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionService owns the practice session lifecycle. Closing a session
// triggers the progress recompute and the achievement check, so callers get
// the refreshed summary and any new unlocks in one call.
type SessionService struct {
	sessionRepo  repository.SessionRepository
	attemptRepo  repository.AttemptRepository
	userRepo     repository.UserRepository
	progress     *ProgressService
	achievements *AchievementService
	locks        *UserLocks
	logger       *zap.Logger
	now          func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(
	sessionRepo repository.SessionRepository,
	attemptRepo repository.AttemptRepository,
	userRepo repository.UserRepository,
	progress *ProgressService,
	achievements *AchievementService,
	locks *UserLocks,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		sessionRepo:  sessionRepo,
		attemptRepo:  attemptRepo,
		userRepo:     userRepo,
		progress:     progress,
		achievements: achievements,
		locks:        locks,
		logger:       logger,
		now:          time.Now,
	}
}

// CloseResult is what a session close hands back to the UI layer.
type CloseResult struct {
	Session  *domain.Session
	Summary  *domain.ProgressSummary
	Unlocked []domain.Achievement
}

// Start opens a new practice session for the user.
func (s *SessionService) Start(userID int64, level string) (*domain.Session, error) {
	lock := s.locks.For(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.userRepo.EnsureExists(userID); err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartTime: s.now(),
		Level:     level,
	}
	if err := s.sessionRepo.Insert(session); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	s.logger.Info("Session started",
		zap.Int64("user_id", userID),
		zap.String("session_id", session.ID),
		zap.String("level", level),
	)

	return session, nil
}

// Close closes an open session with its final stats, exactly once, then
// recomputes the user's progress and checks achievements.
func (s *SessionService) Close(sessionID string, totalWords, correctWords int, wpm float64) (*CloseResult, error) {
	peek, err := s.sessionRepo.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if peek == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}

	lock := s.locks.For(peek.UserID)
	lock.Lock()
	defer lock.Unlock()

	// The first read only identifies the user. Re-read under the lock:
	// a concurrent close may have finished the session in between.
	session, err := s.sessionRepo.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	if session.Closed() {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrSessionClosed)
	}

	end := s.now()
	session.EndTime = &end
	session.TotalWords = totalWords
	session.CorrectWords = correctWords
	session.WordsPerMinute = wpm
	if totalWords > 0 {
		session.Accuracy = float64(correctWords) / float64(totalWords) * 100
	}

	if err := s.sessionRepo.Update(session); err != nil {
		return nil, fmt.Errorf("close session: %w", err)
	}

	summary, err := s.progress.Recompute(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("recompute progress: %w", err)
	}

	unlocked, err := s.achievements.Check(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("check achievements: %w", err)
	}

	s.logger.Info("Session closed",
		zap.Int64("user_id", session.UserID),
		zap.String("session_id", session.ID),
		zap.Float64("accuracy", session.Accuracy),
		zap.Int("unlocked", len(unlocked)),
	)

	return &CloseResult{Session: session, Summary: summary, Unlocked: unlocked}, nil
}

// RecordAttempt logs one raw typing attempt within a session.
func (s *SessionService) RecordAttempt(userID int64, sessionID, word, typed string, correct bool) error {
	lock := s.locks.For(userID)
	lock.Lock()
	defer lock.Unlock()

	attempt := &domain.TypingAttempt{
		UserID:    userID,
		SessionID: sessionID,
		Word:      word,
		Typed:     typed,
		Correct:   correct,
		CreatedAt: s.now(),
	}
	return s.attemptRepo.Insert(attempt)
}

// History returns the user's most recently closed sessions, newest first.
func (s *SessionService) History(userID int64, limit int) ([]domain.Session, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.sessionRepo.ListRecentClosed(userID, limit)
}
