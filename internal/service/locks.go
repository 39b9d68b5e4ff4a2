package service

import "sync"

// UserLocks serializes mutating operations per user. None of the engine's
// check-then-write sequences are protected by storage-level atomicity beyond
// a single statement, so every mutating entry point for a user must run under
// that user's lock. Operations on different users run in parallel.
type UserLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewUserLocks creates an empty lock registry
func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[int64]*sync.Mutex)}
}

// For returns the mutex for a user, creating it on first use
func (l *UserLocks) For(userID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	return m
}
