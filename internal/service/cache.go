package service

import (
	"time"

	"typelearn/internal/domain"
	"typelearn/internal/repository"

	"go.uber.org/zap"
)

// CacheService is the process-wide key/value store with optional expiry.
// Expiry is lazy: Get treats an expired-but-unswept entry as absent, and
// SweepExpired is the only operation that reclaims space proactively.
// Safe for concurrent use from multiple user-serialized workers: every
// operation is a single atomic statement against the store.
type CacheService struct {
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewCacheService creates a new cache service
func NewCacheService(cacheRepo repository.CacheRepository, logger *zap.Logger) *CacheService {
	return &CacheService{
		cacheRepo: cacheRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// Set upserts a value. A ttl of zero or less means the entry never expires
// on its own.
func (s *CacheService) Set(key, value string, ttl time.Duration) error {
	now := s.now()
	entry := &domain.CacheEntry{
		Key:       key,
		Value:     value,
		CreatedAt: now,
	}
	if ttl > 0 {
		expires := now.Add(ttl)
		entry.ExpiresAt = &expires
	}
	return s.cacheRepo.Upsert(entry)
}

// Get returns the value for a key. The second return is false when the key
// is absent or expired; expiry is checked at read time even if the row has
// not been swept yet.
func (s *CacheService) Get(key string) (string, bool, error) {
	entry, err := s.cacheRepo.Get(key)
	if err != nil {
		return "", false, err
	}
	if entry == nil || entry.Expired(s.now()) {
		return "", false, nil
	}
	return entry.Value, true, nil
}

// Delete removes a key.
func (s *CacheService) Delete(key string) error {
	return s.cacheRepo.Delete(key)
}

// SweepExpired bulk-deletes every entry whose expiry has passed and returns
// the number of rows removed.
func (s *CacheService) SweepExpired() (int64, error) {
	removed, err := s.cacheRepo.DeleteExpired(s.now())
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		s.logger.Debug("Swept expired cache entries", zap.Int64("removed", removed))
	}

	return removed, nil
}
