package domain

import "time"

// CacheEntry is one row of the process-wide key/value cache. ExpiresAt nil
// means the entry never expires on its own. Expiry is lazy: an expired entry
// may still physically exist until the next sweep, but reads treat it as
// absent.
type CacheEntry struct {
	Key       string     `json:"key"`
	Value     string     `json:"value"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Expired reports whether the entry is past its expiry at the given instant.
func (e *CacheEntry) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && !e.ExpiresAt.After(now)
}
