package postgres

import (
	"database/sql"
	"time"

	"typelearn/internal/domain"
)

// CacheRepo implements repository.CacheRepository
type CacheRepo struct {
	db *sql.DB
}

// NewCacheRepo creates a new cache repository
func NewCacheRepo(db *sql.DB) *CacheRepo {
	return &CacheRepo{db: db}
}

// Upsert inserts or replaces the entry for a key. The upsert is a single
// statement so concurrent writers from different user workers stay safe.
func (r *CacheRepo) Upsert(e *domain.CacheEntry) error {
	query := `
		INSERT INTO cache_entries (key, value, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key)
		DO UPDATE SET value = $2, created_at = $3, expires_at = $4
	`
	_, err := r.db.Exec(query, e.Key, e.Value, e.CreatedAt, nullableTime(e.ExpiresAt))
	return err
}

// Get returns the raw entry, expired or not, or (nil, nil) if the key is
// absent. Expiry filtering is the service's job.
func (r *CacheRepo) Get(key string) (*domain.CacheEntry, error) {
	var e domain.CacheEntry
	var expiresAt sql.NullTime
	query := `SELECT key, value, created_at, expires_at FROM cache_entries WHERE key = $1`
	err := r.db.QueryRow(query, key).Scan(&e.Key, &e.Value, &e.CreatedAt, &expiresAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if expiresAt.Valid {
		e.ExpiresAt = &expiresAt.Time
	}

	return &e, nil
}

// Delete removes the entry for a key
func (r *CacheRepo) Delete(key string) error {
	query := `DELETE FROM cache_entries WHERE key = $1`
	_, err := r.db.Exec(query, key)
	return err
}

// DeleteExpired bulk-removes entries whose expiry has passed, returning the
// number of rows removed
func (r *CacheRepo) DeleteExpired(now time.Time) (int64, error) {
	query := `DELETE FROM cache_entries WHERE expires_at IS NOT NULL AND expires_at <= $1`
	result, err := r.db.Exec(query, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
