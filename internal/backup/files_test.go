package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"typelearn/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testSnapshot(now time.Time) *domain.Snapshot {
	snap := &domain.Snapshot{
		Version:    domain.SnapshotVersion,
		ExportedAt: now,
		Users:      []domain.User{{UserID: 123, Name: "ada", CreatedAt: now}},
	}
	normalize(snap)
	return snap
}

func TestManager_WriteFile_ReadFile_Plain(t *testing.T) {
	manager, _ := newManagerForTest()

	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "snapshot.json")

	err := manager.WriteFile(testSnapshot(now), path, "")
	assert.NoError(t, err)

	// Without a passphrase the file on disk is readable JSON.
	raw, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.True(t, json.Valid(raw))

	loaded, err := manager.ReadFile(path, "")
	assert.NoError(t, err)
	assert.Equal(t, domain.SnapshotVersion, loaded.Version)
	assert.Len(t, loaded.Users, 1)
	assert.Equal(t, "ada", loaded.Users[0].Name)
}

func TestManager_WriteFile_ReadFile_Obfuscated(t *testing.T) {
	manager, _ := newManagerForTest()

	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "snapshot.json")

	err := manager.WriteFile(testSnapshot(now), path, "correct horse")
	assert.NoError(t, err)

	// With a passphrase the file on disk is not readable JSON.
	raw, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.False(t, json.Valid(raw))

	loaded, err := manager.ReadFile(path, "correct horse")
	assert.NoError(t, err)
	assert.Len(t, loaded.Users, 1)
}

func TestManager_ReadFile_WrongPassphrase(t *testing.T) {
	manager, _ := newManagerForTest()

	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "snapshot.json")

	assert.NoError(t, manager.WriteFile(testSnapshot(now), path, "correct horse"))

	loaded, err := manager.ReadFile(path, "battery staple")

	assert.Error(t, err)
	assert.Nil(t, loaded)

	var decErr *domain.DecryptionError
	assert.ErrorAs(t, err, &decErr)
}

func TestManager_ReadFile_Missing(t *testing.T) {
	manager, _ := newManagerForTest()

	loaded, err := manager.ReadFile(filepath.Join(t.TempDir(), "missing.json"), "")

	assert.Error(t, err)
	assert.Nil(t, loaded)
}

func TestManager_WriteFile_CreatesDirectory(t *testing.T) {
	manager, _ := newManagerForTest()

	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "nested", "dir", "snapshot.json")

	err := manager.WriteFile(testSnapshot(now), path, "")

	assert.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestManager_SaveToCache(t *testing.T) {
	manager, mocks := newManagerForTest()

	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	snap := testSnapshot(now)

	mocks.cache.On("Upsert", mock.MatchedBy(func(e *domain.CacheEntry) bool {
		return e.Key == CacheKeyLatest && e.ExpiresAt == nil
	})).Return(nil)
	mocks.cache.On("Upsert", mock.MatchedBy(func(e *domain.CacheEntry) bool {
		return e.Key == CacheKeyLatestAt && e.Value == now.Format(time.RFC3339)
	})).Return(nil)

	err := manager.SaveToCache(snap)

	assert.NoError(t, err)
	mocks.cache.AssertExpectations(t)
}

func TestManager_LoadFromCache(t *testing.T) {
	manager, mocks := newManagerForTest()

	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	data, err := json.Marshal(testSnapshot(now))
	assert.NoError(t, err)

	mocks.cache.On("Get", CacheKeyLatest).Return(&domain.CacheEntry{
		Key:       CacheKeyLatest,
		Value:     string(data),
		CreatedAt: now,
	}, nil)

	loaded, err := manager.LoadFromCache()

	assert.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Len(t, loaded.Users, 1)
	mocks.cache.AssertExpectations(t)
}

func TestManager_LoadFromCache_Empty(t *testing.T) {
	manager, mocks := newManagerForTest()

	mocks.cache.On("Get", CacheKeyLatest).Return(nil, nil)

	loaded, err := manager.LoadFromCache()

	assert.NoError(t, err)
	assert.Nil(t, loaded)
	mocks.cache.AssertExpectations(t)
}
