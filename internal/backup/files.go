package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"typelearn/internal/domain"
)

// WriteFile marshals the snapshot and writes it to path, obfuscating the
// payload when a passphrase is given. The write goes to a temp file in the
// target directory first and is renamed into place, so an interrupted
// backup never leaves a partially-written snapshot behind.
func (m *Manager) WriteFile(snap *domain.Snapshot, path, passphrase string) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	payload := data
	if passphrase != "" {
		encoded, err := Obfuscate(string(data), passphrase)
		if err != nil {
			return fmt.Errorf("obfuscate snapshot: %w", err)
		}
		payload = []byte(encoded)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename snapshot into place: %w", err)
	}

	return nil
}

// ReadFile loads a snapshot written by WriteFile, deobfuscating when a
// passphrase is given, and validates it.
func (m *Manager) ReadFile(path, passphrase string) (*domain.Snapshot, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	data := payload
	if passphrase != "" {
		plain, err := Deobfuscate(string(payload), passphrase)
		if err != nil {
			return nil, err
		}
		data = []byte(plain)
	}

	return ParseSnapshot(data)
}

// SaveToCache stores the snapshot as the local latest copy under a fixed
// cache key plus a companion timestamp key. Neither entry expires.
func (m *Manager) SaveToCache(snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := m.cache.Set(CacheKeyLatest, string(data), 0); err != nil {
		return fmt.Errorf("cache snapshot: %w", err)
	}
	if err := m.cache.Set(CacheKeyLatestAt, snap.ExportedAt.Format(time.RFC3339), 0); err != nil {
		return fmt.Errorf("cache snapshot timestamp: %w", err)
	}

	return nil
}

// LoadFromCache returns the cached latest snapshot, or (nil, nil) when no
// snapshot has been cached yet.
func (m *Manager) LoadFromCache() (*domain.Snapshot, error) {
	data, ok, err := m.cache.Get(CacheKeyLatest)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	return ParseSnapshot([]byte(data))
}
