package backup

import (
	"context"

	"typelearn/internal/domain"

	"go.uber.org/zap"
)

// SyncManager is the placeholder for real-time multi-device sync. Only the
// merge strategy is real today; pushing snapshots to a remote is not
// implemented.
type SyncManager struct {
	merge  MergeStrategy
	logger *zap.Logger
}

// NewSyncManager creates the sync stub with the last-write-wins strategy
func NewSyncManager(logger *zap.Logger) *SyncManager {
	return &SyncManager{merge: LastWriteWins{}, logger: logger}
}

// Resolve applies the configured merge strategy to two snapshots.
func (s *SyncManager) Resolve(local, remote *domain.Snapshot) *domain.Snapshot {
	return s.merge.Merge(local, remote)
}

// Sync always fails with ErrNotImplemented.
func (s *SyncManager) Sync(ctx context.Context) error {
	s.logger.Debug("Sync requested but not implemented")
	return domain.ErrNotImplemented
}
