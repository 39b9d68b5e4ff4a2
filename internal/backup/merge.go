package backup

import "typelearn/internal/domain"

// MergeStrategy resolves a conflict between two snapshots of the same data.
// It is an interface so a future per-record merge can replace the current
// whole-snapshot policy without touching callers.
type MergeStrategy interface {
	Merge(local, remote *domain.Snapshot) *domain.Snapshot
}

// LastWriteWins picks the snapshot with the newer export timestamp
// wholesale. It never reconciles per-record edits; on a tie the local
// snapshot wins.
type LastWriteWins struct{}

// Merge returns the newer of the two snapshots.
func (LastWriteWins) Merge(local, remote *domain.Snapshot) *domain.Snapshot {
	if remote.ExportedAt.After(local.ExportedAt) {
		return remote
	}
	return local
}
