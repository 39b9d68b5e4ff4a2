package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the engine daemon with background maintenance jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.close()

	logger := eng.logger
	logger.Info("Engine started")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runBackupJob(ctx, eng)
	go runSweepJob(ctx, eng)
	go runPatternCleanupJob(ctx, eng)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping engine...")
	cancel()

	// Final backup before exit; a failure here must not block shutdown
	if err := writeScheduledBackup(eng); err != nil {
		logger.Error("Final backup failed", zap.Error(err))
	}

	logger.Info("Engine stopped gracefully")
	return nil
}

// runBackupJob writes a full snapshot on an interval. Failures are logged
// and never prevent the next scheduled attempt.
func runBackupJob(ctx context.Context, eng *engine) {
	interval := time.Duration(eng.cfg.Maintenance.BackupIntervalHours) * time.Hour

	// Run once at startup
	if err := writeScheduledBackup(eng); err != nil {
		eng.logger.Error("Failed to run initial backup", zap.Error(err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			eng.logger.Info("Backup job stopped")
			return
		case <-ticker.C:
			eng.logger.Info("Running scheduled backup")
			if err := writeScheduledBackup(eng); err != nil {
				eng.logger.Error("Failed to run scheduled backup", zap.Error(err))
			}
		}
	}
}

// writeScheduledBackup exports all users to a timestamped file and refreshes
// the cached latest copy.
func writeScheduledBackup(eng *engine) error {
	snap, err := eng.manager.ExportAll()
	if err != nil {
		return err
	}

	name := "typelearn-" + snap.ExportedAt.Format("20060102-150405") + ".json"
	path := filepath.Join(eng.cfg.Maintenance.BackupDir, name)
	if err := eng.manager.WriteFile(snap, path, eng.cfg.Maintenance.BackupPassphrase); err != nil {
		return err
	}

	if err := eng.manager.SaveToCache(snap); err != nil {
		return err
	}

	eng.logger.Info("Backup written", zap.String("path", path))
	return nil
}

// runSweepJob removes expired cache entries on an interval.
func runSweepJob(ctx context.Context, eng *engine) {
	interval := time.Duration(eng.cfg.Maintenance.CacheSweepMinutes) * time.Minute

	if _, err := eng.cache.SweepExpired(); err != nil {
		eng.logger.Error("Failed to run initial cache sweep", zap.Error(err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			eng.logger.Info("Cache sweep job stopped")
			return
		case <-ticker.C:
			if _, err := eng.cache.SweepExpired(); err != nil {
				eng.logger.Error("Failed to sweep cache", zap.Error(err))
			}
		}
	}
}

// runPatternCleanupJob removes stale mistake patterns for every user once
// a day.
func runPatternCleanupJob(ctx context.Context, eng *engine) {
	if err := cleanupAllPatterns(eng); err != nil {
		eng.logger.Error("Failed to run initial pattern cleanup", zap.Error(err))
	}

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			eng.logger.Info("Pattern cleanup job stopped")
			return
		case <-ticker.C:
			eng.logger.Info("Running scheduled pattern cleanup")
			if err := cleanupAllPatterns(eng); err != nil {
				eng.logger.Error("Failed to run scheduled pattern cleanup", zap.Error(err))
			}
		}
	}
}

func cleanupAllPatterns(eng *engine) error {
	users, err := eng.users.List()
	if err != nil {
		return err
	}

	for _, u := range users {
		if _, err := eng.patterns.Cleanup(u.UserID, eng.cfg.Maintenance.PatternRetentionDays); err != nil {
			eng.logger.Error("Pattern cleanup failed for user",
				zap.Int64("user_id", u.UserID),
				zap.Error(err),
			)
		}
	}
	return nil
}
