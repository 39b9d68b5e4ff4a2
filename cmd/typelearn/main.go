package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"typelearn/internal/backup"
	"typelearn/internal/config"
	"typelearn/internal/repository/postgres"
	"typelearn/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "typelearn",
	Short: "Typing practice progress and mastery engine",
	Long:  "typelearn persists practice events as per-word mastery, streaks, achievements and mistake patterns, with snapshot backup and import.",
}

func main() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(cleanupCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// engine bundles the wired services for the commands.
type engine struct {
	cfg      *config.Config
	db       *sql.DB
	logger   *zap.Logger
	mastery  *service.MasteryService
	progress *service.ProgressService
	unlocks  *service.AchievementService
	patterns *service.PatternService
	sessions *service.SessionService
	cache    *service.CacheService
	users    *postgres.UserRepo
	manager  *backup.Manager
	sync     *backup.SyncManager
}

// newEngine initializes logging, config, the database and every service.
func newEngine() (*engine, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	userRepo := postgres.NewUserRepo(db)
	settingsRepo := postgres.NewSettingsRepo(db)
	customWordRepo := postgres.NewCustomWordRepo(db)
	masteryRepo := postgres.NewMasteryRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)
	attemptRepo := postgres.NewAttemptRepo(db)
	progressRepo := postgres.NewProgressRepo(db)
	achievementRepo := postgres.NewAchievementRepo(db)
	patternRepo := postgres.NewPatternRepo(db)
	cacheRepo := postgres.NewCacheRepo(db)

	locks := service.NewUserLocks()
	cacheService := service.NewCacheService(cacheRepo, logger)
	progressService := service.NewProgressService(sessionRepo, progressRepo, logger)
	achievementService := service.NewAchievementService(achievementRepo, progressRepo, logger)

	manager := backup.NewManager(backup.Stores{
		Users:        userRepo,
		Settings:     settingsRepo,
		CustomWords:  customWordRepo,
		Mastery:      masteryRepo,
		Sessions:     sessionRepo,
		Attempts:     attemptRepo,
		Progress:     progressRepo,
		Achievements: achievementRepo,
		Patterns:     patternRepo,
	}, cacheService, locks, logger)

	return &engine{
		cfg:      cfg,
		db:       db,
		logger:   logger,
		mastery:  service.NewMasteryService(masteryRepo, locks, logger),
		progress: progressService,
		unlocks:  achievementService,
		patterns: service.NewPatternService(patternRepo, locks, logger),
		sessions: service.NewSessionService(sessionRepo, attemptRepo, userRepo, progressService, achievementService, locks, logger),
		cache:    cacheService,
		users:    userRepo,
		manager:  manager,
		sync:     backup.NewSyncManager(logger),
	}, nil
}

// close releases the engine's resources.
func (e *engine) close() {
	e.db.Close()
	e.logger.Sync()
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Connection successful
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			logger.Info("No new migrations to apply")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations applied successfully")
	return nil
}
