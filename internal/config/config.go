package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all engine configuration
type Config struct {
	Database    DatabaseConfig
	Maintenance MaintenanceConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// MaintenanceConfig holds background job settings
type MaintenanceConfig struct {
	BackupDir            string
	BackupIntervalHours  int
	BackupPassphrase     string
	CacheSweepMinutes    int
	PatternRetentionDays int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "typelearn"),
			User:     getEnv("DB_USER", "typelearn"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Maintenance: MaintenanceConfig{
			BackupDir:        getEnv("BACKUP_DIR", "backups"),
			BackupPassphrase: os.Getenv("BACKUP_PASSPHRASE"),
		},
	}

	var err error
	if cfg.Maintenance.BackupIntervalHours, err = getEnvInt("BACKUP_INTERVAL_HOURS", 24); err != nil {
		return nil, err
	}
	if cfg.Maintenance.CacheSweepMinutes, err = getEnvInt("CACHE_SWEEP_INTERVAL_MINUTES", 60); err != nil {
		return nil, err
	}
	if cfg.Maintenance.PatternRetentionDays, err = getEnvInt("PATTERN_RETENTION_DAYS", 90); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	// The maintenance intervals feed tickers, which reject zero durations.
	if cfg.Maintenance.BackupIntervalHours <= 0 {
		return nil, fmt.Errorf("BACKUP_INTERVAL_HOURS must be positive, got %d", cfg.Maintenance.BackupIntervalHours)
	}
	if cfg.Maintenance.CacheSweepMinutes <= 0 {
		return nil, fmt.Errorf("CACHE_SWEEP_INTERVAL_MINUTES must be positive, got %d", cfg.Maintenance.CacheSweepMinutes)
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
