// Package config loads application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server      ServerConfig
	Storage     StorageConfig
	Maintenance MaintenanceConfig
	Log         LogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StorageConfig holds options for the JSON document store.
type StorageConfig struct {
	// DataDir is the directory holding the database file and the backups
	// subdirectory.
	DataDir string

	// DatabaseFile is the profiles document filename inside DataDir.
	DatabaseFile string

	// BackupRetentionDays is how long pre-write backups are kept.
	BackupRetentionDays int
}

// MaintenanceConfig holds scheduler-related settings.
type MaintenanceConfig struct {
	// CleanupCron is the cron spec for the backup retention sweep.
	CleanupCron string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string
	Development bool
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Storage: StorageConfig{
			DataDir:             getenvWithDefault("DATA_DIR", "data"),
			DatabaseFile:        getenvWithDefault("DATABASE_FILE", "profiles.json"),
			BackupRetentionDays: getenvInt("BACKUP_RETENTION_DAYS", 7),
		},
		Maintenance: MaintenanceConfig{
			CleanupCron: getenvWithDefault("BACKUP_CLEANUP_CRON", "30 3 * * *"),
		},
		Log: LogConfig{
			Level:       getenvWithDefault("LOG_LEVEL", "info"),
			Development: getenvWithDefault("APP_ENV", "development") == "development",
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Storage.DataDir == "" {
		return errors.New("DATA_DIR must be provided")
	}

	if c.Storage.DatabaseFile == "" || filepath.Base(c.Storage.DatabaseFile) != c.Storage.DatabaseFile {
		return errors.New("DATABASE_FILE must be a bare filename")
	}

	if c.Storage.BackupRetentionDays <= 0 {
		return errors.New("BACKUP_RETENTION_DAYS must be positive")
	}

	if c.Maintenance.CleanupCron == "" {
		return errors.New("BACKUP_CLEANUP_CRON must be provided")
	}

	return nil
}

// DatabasePath returns the full path of the profiles document.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Storage.DataDir, c.Storage.DatabaseFile)
}

// BackupDir returns the backup directory path.
func (c *Config) BackupDir() string {
	return filepath.Join(c.Storage.DataDir, "backups")
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
