package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, "profiles.json", cfg.Storage.DatabaseFile)
	assert.Equal(t, 7, cfg.Storage.BackupRetentionDays)
	assert.Equal(t, "30 3 * * *", cfg.Maintenance.CleanupCron)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DATA_DIR", "/var/lib/lavka")
	t.Setenv("BACKUP_RETENTION_DAYS", "14")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/var/lib/lavka", cfg.Storage.DataDir)
	assert.Equal(t, 14, cfg.Storage.BackupRetentionDays)
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	t.Setenv("BACKUP_RETENTION_DAYS", "soon")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Storage.BackupRetentionDays)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:      ServerConfig{Port: "8080"},
			Storage:     StorageConfig{DataDir: "data", DatabaseFile: "profiles.json", BackupRetentionDays: 7},
			Maintenance: MaintenanceConfig{CleanupCron: "30 3 * * *"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing port", func(c *Config) { c.Server.Port = "" }},
		{"missing data dir", func(c *Config) { c.Storage.DataDir = "" }},
		{"database file with path", func(c *Config) { c.Storage.DatabaseFile = "nested/profiles.json" }},
		{"zero retention", func(c *Config) { c.Storage.BackupRetentionDays = 0 }},
		{"missing cron", func(c *Config) { c.Maintenance.CleanupCron = "" }},
	}

	require.NoError(t, base().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPathHelpers(t *testing.T) {
	cfg := &Config{Storage: StorageConfig{DataDir: "/srv/lavka", DatabaseFile: "profiles.json"}}
	assert.Equal(t, filepath.Join("/srv/lavka", "profiles.json"), cfg.DatabasePath())
	assert.Equal(t, filepath.Join("/srv/lavka", "backups"), cfg.BackupDir())
}
