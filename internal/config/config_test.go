package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, SourceCSV, cfg.Dataset.Source)
	assert.Equal(t, "./data/Attack.csv", cfg.Dataset.AttackCSV)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 9100, cfg.Monitoring.PrometheusPort)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: 8088
  static_dir: ./web
dataset:
  source: postgres
  sensor_table: public.swat
database:
  postgres:
    host: db.local
    user: viewer
redis:
  enabled: true
  ttl: 1m
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("SWAT_SERVER__PORT", "9000")

	cfg, err := LoadFrom(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "./web", cfg.Server.StaticDir)
	assert.Equal(t, SourcePostgres, cfg.Dataset.Source)
	assert.Equal(t, "public.swat", cfg.Dataset.SensorTable)
	assert.Equal(t, "swat_attacks", cfg.Dataset.AttackTable)
	assert.Equal(t, "db.local", cfg.Database.Postgres.Host)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Minute, cfg.Redis.TTL)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown source", "dataset:\n  source: s3\n"},
		{"postgres without host", "dataset:\n  source: postgres\n"},
		{"bad port", "server:\n  port: -1\n"},
		{"broken yaml", "server: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(tt.yaml), 0o644))
			_, err := LoadFrom(viper.New(), dir)
			assert.Error(t, err)
		})
	}
}

func TestLoadIgnoresRetiredKeys(t *testing.T) {
	dir := t.TempDir()
	yaml := "monitoring:\n  prometheus_port: 9200\n  log_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := LoadFrom(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Monitoring.PrometheusPort)
}
