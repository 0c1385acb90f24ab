package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Запуск из каталога без procure.yaml
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Equal(t, "procure-client.db", cfg.DatabasePath)
	assert.Equal(t, "procure-cookies.txt", cfg.CookieJarPath)
	assert.Equal(t, "localhost", cfg.CookieDomain)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 60*time.Second, cfg.Cache.StaleAfter)
	assert.Equal(t, 5*time.Minute, cfg.Cache.EvictAfter)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "procure.yaml")
	content := `
server_url: https://dashboard.example.com
log_level: debug
cache:
  stale_after: 30s
  evict_after: 10m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://dashboard.example.com", cfg.ServerURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Cache.StaleAfter)
	assert.Equal(t, 10*time.Minute, cfg.Cache.EvictAfter)

	// Незаданные ключи получают значения по умолчанию
	assert.Equal(t, "procure-client.db", cfg.DatabasePath)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PROCURE_SERVER_URL", "https://env.example.com")
	t.Setenv("PROCURE_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.ServerURL)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.level}
			assert.Equal(t, tt.want, cfg.SlogLevel())
		})
	}
}
