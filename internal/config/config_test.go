package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Mode)
	assert.Equal(t, "168h", cfg.Session.TTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
  mode: production
database:
  host: db.internal
  dbname: madrassa_prod
session:
  ttl: 24h
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "24h", cfg.Session.TTL)
	assert.Contains(t, cfg.GetPostgresConnectionString(), "db.internal")
	assert.Contains(t, cfg.GetPostgresConnectionString(), "madrassa_prod")
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
`)
	t.Setenv("PORT", "3000")
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/madrassa?sslmode=require")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "postgres://app:secret@db:5432/madrassa?sslmode=require", cfg.GetPostgresConnectionString())
}

func TestLoadConfigValidation(t *testing.T) {
	t.Run("bad server mode", func(t *testing.T) {
		path := writeConfig(t, "server:\n  mode: staging\n")
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "server mode")
	})

	t.Run("bad session ttl", func(t *testing.T) {
		path := writeConfig(t, "session:\n  ttl: one week\n")
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "session TTL")
	})
}
