package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.UsesMemoryStore())
	assert.EqualValues(t, 10, cfg.Database.MaxConns)
	assert.EqualValues(t, 900, cfg.JWT.AccessExpiry)
	assert.Equal(t, "taskhub", cfg.JWT.Issuer)
	assert.EqualValues(t, 64*1024, cfg.Argon2.Memory)
	assert.EqualValues(t, 2, cfg.Argon2.Parallelism)
	assert.Equal(t, 5, cfg.Lockout.MaxAttempts)
	assert.Equal(t, "100-M", cfg.RateLimit.PerIP)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://taskhub@localhost/taskhub")
	t.Setenv("HASH_WORKERS", "4")
	t.Setenv("SECURE_DEVELOPMENT", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, http://localhost:5173")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.False(t, cfg.UsesMemoryStore())
	assert.Equal(t, 4, cfg.Argon2.Workers)
	assert.True(t, cfg.Secure.IsDevelopment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "0")
	_, err := Load()
	assert.ErrorContains(t, err, "JWT_ACCESS_EXPIRY")
}

func TestLoadRejectsHalfBootstrap(t *testing.T) {
	t.Setenv("BOOTSTRAP_ADMIN_USERNAME", "root")
	_, err := Load()
	assert.ErrorContains(t, err, "BOOTSTRAP_ADMIN")
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskhub.yaml")
	require.NoError(t, os.WriteFile(path, []byte("PORT: \"7070\"\nLOCKOUT_MAX_ATTEMPTS: 3\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOCKOUT_MAX_ATTEMPTS", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, 7, cfg.Lockout.MaxAttempts, "environment wins over the file")
}

func TestLoadCORSOriginsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskhub.yaml")
	require.NoError(t, os.WriteFile(path, []byte("CORS_ALLOWED_ORIGINS:\n  - https://app.example.com\n  - https://admin.example.com\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := Load()
	assert.Error(t, err)
}
