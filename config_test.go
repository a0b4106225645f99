package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestApplyEnv(t *testing.T) {
	cfg := defaultConfig()
	err := cfg.applyEnv(envMap(map[string]string{
		"DB_URL":             "postgres://localhost/stride",
		"PORT":               "8080",
		"CORS_ORIGINS":       "https://a.example, https://b.example,",
		"LOGIN_RATE_PER_MIN": "5",
	}))
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/stride", cfg.Database.URL)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 5, cfg.Auth.LoginRatePerMinute)
	assert.Equal(t, "/metrics", cfg.Server.MetricsPath)
}

func TestApplyEnv_Empty(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.applyEnv(envMap(nil)))
	assert.Equal(t, defaultConfig(), cfg)
}

func TestApplyEnv_BadRate(t *testing.T) {
	for _, v := range []string{"ten", "0", "-3"} {
		cfg := defaultConfig()
		assert.Error(t, cfg.applyEnv(envMap(map[string]string{"LOGIN_RATE_PER_MIN": v})), v)
	}
}

func TestLoadConfig_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stride.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":4000"
  cors_origins: ["https://app.example"]
database:
  url: postgres://yaml/stride
auth:
  login_rate_per_minute: 3
`), 0o600))

	t.Chdir(dir) // no .env here
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DB_URL", "")
	t.Setenv("PORT", "5000")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("LOGIN_RATE_PER_MIN", "")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, []string{"https://app.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "postgres://yaml/stride", cfg.Database.URL)
	assert.Equal(t, 3, cfg.Auth.LoginRatePerMinute)
	assert.Equal(t, "/metrics", cfg.Server.MetricsPath)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DB_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("LOGIN_RATE_PER_MIN", "")

	t.Run("explicit path missing", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", filepath.Join(dir, "nope.yaml"))
		_, err := loadConfig()
		assert.Error(t, err)
	})

	t.Run("no DB_URL", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "")
		_, err := loadConfig()
		assert.EqualError(t, err, "DB_URL is not set")
	})
}
