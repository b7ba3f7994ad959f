package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "LOG_LEVEL", "MAX_BODY_BYTES", "CORS_ALLOWED_ORIGINS",
	"GEMINI_API_KEY", "GEMINI_MODEL_ID", "GEMINI_BASE_URL",
	"GEMINI_API_VERSION", "GEMINI_BACKEND", "GEMINI_TIMEOUT",
}

// clearEnv blanks every key; viper ignores empty env values by default.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := load("")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.Gemini.BaseURL)
	assert.Equal(t, "v1beta", cfg.Gemini.APIVersion)
	assert.Equal(t, BackendREST, cfg.Gemini.Backend)
	assert.Equal(t, 30*time.Second, cfg.Gemini.Timeout)
	assert.False(t, cfg.Gemini.HasAPIKey())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("GEMINI_API_KEY", " secret ")
	t.Setenv("GEMINI_MODEL_ID", "gemini-2.0-flash")
	t.Setenv("GEMINI_BASE_URL", "http://localhost:9999/")
	t.Setenv("GEMINI_BACKEND", "sdk")
	t.Setenv("GEMINI_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := load("")
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "secret", cfg.Gemini.APIKey)
	assert.True(t, cfg.Gemini.HasAPIKey())
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, "http://localhost:9999", cfg.Gemini.BaseURL)
	assert.Equal(t, BackendSDK, cfg.Gemini.Backend)
	assert.Equal(t, 5*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadDotEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("GEMINI_API_KEY=from-file\nPORT=7000\n"), 0o600))

	cfg, err := load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Gemini.APIKey)
	assert.Equal(t, 7000, cfg.Port)

	t.Setenv("PORT", "7001")
	cfg, err = load(path)
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.Port, "environment wins over .env")
}

func TestLoadMissingDotEnvIsIgnored(t *testing.T) {
	clearEnv(t)
	_, err := load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"port out of range": {"PORT": "70000"},
		"unknown backend":   {"GEMINI_BACKEND": "grpc"},
		"unknown log level": {"LOG_LEVEL": "verbose"},
		"bad timeout":       {"GEMINI_TIMEOUT": "soon"},
		"negative timeout":  {"GEMINI_TIMEOUT": "-1s"},
		"bad base url":      {"GEMINI_BASE_URL": "not a url"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := load("")
			assert.Error(t, err)
		})
	}
}
