package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"http_addr":           "0.0.0.0:8080",
		"data_dir":            "/var/lib/fishfarmer",
		"preferences_file":    "prefs.json",
		"users_file":          "accounts.json",
		"frontend_dir":        "/srv/frontend",
		"storage_backend":     "postgres",
		"database_dsn":        "postgres://fish@db/fish",
		"gemini_api_key":      "key-123",
		"gemini_model":        "gemini-2.5-pro",
		"llm_timeout":         "45s",
		"llm_rate_per_second": 2.5,
		"llm_burst":           3,
		"bcrypt_cost":         10,
		"log_backend":         "zap",
		"log_level":           "debug",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr)
		assert.Equal(t, "/var/lib/fishfarmer", cfg.DataDir)
		assert.Equal(t, "prefs.json", cfg.PreferencesFile)
		assert.Equal(t, "accounts.json", cfg.UsersFile)
		assert.Equal(t, "/srv/frontend", cfg.FrontendDir)
		assert.Equal(t, StoragePostgres, cfg.StorageBackend)
		assert.Equal(t, "postgres://fish@db/fish", cfg.DatabaseDSN)
		assert.Equal(t, "key-123", cfg.GeminiAPIKey)
		assert.Equal(t, "gemini-2.5-pro", cfg.GeminiModel)
		assert.Equal(t, 45*time.Second, cfg.LLMTimeout)
		assert.Equal(t, 2.5, cfg.LLMRatePerSecond)
		assert.Equal(t, 3, cfg.LLMBurst)
		assert.Equal(t, 10, cfg.BcryptCost)
		assert.Equal(t, "zap", cfg.LogBackend)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("partial json keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"http_addr": ":1234"})
		os.Args = []string{"testbin", "-c", partial}

		var cfg Config
		cfg.LoadDefaults()
		parseJson(&cfg)

		assert.Equal(t, ":1234", cfg.HTTPAddr)
		assert.Equal(t, "users.json", cfg.UsersFile)
		assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	})

	t.Run("no config flag means no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{HTTPAddr: "defaults:1234", DataDir: "data"}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.HTTPAddr)
		assert.Equal(t, "data", cfg.DataDir)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
