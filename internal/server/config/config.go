// Package config handles configuration for the FishFarmer server and the
// fishctl tool: defaults, an optional JSON file, environment variables
// (optionally read from a .env file) and command-line flags, applied in
// that order.
package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Storage backends.
const (
	StorageJSON     = "json"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config holds runtime settings.
//
// Fields:
//   - HTTPAddr: bind address of the HTTP server.
//   - DataDir: directory holding PreferencesFile and UsersFile (json backend)
//     or SQLiteFile (sqlite backend).
//   - FrontendDir: directory with the HTML pages and the music/ subdirectory.
//   - StorageBackend: "json", "sqlite" or "postgres"; DatabaseDSN is used
//     for postgres.
//   - GeminiAPIKey / GeminiModel: generative API credentials and model name.
//   - LLMTimeout / LLMRatePerSecond / LLMBurst: outbound call policy.
//   - BcryptCost: work factor for password hashes.
//   - LogBackend / LogLevel: "slog" or "zap", and the minimum level.
type Config struct {
	HTTPAddr         string
	DataDir          string
	PreferencesFile  string
	UsersFile        string
	SQLiteFile       string
	FrontendDir      string
	StorageBackend   string
	DatabaseDSN      string
	GeminiAPIKey     string
	GeminiModel      string
	LLMTimeout       time.Duration
	LLMRatePerSecond float64
	LLMBurst         int
	BcryptCost       int
	LogBackend       string
	LogLevel         string
}

// LoadDefaults populates Config with development defaults. Data files live
// in the working directory, as they always have.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8000"
	c.DataDir = "."
	c.PreferencesFile = "preferences.json"
	c.UsersFile = "users.json"
	c.SQLiteFile = "fishfarmer.db"
	c.FrontendDir = "frontend"
	c.StorageBackend = StorageJSON
	c.DatabaseDSN = ""
	c.GeminiAPIKey = ""
	c.GeminiModel = "gemini-2.5-flash"
	c.LLMTimeout = 60 * time.Second
	c.LLMRatePerSecond = 1
	c.LLMBurst = 5
	c.BcryptCost = 12
	c.LogBackend = "slog"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageJSON, StorageSQLite:
	case StoragePostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("storage backend %q requires a database DSN", c.StorageBackend)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("bcrypt cost %d out of range 4..31", c.BcryptCost)
	}
	if c.LLMRatePerSecond <= 0 || c.LLMBurst < 1 {
		return fmt.Errorf("llm rate limit must be positive")
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("llm timeout must be positive")
	}
	return nil
}

func (c *Config) PreferencesPath() string {
	return filepath.Join(c.DataDir, c.PreferencesFile)
}

func (c *Config) UsersPath() string {
	return filepath.Join(c.DataDir, c.UsersFile)
}

func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, c.SQLiteFile)
}
