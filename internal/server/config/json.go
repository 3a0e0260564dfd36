package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fishfarmer/internal/flagx"
	"github.com/dmitrijs2005/fishfarmer/internal/timex"
)

// JsonConfig is the on-disk shape of the optional configuration file.
// Absent or zero-valued keys leave the current setting unchanged.
type JsonConfig struct {
	HTTPAddr         string         `json:"http_addr"`
	DataDir          string         `json:"data_dir"`
	PreferencesFile  string         `json:"preferences_file"`
	UsersFile        string         `json:"users_file"`
	SQLiteFile       string         `json:"sqlite_file"`
	FrontendDir      string         `json:"frontend_dir"`
	StorageBackend   string         `json:"storage_backend"`
	DatabaseDSN      string         `json:"database_dsn"`
	GeminiAPIKey     string         `json:"gemini_api_key"`
	GeminiModel      string         `json:"gemini_model"`
	LLMTimeout       timex.Duration `json:"llm_timeout"`
	LLMRatePerSecond float64        `json:"llm_rate_per_second"`
	LLMBurst         int            `json:"llm_burst"`
	BcryptCost       int            `json:"bcrypt_cost"`
	LogBackend       string         `json:"log_backend"`
	LogLevel         string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config, if any, into config.
// An unreadable or invalid file panics: the operator asked for it
// explicitly, so starting with silently different settings is worse.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.applyTo(config)
}

func (c *JsonConfig) applyTo(config *Config) {
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DataDir, c.DataDir)
	setString(&config.PreferencesFile, c.PreferencesFile)
	setString(&config.UsersFile, c.UsersFile)
	setString(&config.SQLiteFile, c.SQLiteFile)
	setString(&config.FrontendDir, c.FrontendDir)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.GeminiAPIKey, c.GeminiAPIKey)
	setString(&config.GeminiModel, c.GeminiModel)
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.LogLevel, c.LogLevel)

	if c.LLMTimeout.Duration > 0 {
		config.LLMTimeout = c.LLMTimeout.Duration
	}
	if c.LLMRatePerSecond > 0 {
		config.LLMRatePerSecond = c.LLMRatePerSecond
	}
	if c.LLMBurst > 0 {
		config.LLMBurst = c.LLMBurst
	}
	if c.BcryptCost > 0 {
		config.BcryptCost = c.BcryptCost
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
