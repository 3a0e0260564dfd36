package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/dmitrijs2005/fishfarmer/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvGeminiAPIKey   = "GEMINI_API_KEY"
	EnvGeminiModel    = "GEMINI_MODEL"
	EnvHTTPAddr       = "FISHFARMER_ADDR"
	EnvDataDir        = "FISHFARMER_DATA_DIR"
	EnvFrontendDir    = "FISHFARMER_FRONTEND_DIR"
	EnvStorageBackend = "FISHFARMER_STORAGE"
	EnvDatabaseDSN    = "FISHFARMER_DATABASE_DSN"
	EnvBcryptCost     = "FISHFARMER_BCRYPT_COST"
	EnvLogLevel       = "FISHFARMER_LOG_LEVEL"
)

const defaultEnvFile = ".env"

// parseEnv applies the environment using the dotenv file named by -env.
func parseEnv(config *Config) error {
	return LoadEnv(config, flagx.EnvFileFlag())
}

// LoadEnv loads envFile (or ./.env when envFile is empty and the file is
// present) into the process environment without overriding variables
// already set, then copies the recognised variables into config.
func LoadEnv(config *Config, envFile string) error {
	explicit := envFile != ""
	if !explicit {
		envFile = defaultEnvFile
	}

	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	return applyEnv(config, os.LookupEnv)
}

func applyEnv(config *Config, lookup func(string) (string, bool)) error {
	str := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str(&config.GeminiAPIKey, EnvGeminiAPIKey)
	str(&config.GeminiModel, EnvGeminiModel)
	str(&config.HTTPAddr, EnvHTTPAddr)
	str(&config.DataDir, EnvDataDir)
	str(&config.FrontendDir, EnvFrontendDir)
	str(&config.StorageBackend, EnvStorageBackend)
	str(&config.DatabaseDSN, EnvDatabaseDSN)
	str(&config.LogLevel, EnvLogLevel)

	if v, ok := lookup(EnvBcryptCost); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBcryptCost, err)
		}
		config.BcryptCost = n
	}

	return nil
}
