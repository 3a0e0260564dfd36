package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/fishfarmer/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-D string   data directory for the JSON documents
//	-f string   frontend directory
//	-s string   storage backend: json, sqlite or postgres
//	-d string   PostgreSQL DSN
//	-k string   Gemini API key
//	-m string   Gemini model
//	-t int      LLM call timeout, seconds
//	-r float    LLM calls per second
//	-b int      LLM burst
//	-w int      bcrypt cost
//	-l string   log backend: slog or zap
//	-v string   log level
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-D", "-f", "-s", "-d", "-k", "-m", "-t", "-r", "-b", "-w", "-l", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DataDir, "D", config.DataDir, "data directory")
	fs.StringVar(&config.FrontendDir, "f", config.FrontendDir, "frontend directory")
	fs.StringVar(&config.StorageBackend, "s", config.StorageBackend, "storage backend (json|sqlite|postgres)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.GeminiAPIKey, "k", config.GeminiAPIKey, "Gemini API key")
	fs.StringVar(&config.GeminiModel, "m", config.GeminiModel, "Gemini model")

	llmTimeout := fs.Int("t", int(config.LLMTimeout.Seconds()), "LLM call timeout (in seconds)")

	fs.Float64Var(&config.LLMRatePerSecond, "r", config.LLMRatePerSecond, "LLM calls per second")
	fs.IntVar(&config.LLMBurst, "b", config.LLMBurst, "LLM burst")
	fs.IntVar(&config.BcryptCost, "w", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend (slog|zap)")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.LLMTimeout = time.Duration(*llmTimeout) * time.Second
		}
	})
}
