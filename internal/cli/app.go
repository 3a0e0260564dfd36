// Package cli implements fishctl, the operator tool that works directly on
// the configured FishFarmer storage.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/fishfarmer/internal/logging"
	"github.com/dmitrijs2005/fishfarmer/internal/server/config"
	"github.com/dmitrijs2005/fishfarmer/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fishfarmer/internal/server/services"
	"github.com/spf13/cobra"
)

// App holds the state shared by fishctl commands.
type App struct {
	config  *config.Config
	envFile string
	in      *bufio.Reader
	out     io.Writer
	errOut  io.Writer

	repos    repomanager.RepositoryManager
	logger   logging.Logger
	accounts *services.AccountService
	prefs    *services.PreferenceService
}

func NewApp(in io.Reader, out, errOut io.Writer) *App {
	c := &config.Config{}
	c.LoadDefaults()
	c.LogLevel = "warn"
	return &App{config: c, in: bufio.NewReader(in), out: out, errOut: errOut}
}

// open applies the environment, then re-applies explicitly set flags so they
// win, and opens storage. It runs before every subcommand.
func (a *App) open(cmd *cobra.Command) error {
	flags := *a.config
	if err := config.LoadEnv(a.config, a.envFile); err != nil {
		return err
	}
	pf := cmd.Flags()
	overlay := map[string]func(){
		"data-dir":    func() { a.config.DataDir = flags.DataDir },
		"storage":     func() { a.config.StorageBackend = flags.StorageBackend },
		"dsn":         func() { a.config.DatabaseDSN = flags.DatabaseDSN },
		"bcrypt-cost": func() { a.config.BcryptCost = flags.BcryptCost },
		"log-level":   func() { a.config.LogLevel = flags.LogLevel },
	}
	for name, apply := range overlay {
		if pf.Changed(name) {
			apply()
		}
	}
	if err := a.config.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(a.config.LogBackend, a.config.LogLevel, a.errOut)
	if err != nil {
		return err
	}
	repos, err := repomanager.New(a.config, logger)
	if err != nil {
		return err
	}

	a.logger = logger
	a.repos = repos
	a.accounts = services.NewAccountService(repos.Accounts(), a.config.BcryptCost, logger)
	a.prefs = services.NewPreferenceService(repos.Preferences(), logger)
	return nil
}

// migrate applies pending migrations; the JSON backend has none.
func (a *App) migrate(ctx context.Context) error {
	if err := a.repos.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

// Close releases the storage. It is safe to call more than once.
func (a *App) Close() error {
	if a.repos == nil {
		return nil
	}
	err := a.repos.Close()
	a.repos = nil
	return err
}
