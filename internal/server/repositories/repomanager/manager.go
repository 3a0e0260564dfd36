// Package repomanager vends the account and preference repositories for the
// configured storage backend.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fishfarmer/internal/logging"
	"github.com/dmitrijs2005/fishfarmer/internal/recordstore"
	"github.com/dmitrijs2005/fishfarmer/internal/server/config"
	"github.com/dmitrijs2005/fishfarmer/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/fishfarmer/internal/server/repositories/preferences"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Accounts() accounts.Repository
	Preferences() preferences.Repository
	Close() error
}

// New builds the manager selected by cfg.StorageBackend.
func New(cfg *config.Config, logger logging.Logger) (RepositoryManager, error) {
	switch cfg.StorageBackend {
	case config.StorageJSON:
		return NewJSONRepositoryManager(recordstore.New(logger), cfg.PreferencesPath(), cfg.UsersPath()), nil
	case config.StorageSQLite:
		return OpenSQLite(cfg.SQLitePath())
	case config.StoragePostgres:
		return OpenPostgres(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
