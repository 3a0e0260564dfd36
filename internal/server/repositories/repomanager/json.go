package repomanager

import (
	"context"

	"github.com/dmitrijs2005/fishfarmer/internal/recordstore"
	"github.com/dmitrijs2005/fishfarmer/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/fishfarmer/internal/server/repositories/preferences"
)

// JSONRepositoryManager keeps each collection in its own JSON file.
type JSONRepositoryManager struct {
	accounts    *accounts.JSONRepository
	preferences *preferences.JSONRepository
}

func NewJSONRepositoryManager(store *recordstore.Store, preferencesPath, usersPath string) *JSONRepositoryManager {
	return &JSONRepositoryManager{
		accounts:    accounts.NewJSONRepository(store, usersPath),
		preferences: preferences.NewJSONRepository(store, preferencesPath),
	}
}

// RunMigrations is a no-op: JSON documents carry no schema.
func (m *JSONRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *JSONRepositoryManager) Accounts() accounts.Repository { return m.accounts }

func (m *JSONRepositoryManager) Preferences() preferences.Repository { return m.preferences }

func (m *JSONRepositoryManager) Close() error { return nil }
