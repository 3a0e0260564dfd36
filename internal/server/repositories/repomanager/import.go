package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/fishfarmer/internal/dbx"
	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
	"github.com/dmitrijs2005/fishfarmer/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/fishfarmer/internal/server/repositories/preferences"
)

// Importer is implemented by the database managers. Import copies accounts,
// in order, and prefs into storage in one transaction: a duplicate or any
// other failure leaves the database unchanged.
type Importer interface {
	Import(ctx context.Context, list []models.Account, prefs *models.Preferences) error
}

func importTx(
	ctx context.Context,
	db *sql.DB,
	newAccounts func(dbx.DBTX) accounts.Repository,
	newPreferences func(dbx.DBTX) preferences.Repository,
	list []models.Account,
	prefs *models.Preferences,
) error {
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		ar := newAccounts(tx)
		for i := range list {
			if err := ar.Create(ctx, &list[i]); err != nil {
				return fmt.Errorf("import account %q: %w", list[i].Username, err)
			}
		}
		if prefs == nil {
			return nil
		}
		if err := newPreferences(tx).Save(ctx, prefs); err != nil {
			return fmt.Errorf("import preferences: %w", err)
		}
		return nil
	})
}

func (m *PostgresRepositoryManager) Import(ctx context.Context, list []models.Account, prefs *models.Preferences) error {
	return importTx(ctx, m.db,
		func(tx dbx.DBTX) accounts.Repository { return accounts.NewPostgresRepository(tx) },
		func(tx dbx.DBTX) preferences.Repository { return preferences.NewPostgresRepository(tx) },
		list, prefs)
}

func (m *SQLiteRepositoryManager) Import(ctx context.Context, list []models.Account, prefs *models.Preferences) error {
	return importTx(ctx, m.db,
		func(tx dbx.DBTX) accounts.Repository { return accounts.NewSQLiteRepository(tx) },
		func(tx dbx.DBTX) preferences.Repository { return preferences.NewSQLiteRepository(tx) },
		list, prefs)
}
