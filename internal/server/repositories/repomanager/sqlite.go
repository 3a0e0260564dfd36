package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/fishfarmer/internal/filex"
	"github.com/dmitrijs2005/fishfarmer/internal/server/migrations"
	"github.com/dmitrijs2005/fishfarmer/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/fishfarmer/internal/server/repositories/preferences"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager keeps both collections in a single SQLite file.
type SQLiteRepositoryManager struct {
	db          *sql.DB
	accounts    *accounts.SQLiteRepository
	preferences *preferences.SQLiteRepository
}

// OpenSQLite opens (creating if needed) the database file at path. The pool
// is limited to one connection so writers never see SQLITE_BUSY.
func OpenSQLite(path string) (*SQLiteRepositoryManager, error) {
	if _, err := filex.EnsureSubdDir(filepath.Dir(path)); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	db.SetMaxOpenConns(1)

	return NewSQLiteRepositoryManager(db), nil
}

func NewSQLiteRepositoryManager(db *sql.DB) *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{
		db:          db,
		accounts:    accounts.NewSQLiteRepository(db),
		preferences: preferences.NewSQLiteRepository(db),
	}
}

func (m *SQLiteRepositoryManager) Accounts() accounts.Repository { return m.accounts }

func (m *SQLiteRepositoryManager) Preferences() preferences.Repository { return m.preferences }

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.SQLite)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, migrations.SQLiteDir); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (m *SQLiteRepositoryManager) Close() error {
	return m.db.Close()
}
