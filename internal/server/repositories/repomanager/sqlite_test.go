package repomanager

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/fishfarmer/internal/common"
	"github.com/dmitrijs2005/fishfarmer/internal/logging"
	"github.com/dmitrijs2005/fishfarmer/internal/server/config"
	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteManager_MigrateAndUse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fish.db")
	m, err := OpenSQLite(path)
	require.NoError(t, err)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.RunMigrations(ctx))
	// Applying again is a no-op.
	require.NoError(t, m.RunMigrations(ctx))

	prefs, err := m.Preferences().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPreferences(), prefs)

	want := &models.Preferences{SoundEffects: false, Volume: 75, IncludeRationale: false, GeographicRegion: "oceania"}
	require.NoError(t, m.Preferences().Save(ctx, want))
	prefs, err = m.Preferences().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, prefs)

	require.NoError(t, m.Accounts().Create(ctx, &models.Account{Username: "alice", Email: "a@example.com", PasswordHash: "h"}))
	err = m.Accounts().Create(ctx, &models.Account{Username: "alice", Email: "b@example.com", PasswordHash: "h"})
	require.ErrorIs(t, err, common.ErrDuplicateUsername)

	all, err := m.Accounts().All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.FileExists(t, path)
}

func TestNew_SQLiteBackend(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StorageBackend = config.StorageSQLite
	cfg.DataDir = t.TempDir()

	m, err := New(cfg, logging.Nop())
	require.NoError(t, err)
	defer m.Close()

	assert.IsType(t, &SQLiteRepositoryManager{}, m)
	require.NoError(t, m.RunMigrations(context.Background()))
	assert.FileExists(t, cfg.SQLitePath())
}
