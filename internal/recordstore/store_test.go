package recordstore

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/dmitrijs2005/fishfarmer/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newStore(t *testing.T) (*Store, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(logging.NewSlogLogger(l)), &buf
}

func TestLoad_MissingFileReturnsDefaultWithoutCreating(t *testing.T) {
	s, _ := newStore(t)
	path := filepath.Join(t.TempDir(), "missing.json")

	def := record{Name: "default", Count: 1}
	got, err := Load(context.Background(), s, path, def)
	require.NoError(t, err)
	assert.Equal(t, def, got)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "Load must not create the file")
}

func TestLoad_CorruptFileReturnsDefaultAndLogs(t *testing.T) {
	cases := map[string]string{
		"empty":     "",
		"truncated": `[{"name": "a"`,
		"garbage":   "not json at all",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			s, logs := newStore(t)
			path := filepath.Join(t.TempDir(), "users.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			got, err := Load(context.Background(), s, path, []record{})
			require.NoError(t, err)
			assert.Empty(t, got)
			assert.NotNil(t, got)
			assert.Contains(t, logs.String(), "unreadable document replaced by default")
			assert.Contains(t, logs.String(), "level=WARN")
		})
	}
}

func TestLoad_WrongShapeIsTreatedAsCorrupt(t *testing.T) {
	s, _ := newStore(t)
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"not a list"}`), 0o600))

	got, err := Load(context.Background(), s, path, []record{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	s, _ := newStore(t)
	path := filepath.Join(t.TempDir(), "data", "records.json")
	ctx := context.Background()

	in := []record{{Name: "a", Count: 1}, {Name: "b", Count: 2}}
	require.NoError(t, Save(ctx, s, path, in))

	out, err := Load(ctx, s, path, []record{})
	require.NoError(t, err)
	assert.Equal(t, in, out)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n    {", "documents are indent-formatted")
}

func TestSave_OverwritesWholeDocument(t *testing.T) {
	s, _ := newStore(t)
	path := filepath.Join(t.TempDir(), "prefs.json")
	ctx := context.Background()

	require.NoError(t, Save(ctx, s, path, map[string]any{"a": 1, "b": 2}))
	require.NoError(t, Save(ctx, s, path, map[string]any{"c": 3}))

	out, err := Load(ctx, s, path, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"c": float64(3)}, out)
}

func TestLoad_ReadErrorPropagates(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	s, _ := newStore(t)
	path := filepath.Join(t.TempDir(), "locked.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o000))

	_, err := Load(context.Background(), s, path, []record{})
	require.Error(t, err)
}

func TestSave_WriteErrorPropagates(t *testing.T) {
	s, _ := newStore(t)
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := Save(context.Background(), s, filepath.Join(blocker, "prefs.json"), record{})
	require.Error(t, err)
}
